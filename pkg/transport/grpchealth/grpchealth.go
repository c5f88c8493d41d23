// Package grpchealth polls a live gateway's standard gRPC health
// service and feeds the result into a GatewayStatus event, one of the
// four signals arbitrage.Simple's readiness gate ANDs together (spec
// §4.4, pkg/arbitrage/source.go). No .proto codegen is needed: the
// health service's client stub ships pre-built in
// google.golang.org/grpc/health/grpc_health_v1.
//
// C++: none; gRPC dial usage grounded on
// golang/pkg/client/md_client.go's grpc.DialContext call.
package grpchealth

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/quantlink/algo/pkg/event"
)

// Sink receives GatewayStatus transitions.
type Sink interface {
	HandleGatewayStatus(info event.MessageInfo, g event.GatewayStatus)
}

// Poller periodically checks a gateway's health endpoint and reports
// transitions to a Sink.
type Poller struct {
	source uint8
	conn   *grpc.ClientConn
	client grpc_health_v1.HealthClient
	sink   Sink
	// lastConnected avoids re-reporting an unchanged status every tick.
	lastConnected bool
	haveReported  bool
}

// Dial connects to addr and builds a Poller for source.
func Dial(addr string, source uint8, sink Sink) (*Poller, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := grpc.DialContext(ctx, addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
	)
	if err != nil {
		return nil, fmt.Errorf("grpchealth: dial %s: %w", addr, err)
	}
	log.Printf("[transport/grpchealth] connected: %s", addr)
	return &Poller{
		source: source,
		conn:   conn,
		client: grpc_health_v1.NewHealthClient(conn),
		sink:   sink,
	}, nil
}

// Close releases the underlying connection.
func (p *Poller) Close() error {
	return p.conn.Close()
}

// Check performs one health RPC and reports a GatewayStatus to the
// sink only when connectivity changed since the last Check.
func (p *Poller) Check(ctx context.Context) {
	connected := p.probe(ctx)
	if p.haveReported && connected == p.lastConnected {
		return
	}
	p.lastConnected = connected
	p.haveReported = true
	p.sink.HandleGatewayStatus(event.MessageInfo{Source: p.source}, event.GatewayStatus{
		Source: p.source, Connected: connected,
	})
}

func (p *Poller) probe(ctx context.Context) bool {
	resp, err := p.client.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	if err != nil {
		return false
	}
	return resp.Status == grpc_health_v1.HealthCheckResponse_SERVING
}

// Run polls Check on interval until ctx is done.
func (p *Poller) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, interval/2)
			p.Check(checkCtx)
			cancel()
		}
	}
}
