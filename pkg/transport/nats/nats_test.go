package nats

import "testing"

func TestMarketDataSubject(t *testing.T) {
	if got := marketDataSubject("deribit", "BTC-PERP"); got != "md.deribit.BTC-PERP" {
		t.Fatalf("got %q", got)
	}
}

func TestOrderSubject(t *testing.T) {
	if got := orderSubject("acct-a", "deribit", "BTC-PERP"); got != "order.acct-a.deribit.BTC-PERP" {
		t.Fatalf("got %q", got)
	}
}

func TestRouterDropsUnboundSource(t *testing.T) {
	r := NewRouter(&Conn{})
	if _, ok := r.addr(7); ok {
		t.Fatal("expected no binding for unbound source")
	}
}

func TestRouterBind(t *testing.T) {
	r := NewRouter(&Conn{})
	r.Bind(1, "acct-a", "deribit", "BTC-PERP")
	addr, ok := r.addr(1)
	if !ok || addr.account != "acct-a" || addr.exchange != "deribit" || addr.symbol != "BTC-PERP" {
		t.Fatalf("addr = %+v, ok = %v", addr, ok)
	}
}
