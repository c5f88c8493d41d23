package arbitrage

// sourceState tracks one upstream source's readiness components (spec
// §3 "Source (strategy)", §4.4 "Readiness gating" and "Lifecycle
// events").
//
// The source text names two related but distinct things: a
// "DownloadEnd received, gateway connected, stream status OK" gating
// condition, and a standalone `Ready` lifecycle event that "marks the
// source ready". This implementation ANDs all four signals together —
// a source is ready only once every one of them has fired — which is
// the reading that makes `Ready` meaningful rather than redundant.
type sourceState struct {
	downloadEnd      bool
	gatewayConnected bool
	streamOK         bool
	explicitReady    bool
}

func (s *sourceState) isReady() bool {
	return s.downloadEnd && s.gatewayConnected && s.streamOK && s.explicitReady
}

// clear resets every readiness signal, used on Connected/Disconnected
// (spec §4.4: "Connected → clear readiness for that source").
func (s *sourceState) clear() {
	*s = sourceState{}
}
