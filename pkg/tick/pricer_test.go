package tick

import "testing"

func TestToTicksExact(t *testing.T) {
	ticks, exact := ToTicks(100.5, 0.5, 1)
	if ticks != 201 || !exact {
		t.Fatalf("got ticks=%d exact=%v, want 201/true", ticks, exact)
	}
}

func TestToTicksInexact(t *testing.T) {
	ticks, exact := ToTicks(100.25, 0.5, 1)
	if exact {
		t.Fatalf("expected inexact snap for 100.25 at tick 0.5, got ticks=%d", ticks)
	}
}

func TestToTicksZeroTickSize(t *testing.T) {
	if _, exact := ToTicks(100.0, 0, 2); exact {
		t.Fatalf("zero tick size must never be exact")
	}
}

func TestToPriceRoundTrip(t *testing.T) {
	ticks, exact := ToTicks(10.0, 0.25, 2)
	if !exact {
		t.Fatalf("expected exact snap")
	}
	if got := ToPrice(ticks, 0.25); got != 10.0 {
		t.Fatalf("round trip got %v, want 10.0", got)
	}
}
