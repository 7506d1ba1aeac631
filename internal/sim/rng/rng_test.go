package rng

import "testing"

func TestNew_Deterministic(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 16; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d: %v != %v", i, x, y)
		}
	}
}

func TestInt_Bounds(t *testing.T) {
	if got := Int(Fixed(0), 8); got != 0 {
		t.Fatalf("Int(0)=%d", got)
	}
	if got := Int(Fixed(0.9999999), 8); got != 7 {
		t.Fatalf("Int(~1)=%d want 7", got)
	}
	if got := Int(Fixed(0.5), 0); got != 0 {
		t.Fatalf("Int(n=0)=%d", got)
	}
}

func TestChance_FixedZeroAlwaysActs(t *testing.T) {
	for _, p := range []float64{0.01, 0.5, 0.8} {
		if !Chance(Fixed(0), p) {
			t.Fatalf("Chance(%v) should succeed with Fixed(0)", p)
		}
	}
	if Chance(Fixed(0.99), 0.5) {
		t.Fatalf("Chance(0.5) should fail with Fixed(0.99)")
	}
}

func TestSequence_RepeatsLast(t *testing.T) {
	s := &Sequence{Values: []float64{0.1, 0.2}}
	got := []float64{s.Float64(), s.Float64(), s.Float64()}
	if got[0] != 0.1 || got[1] != 0.2 || got[2] != 0.2 {
		t.Fatalf("sequence=%v", got)
	}
}
