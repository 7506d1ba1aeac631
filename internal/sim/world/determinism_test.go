package world

import (
	"testing"
)

func TestDeterminism_FixedCommandsSameDigest(t *testing.T) {
	cfg := testConfig()
	cfg.SpawnEveryTicks = 10
	cfg.InitialTrees = 4
	cfg.ChunkRadius = 1

	build := func() *World {
		w, err := New(cfg, loadCats(t))
		if err != nil {
			t.Fatalf("world.New: %v", err)
		}
		if _, err := w.Setup(); err != nil {
			t.Fatalf("setup: %v", err)
		}
		return w
	}
	w1, w2 := build(), build()

	script := func(tick int) []string {
		switch {
		case tick < 40:
			return []string{"move forward"}
		case tick < 60:
			return []string{"turn left", "move left", "move forward"}
		case tick < 80:
			return []string{"move back sprint", "jump"}
		}
		return []string{"interact nearest"}
	}

	for i := 0; i < 200; i++ {
		cmds := script(i)
		t1, d1 := w1.StepOnce(cmds, 50)
		t2, d2 := w2.StepOnce(cmds, 50)
		if t1 != t2 || d1 != d2 {
			t.Fatalf("digest mismatch at tick %d/%d: %s vs %s", t1, t2, d1, d2)
		}
	}
	if len(w1.Actors()) < 2 {
		t.Fatalf("no creatures spawned in 200 ticks")
	}
}

func TestDeterminism_DifferentSeedsDiverge(t *testing.T) {
	a := testConfig()
	b := testConfig()
	b.Seed = 43
	wa, err := New(a, loadCats(t))
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	wb, err := New(b, loadCats(t))
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	if _, err := wa.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := wb.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if wa.StateDigest() == wb.StateDigest() {
		t.Fatalf("seeds 42 and 43 scattered identically")
	}
}
