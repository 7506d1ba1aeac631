package worldtest

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	world "dinotrek.io/internal/sim/world"
	"dinotrek.io/internal/sim/world/terrain/store"
)

func testConfig() world.WorldConfig {
	return world.WorldConfig{
		ID:           "test",
		TickRateHz:   20,
		Seed:         42,
		InitialTrees: 3,
		ChunkRadius:  1,
		Layout:       store.Layout{TextureSize: 16},
	}
}

func TestSession_BuildScattersCatalog(t *testing.T) {
	h := NewHarness(t, testConfig(), LoadCatalogs(t))
	f := h.LastFrame()
	// 9 parts, the time machine and 3 trees.
	if got := len(h.W.Items()); got != 13 {
		t.Fatalf("items=%d want 13", got)
	}
	if len(f.Entities) != 14 {
		t.Fatalf("frame entities=%d", len(f.Entities))
	}
	if h.W.TimeMachine() == nil || f.HUD.Parts.Needed != 6 {
		t.Fatalf("time machine missing: %+v", f.HUD.Parts)
	}
}

func TestSession_TerrainRampsUp(t *testing.T) {
	h := NewHarness(t, testConfig(), LoadCatalogs(t))
	if f := h.Step(); len(f.TerrainChunks) != 1 {
		t.Fatalf("first tick chunks=%d want 1", len(f.TerrainChunks))
	}
	if f := h.StepFor(70); len(f.TerrainChunks) != 9 {
		t.Fatalf("after ramp chunks=%d want 9", len(f.TerrainChunks))
	}
}

func TestSession_CarryAllPartsWins(t *testing.T) {
	h := NewHarness(t, testConfig(), LoadCatalogs(t))
	if n := h.W.DebugGiveParts(6); n != 6 {
		t.Fatalf("gave %d parts", n)
	}
	h.Step()
	if h.LastFrame().HUD.Parts.Carried != 6 {
		t.Fatalf("carried=%d", h.LastFrame().HUD.Parts.Carried)
	}
	tm := h.W.TimeMachine()
	if !h.W.DebugSetPos(h.W.Character().ID, tm.Pos.Add(mgl64.Vec3{5, 0, 0})) {
		t.Fatalf("move character failed")
	}
	// Hold interact until the machine is rebuilt; each tick adds one part.
	f := h.StepFor(10, "interact nearest")
	if f.Outcome != string(world.OutcomeWon) {
		t.Fatalf("outcome=%s needed=%d", f.Outcome, f.HUD.Parts.Needed)
	}
}

func TestSession_SameSeedSameFrames(t *testing.T) {
	a := NewHarness(t, testConfig(), LoadCatalogs(t))
	b := NewHarness(t, testConfig(), LoadCatalogs(t))
	for i := 0; i < 50; i++ {
		a.Step("move forward", "turn left")
		b.Step("move forward", "turn left")
	}
	if a.W.DebugStateDigest() != b.W.DebugStateDigest() {
		t.Fatalf("digests differ")
	}
	if a.Character().Pos != b.Character().Pos {
		t.Fatalf("character pos %v vs %v", a.Character().Pos, b.Character().Pos)
	}
}
