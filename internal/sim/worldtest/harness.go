package worldtest

import (
	"testing"

	"dinotrek.io/internal/protocol"
	"dinotrek.io/internal/sim/catalogs"
	world "dinotrek.io/internal/sim/world"
)

// Harness is a small black-box test helper for driving a world via exported APIs:
// - Step()/StepFor() hold commands for one or more ticks via StepOnce()
// - LastFrame() is the FRAME a renderer would have received
// - Debug* helpers on the world provide deterministic preconditions
//
// It intentionally avoids touching world internals so tests can live outside the world package.
type Harness struct {
	T    *testing.T
	Cats *catalogs.Catalogs
	W    *world.World

	DtMS float64

	lastFrame protocol.FrameMsg
}

func NewHarness(t *testing.T, cfg world.WorldConfig, cats *catalogs.Catalogs) *Harness {
	t.Helper()

	w, err := world.New(cfg, cats)
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	if _, err := w.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	h := &Harness{
		T:    t,
		Cats: cats,
		W:    w,
		DtMS: 1000 / float64(w.TickRateHz()),
	}
	h.lastFrame = w.BuildFrame()
	return h
}

func LoadCatalogs(t *testing.T) *catalogs.Catalogs {
	t.Helper()
	cats, err := catalogs.Load("../../../configs")
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	return cats
}

func (h *Harness) LastFrame() protocol.FrameMsg { return h.lastFrame }

func (h *Harness) Step(cmds ...string) protocol.FrameMsg {
	h.T.Helper()
	h.W.StepOnce(cmds, h.DtMS)
	h.lastFrame = h.W.BuildFrame()
	return h.lastFrame
}

// StepFor holds the same commands for n ticks.
func (h *Harness) StepFor(n int, cmds ...string) protocol.FrameMsg {
	h.T.Helper()
	for i := 0; i < n; i++ {
		h.W.StepOnce(cmds, h.DtMS)
	}
	h.lastFrame = h.W.BuildFrame()
	return h.lastFrame
}

func (h *Harness) Character() protocol.EntityView {
	h.T.Helper()
	id := h.W.Character().ID
	for _, e := range h.lastFrame.Entities {
		if e.ID == id {
			return e
		}
	}
	h.T.Fatalf("character %s missing from frame", id)
	return protocol.EntityView{}
}
