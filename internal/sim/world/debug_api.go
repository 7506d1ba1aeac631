package world

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"dinotrek.io/internal/sim/entity"
)

// ---- Debug/Test Helpers ----
//
// These helpers exist to allow black-box tests in sibling packages and the
// admin endpoints to set up deterministic preconditions without reaching into
// world internals.
//
// They are NOT safe to call concurrently with Run(). Prefer using them only in tests that drive
// the world via StepOnce(), from a single goroutine.

func (w *World) DebugSetPos(id string, pos mgl64.Vec3) bool {
	if w == nil || id == "" {
		return false
	}
	e := w.EntityByID(id)
	if e == nil {
		return false
	}
	e.Base().MoveTo(pos)
	return true
}

func (w *World) DebugSetFacing(id string, facing float64) bool {
	if w == nil || id == "" {
		return false
	}
	e := w.EntityByID(id)
	if e == nil {
		return false
	}
	e.Base().SetFacing(facing)
	return true
}

func (w *World) DebugSetVitals(actorID string, health, stamina float64) bool {
	if w == nil || actorID == "" {
		return false
	}
	a := w.ActorByID(actorID)
	if a == nil {
		return false
	}
	a.Health.Set(health)
	a.Stamina.Set(stamina)
	return true
}

// DebugSetWorldTime sets the clock in seconds since midnight.
func (w *World) DebugSetWorldTime(seconds float64) {
	if w == nil {
		return
	}
	w.worldTime = seconds
}

// DebugSpawnCreature adds the named roster creature at pos, ignoring the
// spawn distance rules.
func (w *World) DebugSpawnCreature(key string, pos mgl64.Vec3) (*entity.Actor, error) {
	if w == nil {
		return nil, errors.New("nil world")
	}
	cfg, ok := w.cats.Creatures[key]
	if !ok {
		return nil, fmt.Errorf("unknown creature: %q", key)
	}
	a := w.AddNewActor(cfg)
	if a == nil {
		return nil, fmt.Errorf("population ceiling %d reached", w.cfg.MaxActors)
	}
	a.MoveTo(pos)
	return a, nil
}

// DebugGiveParts moves up to n time machine parts straight into the
// character's inventory.
func (w *World) DebugGiveParts(n int) int {
	if w == nil || w.character == nil {
		return 0
	}
	given := 0
	for _, it := range w.items {
		if given >= n {
			break
		}
		if it.Remove || !it.HasTag(TagTimeTravelPart) {
			continue
		}
		if !w.character.Inventory.Add(it) {
			break
		}
		it.Remove = true
		given++
	}
	return given
}

// DebugStateDigest is StateDigest for black-box determinism tests.
func (w *World) DebugStateDigest() string {
	if w == nil {
		return ""
	}
	return w.StateDigest()
}
