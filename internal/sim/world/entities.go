package world

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"dinotrek.io/internal/sim/entity"
	"dinotrek.io/internal/sim/rng"
	"dinotrek.io/internal/sim/world/logic/mathx"
)

// AddNewActor returns nil once the population ceiling is reached.
func (w *World) AddNewActor(cfg entity.ActorConfig) *entity.Actor {
	if len(w.actors) >= w.cfg.MaxActors {
		return nil
	}
	a := entity.NewActor(cfg, w.rng)
	w.actors = append(w.actors, a)
	w.all[a.ID] = a
	return a
}

// AddNewCharacter adds the player-controlled actor. It bypasses the
// population ceiling and is never despawned.
func (w *World) AddNewCharacter(cfg entity.ActorConfig) *entity.Actor {
	cfg.Character = true
	cfg.Autonomous = false
	a := entity.NewActor(cfg, w.rng)
	w.actors = append(w.actors, a)
	w.all[a.ID] = a
	if w.character == nil {
		w.character = a
	}
	return a
}

// AddNewItem adds an item at the origin, or at a random point on the circle
// of RandomAtRadius around focus when the config asks for it.
func (w *World) AddNewItem(cfg entity.ItemConfig, focus mgl64.Vec3) *entity.Item {
	it := entity.NewItem(cfg)
	if it.Color == "" && len(cfg.Colors) > 0 {
		it.Color = cfg.Colors[rng.Int(w.rng, len(cfg.Colors))]
	}
	if it.RandomAtRadius > 0 {
		x, y := mathx.PolarToCartesian(it.RandomAtRadius, rng.Angle(w.rng))
		it.MoveTo(focus.Add(mgl64.Vec3{x, y, 0}))
	}
	w.items = append(w.items, it)
	w.all[it.ID] = it
	if w.timeMachine == nil && it.HasTag(TagTimeMachine) {
		w.timeMachine = it
	}
	return it
}

func (w *World) EntityByID(id string) Entity {
	if id == "" {
		return nil
	}
	return w.all[id]
}

// ActorByID resolves look targets. Removed actors no longer resolve.
func (w *World) ActorByID(id string) *entity.Actor {
	a, ok := w.EntityByID(id).(*entity.Actor)
	if !ok || a.Remove {
		return nil
	}
	return a
}

func (w *World) ItemByID(id string) *entity.Item {
	it, ok := w.EntityByID(id).(*entity.Item)
	if !ok || it.Remove {
		return nil
	}
	return it
}

func (w *World) emit(kind string, b *entity.Body, detail string) {
	w.log.WithFields(logrus.Fields{
		"tick":   w.tick.Load(),
		"event":  kind,
		"entity": b.ID,
		"name":   b.Name,
	}).Debug(detail)
	if w.eventLogger == nil {
		return
	}
	_ = w.eventLogger.WriteEvent(EventEntry{
		Tick:     w.tick.Load(),
		Kind:     kind,
		EntityID: b.ID,
		Name:     b.Name,
		Pos:      [3]float64(b.Pos),
		Detail:   detail,
	})
}
