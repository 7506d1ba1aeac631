package world

import (
	"dinotrek.io/internal/sim/entity"
	"dinotrek.io/internal/sim/physics"
)

// syncBodies copies engine poses back onto entities. Bodies are created the
// first time an entity with a declared shape is seen; entities without a
// shape are left to their own integration.
func (w *World) syncBodies() {
	if w.engine == nil {
		return
	}
	for _, a := range w.actors {
		w.syncBody(&a.Body)
	}
	for _, it := range w.items {
		w.syncBody(&it.Body)
	}
}

func (w *World) syncBody(b *entity.Body) {
	if b.Remove {
		return
	}
	if b.PhysicsBody == nil {
		if b.PhysicsShape == "" || w.shapeWarned[b.ID] {
			return
		}
		shape, err := physics.ShapeFor(b.PhysicsShape, b.Size)
		if err != nil {
			w.shapeWarned[b.ID] = true
			w.log.WithError(err).WithField("entity", b.ID).Warn("no physics body")
			return
		}
		body := w.engine.CreateBody(shape, b.Mass)
		body.SetPosition(b.Pos)
		body.SetOrientation(b.Orientation)
		w.engine.AddBody(body)
		b.PhysicsBody = body
	}
	b.Pos = b.PhysicsBody.Position()
	b.Orientation = b.PhysicsBody.Orientation()
}

func (w *World) stepEngine() {
	if w.engine == nil {
		return
	}
	w.engine.StepSimulation(1 / float64(w.cfg.TickRateHz))
}
