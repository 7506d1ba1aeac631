package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"dinotrek.io/internal/sim/entity"
	"dinotrek.io/internal/sim/world/logic/mathx"
)

// Despawn marks everything that wandered too far from center and then
// compacts both collections. The limit for an entity is the smaller of its
// own despawn radius and the world's. Characters, important entities and
// entities without a despawn radius are kept. Items picked up earlier are
// marked already and go in the same pass.
//
// Must not run while actors are being updated.
func (w *World) Despawn(center mgl64.Vec3) int {
	for _, a := range w.actors {
		w.markLost(&a.Body, center)
	}
	for _, it := range w.items {
		w.markLost(&it.Body, center)
	}
	n := 0
	w.actors, n = compact(w, w.actors, n)
	w.items, n = compact(w, w.items, n)
	return n
}

func (w *World) markLost(b *entity.Body, center mgl64.Vec3) {
	if b.Character || b.Important || b.DespawnRadius <= 0 || b.Remove {
		return
	}
	limit := min(b.DespawnRadius, w.cfg.DespawnRadius)
	if mathx.Distance(center, b.Pos) > limit {
		b.Remove = true
		w.emit(EventDespawn, b, "out of range")
	}
}

// compact is a stable in-place filter over a collection.
func compact[T Entity](w *World, list []T, removed int) ([]T, int) {
	kept := list[:0]
	for _, e := range list {
		b := e.Base()
		if !b.Remove {
			kept = append(kept, e)
			continue
		}
		delete(w.all, b.ID)
		if b.PhysicsBody != nil && w.engine != nil {
			w.engine.RemoveBody(b.PhysicsBody)
			b.PhysicsBody = nil
		}
		removed++
	}
	var zero T
	for i := len(kept); i < len(list); i++ {
		list[i] = zero
	}
	return kept, removed
}
