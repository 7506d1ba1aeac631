package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"dinotrek.io/internal/sim/entity"
	"dinotrek.io/internal/sim/world/logic/mathx"
)

// FindNearest scans list for the closest entity to pos that passes filter.
// Entities marked for removal never match. With no match it returns
// (+Inf, zero value).
func FindNearest[T Entity](list []T, pos mgl64.Vec3, filter func(T) bool) (float64, T) {
	best := math.Inf(1)
	var found T
	for _, e := range list {
		if e.Base().Remove {
			continue
		}
		if filter != nil && !filter(e) {
			continue
		}
		if d := mathx.Distance(e.Base().Pos, pos); d < best {
			best, found = d, e
		}
	}
	return best, found
}

func (w *World) FindNearestActor(pos mgl64.Vec3, filter func(*entity.Actor) bool) (float64, *entity.Actor) {
	return FindNearest(w.actors, pos, filter)
}

func (w *World) FindNearestItem(pos mgl64.Vec3, filter func(*entity.Item) bool) (float64, *entity.Item) {
	return FindNearest(w.items, pos, filter)
}

// FindNearestInteractableItem ignores range.
func (w *World) FindNearestInteractableItem(pos mgl64.Vec3) (float64, *entity.Item) {
	return FindNearest(w.items, pos, (*entity.Item).IsInteractable)
}

func (w *World) FindNearestInRangeInteractableItem(pos mgl64.Vec3) (float64, *entity.Item) {
	return FindNearest(w.items, pos, func(it *entity.Item) bool { return it.IsInRangeInteractable(pos) })
}
