package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"dinotrek.io/internal/sim/entity"
	"dinotrek.io/internal/sim/rng"
	"dinotrek.io/internal/sim/world/logic/mathx"
)

const (
	TagTimeMachine    = "time_machine"
	TagTimeTravelPart = "time_travel_part"
)

// RandomSpawnCoords picks a point on the spawn ring around focus. The inner
// radius keeps spawns outside creature attention range.
func (w *World) RandomSpawnCoords(focus mgl64.Vec3) mgl64.Vec3 {
	lo, hi := w.cfg.SpawnRadii[0], w.cfg.SpawnRadii[1]
	r := lo + float64(rng.Int(w.rng, int(hi-lo)))
	x, y := mathx.PolarToCartesian(r, rng.Angle(w.rng))
	return focus.Add(mgl64.Vec3{x, y, 0})
}

// AddNewCreature spawns a random creature from the roster on the spawn ring.
// It gives up when another actor is already near the chosen spot or the
// population is full.
func (w *World) AddNewCreature(focus mgl64.Vec3) *entity.Actor {
	if len(w.cats.CreatureKeys) == 0 {
		return nil
	}
	pos := w.RandomSpawnCoords(focus)
	if d, _ := w.FindNearestActor(pos, nil); d < w.cfg.SpawnActorDistance {
		return nil
	}
	key := w.cats.CreatureKeys[rng.Int(w.rng, len(w.cats.CreatureKeys))]
	a := w.AddNewActor(w.cats.Creatures[key])
	if a == nil {
		return nil
	}
	a.MoveTo(pos)
	w.emit(EventSpawn, &a.Body, key)
	return a
}

func (w *World) AddNewTrees(n int, focus mgl64.Vec3) {
	for i := 0; i < n; i++ {
		t := w.AddNewItem(w.cats.Tree, focus)
		t.MoveTo(w.RandomSpawnCoords(focus))
		if err := w.SetHeightToTerrain(&t.Body); err != nil {
			w.log.WithError(err).Warn("tree grounding")
		}
	}
}

// Build scatters the catalog's parts and landmarks around focus, plants the
// initial trees and grounds everything rooted.
func (w *World) Build(focus mgl64.Vec3) error {
	for _, cfg := range w.cats.Scatter() {
		it := w.AddNewItem(cfg, focus)
		if it.Rooted {
			if err := w.SetHeightToTerrain(&it.Body); err != nil {
				return fmt.Errorf("build %s: %w", it.Name, err)
			}
		}
	}
	w.AddNewTrees(w.cfg.InitialTrees, focus)
	return nil
}

// PartsNeeded is how many more parts the time machine needs.
func (w *World) PartsNeeded() int {
	if w.timeMachine == nil {
		return 0
	}
	return w.timeMachine.Damage
}

func (w *World) PartsCarried() int {
	if w.character == nil {
		return 0
	}
	n := 0
	for _, it := range w.character.Inventory.Items() {
		if it.HasTag(TagTimeTravelPart) {
			n++
		}
	}
	return n
}
