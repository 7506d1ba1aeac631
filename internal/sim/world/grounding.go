package world

import (
	"dinotrek.io/internal/sim/entity"
)

// SetHeightToTerrain snaps b onto the terrain when it is at or just above
// the ground. The one unit of slack keeps walkers from going airborne over
// tiny bumps.
func (w *World) SetHeightToTerrain(b *entity.Body) error {
	h, err := w.chunks.HeightAt(b.Pos.X(), b.Pos.Y())
	if err != nil {
		return err
	}
	h += b.HeightSizeOffset * b.Size
	b.SetGrounded(b.Pos.Z() <= h+1, h)
	return nil
}

func (w *World) groundActors() {
	for _, a := range w.actors {
		if a.Remove {
			continue
		}
		if err := w.SetHeightToTerrain(&a.Body); err != nil {
			w.log.WithError(err).WithField("actor", a.ID).Warn("grounding skipped")
		}
	}
}
