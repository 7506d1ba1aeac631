package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"

	"dinotrek.io/internal/sim/entity"
)

// StateDigest hashes the simulation state that replay must reproduce:
// clock, outcome, and every entity's pose and pools in collection order.
// Entity ids are random per session and are left out.
func (w *World) StateDigest() string {
	h := sha256.New()
	var tmp [8]byte
	f := func(v float64) {
		binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
		h.Write(tmp[:])
	}
	body := func(b *entity.Body) {
		h.Write([]byte(b.Name))
		f(b.Pos.X())
		f(b.Pos.Y())
		f(b.Pos.Z())
		f(b.Vel.X())
		f(b.Vel.Y())
		f(b.Vel.Z())
		f(b.Facing)
	}

	binary.LittleEndian.PutUint64(tmp[:], w.tick.Load())
	h.Write(tmp[:])
	f(w.worldTime)
	h.Write([]byte(w.outcome))
	for _, a := range w.actors {
		body(&a.Body)
		f(a.Health.Current)
		f(a.Stamina.Current)
		h.Write([]byte(a.Plan.Name))
	}
	for _, it := range w.items {
		body(&it.Body)
		f(it.InteractionProgress)
		binary.LittleEndian.PutUint64(tmp[:], uint64(it.Damage))
		h.Write(tmp[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
