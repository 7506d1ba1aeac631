package world

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"dinotrek.io/internal/sim/entity"
)

// chunkRampTicks is how many ticks each extra ring of terrain waits for at
// session start, so the first frames stay cheap.
const chunkRampTicks = 70

// StepOnce applies the held commands and advances one tick. It is what Run
// does on every tick and what replays and tests call directly. Once the
// session is over the tick no longer advances and nothing is journaled.
func (w *World) StepOnce(cmds []string, dtMS float64) (tick uint64, digest string) {
	before := w.tick.Load()
	if unknown := w.ApplyCommands(cmds, dtMS); len(unknown) > 0 {
		w.log.WithField("commands", unknown).Debug("ignored unknown commands")
	}
	w.Update(dtMS)
	tick = w.tick.Load()
	digest = w.StateDigest()
	if tick != before && w.tickLogger != nil {
		_ = w.tickLogger.WriteTick(TickLogEntry{
			Tick:     tick,
			DtMS:     dtMS,
			Commands: cmds,
			Actors:   len(w.actors),
			Items:    len(w.items),
			Chunks:   len(w.chunks.Chunks),
			Damage:   w.lastDamage,
			Outcome:  string(w.outcome),
			Digest:   digest,
		})
	}
	return tick, digest
}

// Update advances the simulation by dtMS milliseconds. Once the session is
// won or lost the world stops changing.
func (w *World) Update(dtMS float64) {
	if w.outcome != OutcomeExploring {
		return
	}
	start := time.Now()
	tick := w.tick.Add(1)
	w.advanceClock(dtMS)

	// Actors may spawn or mark others, but nothing leaves the slice until
	// the despawn pass below.
	n := len(w.actors)
	for i := 0; i < n; i++ {
		if a := w.actors[i]; !a.Remove {
			w.updateActor(a, dtMS)
		}
	}

	w.stepEngine()
	w.syncBodies()
	w.groundActors()

	center := w.focus()
	w.refreshChunks(center, tick)
	w.lastDamage = w.checkEncounter(dtMS)
	w.Despawn(center)

	if tick%uint64(w.cfg.ScanEveryTicks) == 0 {
		w.scan = w.Scan()
	}
	if w.cfg.SpawnEveryTicks > 0 && w.character != nil && tick%uint64(w.cfg.SpawnEveryTicks) == 0 {
		w.AddNewCreature(center)
	}

	if o := w.checkOutcome(); o != w.outcome {
		w.outcome = o
		if w.character != nil {
			w.emit(EventOutcome, &w.character.Body, string(o))
		}
		w.log.WithFields(logrus.Fields{"tick": tick, "outcome": o}).Info("session over")
	}

	w.lastStepMS = float64(time.Since(start).Microseconds()) / 1000
	w.lastDigest = w.StateDigest()
	w.publishMetrics()
}

func (w *World) updateActor(a *entity.Actor, dtMS float64) {
	defer func() {
		if r := recover(); r != nil {
			w.log.WithFields(logrus.Fields{
				"actor": a.ID,
				"name":  a.Name,
			}).Errorf("actor update panicked: %v", r)
			w.emit(EventPanic, &a.Body, fmt.Sprint(r))
		}
	}()
	a.Update(dtMS, w)
}

// focus is where terrain, despawning and spawning are centered.
func (w *World) focus() mgl64.Vec3 {
	if w.character == nil {
		return mgl64.Vec3{}
	}
	return w.character.Pos
}

func (w *World) refreshChunks(center mgl64.Vec3, tick uint64) {
	r := min(int(tick/chunkRampTicks), w.cfg.ChunkRadius)
	chunks, err := w.chunks.MakeTerrainChunks(center, r)
	if err != nil {
		w.log.WithError(err).Warn("terrain skipped")
		return
	}
	w.visibleChunks = chunks
}
