package main

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	persistlog "dinotrek.io/internal/persistence/log"
	"dinotrek.io/internal/sim/catalogs"
	"dinotrek.io/internal/sim/world"
)

var errStop = errors.New("stop")

type result struct {
	Seed     int64
	Checked  uint64
	LastTick uint64
	Outcome  world.Outcome
}

// replayWorld rebuilds the world from session.yaml and re-applies every
// journaled tick, failing on the first digest that differs.
func replayWorld(worldDir, configDir string, toTick uint64, logger *logrus.Entry) (result, error) {
	var res result
	sess, err := persistlog.ReadSession(worldDir)
	if err != nil {
		return res, fmt.Errorf("session: %w", err)
	}
	res.Seed = sess.Seed
	if configDir == "" {
		configDir = sess.ConfigDir
	}
	cats, err := catalogs.Load(configDir)
	if err != nil {
		return res, fmt.Errorf("catalogs: %w", err)
	}
	if cats.Digest != sess.CatalogDigest {
		logger.WithFields(logrus.Fields{
			"recorded": sess.CatalogDigest,
			"loaded":   cats.Digest,
		}).Warn("catalogs changed since the session was recorded")
	}

	tune := sess.Tuning
	tune.Seed = sess.Seed
	w, err := world.New(world.ConfigFromTuning(sess.WorldID, tune), cats)
	if err != nil {
		return res, err
	}
	w.SetLogger(logger)
	if _, err := w.Setup(); err != nil {
		return res, err
	}

	err = persistlog.ReadTicks(worldDir, func(entry world.TickLogEntry) error {
		if toTick != 0 && entry.Tick > toTick {
			return errStop
		}
		tick, digest := w.StepOnce(entry.Commands, entry.DtMS)
		if tick != entry.Tick {
			return fmt.Errorf("tick mismatch: stepped=%d journal=%d", tick, entry.Tick)
		}
		if digest != entry.Digest {
			return fmt.Errorf("digest mismatch at tick %d: got=%s want=%s", tick, digest, entry.Digest)
		}
		res.Checked++
		res.LastTick = tick
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return res, err
	}
	res.Outcome = w.Outcome()
	return res, nil
}

func countEvents(worldDir string) (map[string]int, error) {
	counts := map[string]int{}
	err := persistlog.ReadEvents(worldDir, func(e world.EventEntry) error {
		counts[e.Kind]++
		return nil
	})
	return counts, err
}
