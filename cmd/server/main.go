package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"dinotrek.io/internal/logging"
	persistlog "dinotrek.io/internal/persistence/log"
	"dinotrek.io/internal/sim/catalogs"
	"dinotrek.io/internal/sim/tuning"
	"dinotrek.io/internal/sim/world"
)

func main() {
	var (
		addr      = flag.String("addr", ":8080", "http listen address")
		worldID   = flag.String("world", "world_1", "world id")
		seed      = flag.Int64("seed", 0, "world seed (0 keeps tuning.yaml's seed)")
		configDir = flag.String("configs", "./configs", "config directory")
		tunePath  = flag.String("tuning", "", "tuning.yaml path (defaults to <configs>/tuning.yaml)")
		dataDir   = flag.String("data", "./data", "runtime data directory")
		disableDB = flag.Bool("disable_db", false, "disable the sqlite index")
	)
	flag.Parse()

	if *tunePath == "" {
		*tunePath = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(*tunePath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.FromEnv().Fatalf("load tuning: %v", err)
	}
	if *seed != 0 {
		tune.Seed = *seed
	}

	root := logging.New(tune.Log.Level, tune.Log.Format)
	logger := logging.Component(root, "server").WithField("world", *worldID)
	if errors.Is(err, os.ErrNotExist) {
		logger.WithField("path", *tunePath).Warn("tuning file missing, using defaults")
	}

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	worldDir := filepath.Join(*dataDir, "worlds", *worldID)
	if err := os.MkdirAll(worldDir, 0o755); err != nil {
		logger.Fatalf("mkdir: %v", err)
	}

	w, err := world.New(world.ConfigFromTuning(*worldID, tune), cats)
	if err != nil {
		logger.Fatalf("world: %v", err)
	}
	w.SetLogger(logging.Component(root, "world"))

	tune.Seed = w.Config().Seed
	if err := persistlog.WriteSession(worldDir, persistlog.Session{
		WorldID:       *worldID,
		Seed:          tune.Seed,
		CatalogDigest: cats.Digest,
		ConfigDir:     *configDir,
		StartedAt:     time.Now().UTC(),
		Tuning:        tune,
	}); err != nil {
		logger.Fatalf("write session: %v", err)
	}

	idx, err := openRuntimeIndex(worldDir, *disableDB, logger)
	if err != nil {
		logger.Fatalf("index: %v", err)
	}
	if idx != nil {
		defer idx.Close()
		if err := idx.UpsertCatalogs(*configDir, cats, tune); err != nil {
			logger.WithError(err).Warn("index catalogs")
		}
	}

	tickLog := persistlog.NewTickLogger(worldDir)
	eventLog := persistlog.NewEventLogger(worldDir)
	defer tickLog.Close()
	defer eventLog.Close()
	if idx != nil {
		w.SetTickLogger(multiTickLogger{a: tickLog, b: idx})
		w.SetEventLogger(multiEventLogger{a: eventLog, b: idx})
	} else {
		w.SetTickLogger(tickLog)
		w.SetEventLogger(eventLog)
	}

	// Events emitted while building go to the journal too.
	ch, err := w.Setup()
	if err != nil {
		logger.Fatalf("setup: %v", err)
	}
	logger.WithFields(logrus.Fields{
		"seed":      tune.Seed,
		"character": ch.ID,
		"catalogs":  cats.Digest,
	}).Info("world ready")

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.WithError(err).Error("world stopped")
		}
	}()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           newMux(w, idx, root),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Infof("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
	cancel()
	<-done

	last := tickLog.Last()
	logger.WithFields(logrus.Fields{
		"tick":    last.Tick,
		"outcome": last.Outcome,
		"digest":  last.Digest,
		"events":  eventLog.Counts(),
	}).Info("session ended")
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
