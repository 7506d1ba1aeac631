package world

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"dinotrek.io/internal/logging"
	"dinotrek.io/internal/sim/catalogs"
	"dinotrek.io/internal/sim/entity"
	"dinotrek.io/internal/sim/physics"
	"dinotrek.io/internal/sim/rng"
	genpkg "dinotrek.io/internal/sim/world/terrain/gen"
	"dinotrek.io/internal/sim/world/terrain/store"
)

// Entity is anything the world tracks by id.
type Entity interface {
	Base() *entity.Body
}

type Outcome string

const (
	OutcomeExploring Outcome = "exploring"
	OutcomeWon       Outcome = "won"
	OutcomeDead      Outcome = "dead"
)

// World is a single-threaded simulation of one session.
// All state must be accessed only from the world loop goroutine.
type World struct {
	cfg  WorldConfig
	cats *catalogs.Catalogs
	log  *logrus.Entry
	rng  rng.Source

	tick      atomic.Uint64
	worldTime float64 // seconds since midnight

	// actors and items keep insertion order; all indexes both by id.
	actors []*entity.Actor
	items  []*entity.Item
	all    map[string]Entity

	chunks        *store.ChunkStore
	visibleChunks []*store.Chunk
	engine        physics.Engine
	shapeWarned   map[string]bool

	character   *entity.Actor
	timeMachine *entity.Item
	outcome     Outcome

	messages   []string
	scan       []ScanResult
	lastDamage float64
	lastStepMS float64
	lastDigest string

	inbox       chan CommandEnvelope
	subscribe   chan FrameSubscription
	unsubscribe chan string
	stop        chan struct{}
	done        chan struct{}
	subscribers map[string]*subscriber

	// Optional sinks (may be nil). Implemented in internal/persistence/*.
	tickLogger  TickLogger
	eventLogger EventLogger

	metrics atomic.Value
}

func New(cfg WorldConfig, cats *catalogs.Catalogs) (*World, error) {
	cfg.applyDefaults()
	if cats == nil {
		return nil, fmt.Errorf("world %s: nil catalogs", cfg.ID)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = genpkg.DateSeed(time.Now())
	}
	cfg.Seed = seed
	gen := genpkg.New(seed, genpkg.GridPalette{})
	chunks := store.NewChunkStore(gen, cfg.Layout)
	chunks.MaxChunks = cfg.MaxChunks
	cfg.Layout = chunks.Layout

	w := &World{
		cfg:         cfg,
		cats:        cats,
		log:         logging.Discard(),
		rng:         rng.New(seed),
		worldTime:   cfg.StartHour * secondsPerHour,
		all:         map[string]Entity{},
		chunks:      chunks,
		shapeWarned: map[string]bool{},
		outcome:     OutcomeExploring,
		inbox:       make(chan CommandEnvelope, 64),
		subscribe:   make(chan FrameSubscription, 16),
		unsubscribe: make(chan string, 16),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
		subscribers: map[string]*subscriber{},
	}
	switch cfg.PhysicsEngine {
	case "plane":
		w.engine = physics.NewPlaneEngine(cfg.Physics.Gravity)
	case "none":
	default:
		return nil, fmt.Errorf("world %s: unknown physics engine %q", cfg.ID, cfg.PhysicsEngine)
	}
	w.metrics.Store(WorldMetrics{})
	return w, nil
}

func (w *World) SetLogger(l *logrus.Entry)           { w.log = l.WithField("world", w.cfg.ID) }
func (w *World) SetEngine(e physics.Engine)          { w.engine = e }
func (w *World) SetTickLogger(l TickLogger)          { w.tickLogger = l }
func (w *World) SetEventLogger(l EventLogger)        { w.eventLogger = l }
func (w *World) Inbox() chan<- CommandEnvelope       { return w.inbox }
func (w *World) Subscribe() chan<- FrameSubscription { return w.subscribe }

// Setup places the character at the origin and scatters the catalog around
// it. It must run once before the first Update.
func (w *World) Setup() (*entity.Actor, error) {
	if w.character != nil {
		return nil, fmt.Errorf("world %s: already set up", w.cfg.ID)
	}
	ch := w.AddNewCharacter(w.cats.Character)
	if err := w.Build(ch.Pos); err != nil {
		return nil, err
	}
	w.log.WithFields(logrus.Fields{
		"character": ch.ID,
		"items":     len(w.items),
	}).Info("world built")
	return ch, nil
}

func (w *World) ID() string { return w.cfg.ID }

// Config is fixed after New and safe to read from any goroutine.
func (w *World) Config() WorldConfig { return w.cfg }

func (w *World) TickRateHz() int { return w.cfg.TickRateHz }

func (w *World) CurrentTick() uint64 { return w.tick.Load() }

func (w *World) Character() *entity.Actor { return w.character }

func (w *World) TimeMachine() *entity.Item { return w.timeMachine }

func (w *World) Outcome() Outcome { return w.outcome }

func (w *World) Catalogs() *catalogs.Catalogs { return w.cats }

func (w *World) Chunks() *store.ChunkStore { return w.chunks }

// Actors returns the live slice; callers must not mutate it.
func (w *World) Actors() []*entity.Actor { return w.actors }

func (w *World) Items() []*entity.Item { return w.items }

func (w *World) PhysicsOptions() entity.PhysicsOptions { return w.cfg.Physics }

func (w *World) Messages() []string { return w.messages }

func (w *World) addToLog(msgs ...string) {
	w.messages = append(w.messages, msgs...)
	if over := len(w.messages) - w.cfg.MessageLogSize; over > 0 {
		w.messages = append(w.messages[:0], w.messages[over:]...)
	}
}

// TerrainChunks returns the square of chunks around center, generating what
// is missing.
func (w *World) TerrainChunks(center mgl64.Vec3, radius int) ([]*store.Chunk, error) {
	return w.chunks.MakeTerrainChunks(center, radius)
}
