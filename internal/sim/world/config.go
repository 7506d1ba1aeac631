package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"dinotrek.io/internal/sim/entity"
	"dinotrek.io/internal/sim/tuning"
	"dinotrek.io/internal/sim/world/terrain/store"
)

type WorldConfig struct {
	ID         string
	TickRateHz int
	Seed       int64

	// World seconds per real second.
	WorldTimePerGameTime float64
	StartHour            float64

	MaxActors          int
	SpawnActorDistance float64
	SpawnRadii         [2]float64
	DespawnRadius      float64
	SpawnEveryTicks    int // 0 disables periodic creature spawns
	InitialTrees       int

	ChunkRadius int
	MaxChunks   int
	Layout      store.Layout

	Physics       entity.PhysicsOptions
	PhysicsEngine string // "plane" or "none"

	ScanEveryTicks int
	MessageLogSize int
}

func ConfigFromTuning(id string, t tuning.Tuning) WorldConfig {
	return WorldConfig{
		ID:                   id,
		TickRateHz:           t.TickRateHz,
		Seed:                 t.Seed,
		WorldTimePerGameTime: t.WorldTimePerGameTime,
		StartHour:            t.StartHour,
		MaxActors:            t.MaxActors,
		SpawnActorDistance:   t.SpawnActorDistance,
		SpawnRadii:           t.SpawnRadii,
		DespawnRadius:        t.DespawnRadius,
		SpawnEveryTicks:      t.SpawnEveryTicks,
		InitialTrees:         t.InitialTrees,
		ChunkRadius:          t.ChunkRadius,
		MaxChunks:            t.MaxChunks,
		Layout: store.Layout{
			ChunkSize:   t.ChunkSize(),
			SegmentSize: t.SegmentSize,
			TextureSize: t.TextureSize,
		},
		Physics: entity.PhysicsOptions{
			Gravity:           mgl64.Vec3{0, 0, -t.Physics.Gravity},
			GroundFriction:    t.Physics.GroundFriction,
			AirFriction:       t.Physics.AirFriction,
			AccelerationDecay: t.Physics.AccelerationDecay,
		},
		PhysicsEngine:  t.Physics.Engine,
		ScanEveryTicks: t.ScanEveryTicks,
		MessageLogSize: t.MessageLogSize,
	}
}

func (c *WorldConfig) applyDefaults() {
	if c.ID == "" {
		c.ID = "world_1"
	}
	if c.TickRateHz <= 0 {
		c.TickRateHz = 60
	}
	if c.WorldTimePerGameTime <= 0 {
		c.WorldTimePerGameTime = 100
	}
	if c.StartHour < 0 || c.StartHour >= 24 {
		c.StartHour = 8
	}
	if c.MaxActors <= 0 {
		c.MaxActors = 5000
	}
	if c.SpawnActorDistance <= 0 {
		c.SpawnActorDistance = 1000
	}
	if c.SpawnRadii == ([2]float64{}) {
		c.SpawnRadii = [2]float64{c.SpawnActorDistance, 3500}
	}
	if c.DespawnRadius <= 0 {
		c.DespawnRadius = c.SpawnRadii[1] * 1.5
	}
	if c.ChunkRadius < 0 {
		c.ChunkRadius = 0
	}
	if c.Physics == (entity.PhysicsOptions{}) {
		c.Physics = entity.DefaultPhysics()
	}
	if c.PhysicsEngine == "" {
		c.PhysicsEngine = "plane"
	}
	if c.ScanEveryTicks <= 0 {
		c.ScanEveryTicks = 60
	}
	if c.MessageLogSize <= 0 {
		c.MessageLogSize = 50
	}
}
