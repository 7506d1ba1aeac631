package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	ProtocolVersion string `yaml:"protocol_version"`

	TickRateHz int   `yaml:"tick_rate_hz"`
	Seed       int64 `yaml:"seed"` // 0 seeds from the current date

	// Clock.
	WorldTimePerGameTime float64 `yaml:"world_time_per_game_time"`
	StartHour            float64 `yaml:"start_hour"`

	// Population and spawning, in world units.
	MaxActors          int        `yaml:"max_actors"`
	SpawnActorDistance float64    `yaml:"spawn_actor_distance"`
	SpawnRadii         [2]float64 `yaml:"spawn_radii"`
	DespawnRadius      float64    `yaml:"despawn_radius"`
	SpawnEveryTicks    int        `yaml:"spawn_every_ticks"`
	InitialTrees       int        `yaml:"initial_trees"`

	// Terrain.
	ChunkRadius int     `yaml:"chunk_radius"`
	MaxChunks   int     `yaml:"max_chunks"`
	SegmentSize float64 `yaml:"segment_size"`
	Segments    int     `yaml:"segments"`
	TextureSize int     `yaml:"texture_size"`

	Physics Physics `yaml:"physics"`

	ScanEveryTicks int `yaml:"scan_every_ticks"`
	MessageLogSize int `yaml:"message_log_size"`

	Log Log `yaml:"log"`
}

type Physics struct {
	Gravity           float64 `yaml:"gravity"` // applied along -Z
	GroundFriction    float64 `yaml:"ground_friction"`
	AirFriction       float64 `yaml:"air_friction"`
	AccelerationDecay float64 `yaml:"acceleration_decay"`
	Engine            string  `yaml:"engine"` // "plane" or "none"
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Defaults() Tuning {
	return Tuning{
		ProtocolVersion:      "0.1",
		TickRateHz:           60,
		WorldTimePerGameTime: 100,
		StartHour:            8,
		MaxActors:            5000,
		SpawnActorDistance:   1000,
		SpawnRadii:           [2]float64{1000, 3500},
		DespawnRadius:        5250,
		SpawnEveryTicks:      300,
		ChunkRadius:          3,
		SegmentSize:          32,
		Segments:             80,
		TextureSize:          256,
		Physics: Physics{
			Gravity:           80,
			GroundFriction:    0.006,
			AirFriction:       0.0001,
			AccelerationDecay: 0.9,
			Engine:            "plane",
		},
		ScanEveryTicks: 60,
		MessageLogSize: 50,
		Log:            Log{Level: "info", Format: "text"},
	}
}

// Load decodes the file on top of Defaults.
func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t Tuning) Validate() error {
	switch {
	case t.TickRateHz <= 0:
		return fmt.Errorf("tick_rate_hz must be > 0, got %d", t.TickRateHz)
	case t.SpawnRadii[0] < 0 || t.SpawnRadii[1] < t.SpawnRadii[0]:
		return fmt.Errorf("spawn_radii must be [min, max] with 0 <= min <= max, got %v", t.SpawnRadii)
	case t.SegmentSize <= 0 || t.Segments <= 0:
		return fmt.Errorf("segment_size and segments must be > 0")
	case t.ChunkRadius < 0:
		return fmt.Errorf("chunk_radius must be >= 0, got %d", t.ChunkRadius)
	}
	switch t.Physics.Engine {
	case "", "plane", "none":
	default:
		return fmt.Errorf("unknown physics engine %q", t.Physics.Engine)
	}
	return nil
}

// ChunkSize is the edge length of one terrain chunk in world units.
func (t Tuning) ChunkSize() float64 { return t.SegmentSize * float64(t.Segments) }
