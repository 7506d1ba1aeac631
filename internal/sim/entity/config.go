package entity

import (
	"math"
	"slices"
)

// ActorConfig holds every tunable actor field. Archetype files are decoded on
// top of DefaultActorConfig, so a key left out keeps its default.
type ActorConfig struct {
	Name      string   `yaml:"name"`
	Model     string   `yaml:"model"`
	RenderAs  string   `yaml:"render_as"`
	Color     string   `yaml:"color"`
	Tags      []string `yaml:"tags"`
	Faction   string   `yaml:"faction"`
	Character bool     `yaml:"character"`
	Important bool     `yaml:"important"`

	Mass             float64 `yaml:"mass"`
	Size             float64 `yaml:"size"`
	HeightSizeOffset float64 `yaml:"height_size_offset"`
	MaxVelocity      float64 `yaml:"max_velocity"`
	PhysicsShape     string  `yaml:"physics_shape"`
	DespawnRadius    float64 `yaml:"despawn_radius"`
	InventorySize    int     `yaml:"inventory_size"`

	Physics    bool `yaml:"physics"`
	Mobile     bool `yaml:"mobile"`
	Autonomous bool `yaml:"autonomous"`
	Wandering  bool `yaml:"wandering"`

	// Zero derives the force from mass.
	WalkForce float64 `yaml:"walk_force"`
	JumpForce float64 `yaml:"jump_force"`
	TurnSpeed float64 `yaml:"turn_speed"` // radians per millisecond

	Stamina           float64 `yaml:"stamina"`
	Health            float64 `yaml:"health"`
	StaminaRegen      float64 `yaml:"stamina_regen"` // per second
	HealthRegen       float64 `yaml:"health_regen"`
	StaminaUsePerWalk float64 `yaml:"stamina_use_per_walk"`
	TiredMultiplier   float64 `yaml:"tired_multiplier"`
	SprintMultiplier  float64 `yaml:"sprint_multiplier"`

	AttentionDistance float64 `yaml:"attention_distance"`
	HuntDistance      float64 `yaml:"hunt_distance"`
	FleeDistance      float64 `yaml:"flee_distance"`
	DamageRange       float64 `yaml:"damage_range"`
	MaxWanderRange    float64 `yaml:"max_wander_range"`
}

func DefaultActorConfig() ActorConfig {
	return ActorConfig{
		Name:              "Actor",
		RenderAs:          "box",
		Mass:              60,
		Size:              DefaultSize,
		HeightSizeOffset:  DefaultHeightSizeOffset,
		MaxVelocity:       DefaultMaxVelocity,
		Physics:           true,
		Mobile:            true,
		TurnSpeed:         2 * math.Pi / 1000,
		Stamina:           50,
		Health:            50,
		StaminaRegen:      5,
		HealthRegen:       2,
		StaminaUsePerWalk: 1.3,
		TiredMultiplier:   0.3,
		SprintMultiplier:  2,
		AttentionDistance: 900,
		DamageRange:       40,
		MaxWanderRange:    1400,
	}
}

// Clone copies the slices so archetypes are never shared between actors.
func (c ActorConfig) Clone() ActorConfig {
	c.Tags = slices.Clone(c.Tags)
	return c
}

// ItemPatch overwrites the fields that are set.
type ItemPatch struct {
	Name              *string            `yaml:"name"`
	Model             *string            `yaml:"model"`
	HeightSizeOffset  *float64           `yaml:"height_size_offset"`
	Rooted            *bool              `yaml:"rooted"`
	Scannable         *bool              `yaml:"scannable"`
	InteractionRange  *float64           `yaml:"interaction_range"`
	InteractionAction *string            `yaml:"interaction_action"`
	InteractionEffort *float64           `yaml:"interaction_effort"`
	InteractionResult *InteractionResult `yaml:"interaction_result"`
}

// InteractionResult lists the effects of a completed interaction.
// Give and Repair hold inventory selectors.
type InteractionResult struct {
	Modify *ItemPatch `yaml:"modify"`
	PickUp bool       `yaml:"pick_up"`
	Give   string     `yaml:"give"`
	Repair string     `yaml:"repair"`
}

func (r *InteractionResult) clone() *InteractionResult {
	if r == nil {
		return nil
	}
	c := *r
	if r.Modify != nil {
		m := *r.Modify
		m.InteractionResult = r.Modify.InteractionResult.clone()
		c.Modify = &m
	}
	return &c
}

type ItemConfig struct {
	Name                 string   `yaml:"name"`
	Model                string   `yaml:"model"`
	RenderAs             string   `yaml:"render_as"`
	Color                string   `yaml:"color"`
	Colors               []string `yaml:"colors"` // one is picked at spawn when Color is empty
	Tags                 []string `yaml:"tags"`
	InventoryDescription string   `yaml:"inventory_description"`
	Important            bool     `yaml:"important"`

	Mass             float64 `yaml:"mass"`
	Size             float64 `yaml:"size"`
	HeightSizeOffset float64 `yaml:"height_size_offset"`
	PhysicsShape     string  `yaml:"physics_shape"`
	DespawnRadius    float64 `yaml:"despawn_radius"`
	InventorySize    int     `yaml:"inventory_size"`
	RandomAtRadius   float64 `yaml:"random_at_radius"`

	Rooted    bool `yaml:"rooted"`
	Scannable bool `yaml:"scannable"`
	Damage    int  `yaml:"damage"`

	InteractionRange  float64            `yaml:"interaction_range"`
	InteractionAction string             `yaml:"interaction_action"`
	InteractionEffort float64            `yaml:"interaction_effort"`
	InteractionResult *InteractionResult `yaml:"interaction_result"`
}

func DefaultItemConfig() ItemConfig {
	return ItemConfig{
		Name:             "Item",
		RenderAs:         "box",
		Size:             DefaultSize,
		HeightSizeOffset: DefaultHeightSizeOffset,
	}
}

func (c ItemConfig) Clone() ItemConfig {
	c.Tags = slices.Clone(c.Tags)
	c.Colors = slices.Clone(c.Colors)
	c.InteractionResult = c.InteractionResult.clone()
	return c
}
