package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"dinotrek.io/internal/sim/rng"
)

type PlanName string

const (
	PlanRest   PlanName = "rest"
	PlanFlee   PlanName = "flee"
	PlanHunt   PlanName = "hunt"
	PlanWatch  PlanName = "watch"
	PlanWander PlanName = "wander"
)

const (
	CooldownPlanning = "planning"
	CooldownLooking  = "looking"
)

const (
	AnimIdle   = "idle"
	AnimWalk   = "walk"
	AnimAttack = "attack"
)

type Plan struct {
	Name       PlanName
	MoveTarget *mgl64.Vec3
}

func RestPlan() Plan { return Plan{Name: PlanRest} }

// Surroundings is what an actor needs from its world to perceive and move.
type Surroundings interface {
	FindNearestActor(pos mgl64.Vec3, filter func(*Actor) bool) (float64, *Actor)
	ActorByID(id string) *Actor
	PhysicsOptions() PhysicsOptions
}

type Actor struct {
	Body

	Faction    string
	Mobile     bool
	Autonomous bool
	Wandering  bool

	Stamina Pool
	Health  Pool

	StaminaRegen      float64
	HealthRegen       float64
	StaminaUsePerWalk float64
	TiredMultiplier   float64
	SprintMultiplier  float64

	WalkForce float64
	JumpForce float64
	TurnSpeed float64

	AttentionDistance float64
	HuntDistance      float64
	FleeDistance      float64
	DamageRange       float64
	MaxWanderRange    float64

	// LookTargetID is resolved through the world on every use, so a
	// despawned target simply stops resolving.
	LookTargetID       string
	LookTargetDistance float64

	Plan      Plan
	Cooldowns Cooldowns

	rng       rng.Source
	threat    mgl64.Vec3
	hasThreat bool
}

func NewActor(cfg ActorConfig, src rng.Source) *Actor {
	cfg = cfg.Clone()
	a := &Actor{
		Body:              newBody(cfg.Name),
		Faction:           cfg.Faction,
		Mobile:            cfg.Mobile,
		Autonomous:        cfg.Autonomous,
		Wandering:         cfg.Wandering,
		Stamina:           NewPool(cfg.Stamina, cfg.Stamina),
		Health:            NewPool(cfg.Health, cfg.Health),
		StaminaRegen:      cfg.StaminaRegen,
		HealthRegen:       cfg.HealthRegen,
		StaminaUsePerWalk: cfg.StaminaUsePerWalk,
		TiredMultiplier:   cfg.TiredMultiplier,
		SprintMultiplier:  cfg.SprintMultiplier,
		WalkForce:         cfg.WalkForce,
		JumpForce:         cfg.JumpForce,
		TurnSpeed:         cfg.TurnSpeed,
		AttentionDistance: cfg.AttentionDistance,
		HuntDistance:      cfg.HuntDistance,
		FleeDistance:      cfg.FleeDistance,
		DamageRange:       cfg.DamageRange,
		MaxWanderRange:    cfg.MaxWanderRange,
		Plan:              RestPlan(),
		Cooldowns:         Cooldowns{CooldownPlanning: 0, CooldownLooking: 0},
		rng:               src,
	}
	if a.rng == nil {
		a.rng = rng.New(1)
	}
	a.LookTargetDistance = math.Inf(1)
	a.Mass = cfg.Mass
	a.Size = cfg.Size
	a.HeightSizeOffset = cfg.HeightSizeOffset
	a.MaxVelocity = cfg.MaxVelocity
	a.Physics = cfg.Physics
	a.Tags = cfg.Tags
	a.RenderAs = cfg.RenderAs
	a.Model = cfg.Model
	a.Color = cfg.Color
	a.PhysicsShape = cfg.PhysicsShape
	a.DespawnRadius = cfg.DespawnRadius
	a.Important = cfg.Important
	a.Character = cfg.Character
	a.Inventory.Size = cfg.InventorySize
	a.Animation = AnimIdle
	if a.WalkForce == 0 {
		a.WalkForce = 1000 * a.Mass
	}
	if a.JumpForce == 0 {
		a.JumpForce = a.WalkForce * 100
	}
	return a
}

// Aggro holds exactly while the actor is hunting.
func (a *Actor) Aggro() bool { return a.Plan.Name == PlanHunt }

// Walk pushes the actor along facing+directionOffset. Walking in the air or
// while exhausted is weaker.
func (a *Actor) Walk(dtMS, directionOffset, multiplier float64) {
	force := a.WalkForce * multiplier
	if !a.Grounded {
		force *= 0.2
	}
	if a.Stamina.AtMin() {
		force *= a.TiredMultiplier
	}
	a.ApplyPlanarImpulse(dtMS, force, directionOffset)
	a.Stamina.Subtract(a.StaminaUsePerWalk * multiplier * dtMS / 1000)
	a.Animation = AnimWalk
}

func (a *Actor) Sprint(dtMS, directionOffset float64) {
	a.Walk(dtMS, directionOffset, a.SprintMultiplier)
}

// Jump fails when the actor is not standing on something.
func (a *Actor) Jump(dtMS float64) bool {
	if !a.Grounded {
		return false
	}
	force := a.JumpForce
	if a.Stamina.AtMin() {
		force *= a.TiredMultiplier
	}
	a.ApplyImpulse(dtMS, mgl64.Vec3{0, 0, force})
	a.Grounded = false
	return true
}

// Regenerate restores health, and stamina while not moving on its own.
func (a *Actor) Regenerate(dtMS float64) {
	seconds := dtMS / 1000
	if !a.IsMoving() {
		a.Stamina.Add(a.StaminaRegen * seconds)
	}
	a.Health.Add(a.HealthRegen * seconds)
}

func (a *Actor) UpdateTimers(dtMS float64) { a.Cooldowns.Tick(dtMS / 1000) }

func (a *Actor) HeatUp(name string, seconds float64) { a.Cooldowns.HeatUp(name, seconds) }

func (a *Actor) CoolDown(name string, seconds float64) { a.Cooldowns.CoolDown(name, seconds) }

// GetDamage rolls the damage dealt this second and switches to the attack
// animation. Hunting doubles it.
func (a *Actor) GetDamage() float64 {
	m := 1.0
	if a.Aggro() {
		m = 2
	}
	a.Animation = AnimAttack
	return float64(10+rng.Int(a.rng, 10)) * m
}

// Update runs one behavior tick: regen, timers, look, plan, movement, physics.
func (a *Actor) Update(dtMS float64, s Surroundings) {
	a.Stamina.ClearLastDelta()
	a.Health.ClearLastDelta()
	a.Regenerate(dtMS)
	a.UpdateTimers(dtMS)
	a.UpdateLook(s)
	if p, ok := a.UpdatePlan(s); ok {
		a.Plan = p
	}
	a.UpdateMovement(dtMS, s)
	// A resting actor that is being steered from outside keeps its walk.
	if a.Plan.Name == PlanRest && !a.IsMoving() {
		a.Animation = AnimIdle
	}
	a.UpdatePhysics(dtMS, s.PhysicsOptions())
}
