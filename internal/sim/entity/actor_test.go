package entity

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"dinotrek.io/internal/sim/rng"
	"dinotrek.io/internal/sim/world/logic/mathx"
)

type fakeSurroundings struct {
	actors []*Actor
}

func (f *fakeSurroundings) FindNearestActor(pos mgl64.Vec3, filter func(*Actor) bool) (float64, *Actor) {
	best, bestDist := (*Actor)(nil), math.Inf(1)
	for _, a := range f.actors {
		if filter != nil && !filter(a) {
			continue
		}
		if d := mathx.Distance(pos, a.Pos); d < bestDist {
			best, bestDist = a, d
		}
	}
	return bestDist, best
}

func (f *fakeSurroundings) ActorByID(id string) *Actor {
	for _, a := range f.actors {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (f *fakeSurroundings) PhysicsOptions() PhysicsOptions { return DefaultPhysics() }

func newAutonomous(faction string, src rng.Source) *Actor {
	cfg := DefaultActorConfig()
	cfg.Faction = faction
	cfg.Autonomous = true
	return NewActor(cfg, src)
}

func TestNewActor_DerivedForces(t *testing.T) {
	a := NewActor(DefaultActorConfig(), nil)
	if a.WalkForce != 60000 || a.JumpForce != 6000000 {
		t.Fatalf("walk=%v jump=%v", a.WalkForce, a.JumpForce)
	}
	if a.Stamina.Current != 50 || a.Health.Max != 50 {
		t.Fatalf("pools stamina=%+v health=%+v", a.Stamina, a.Health)
	}
	if a.Plan.Name != PlanRest || a.Aggro() {
		t.Fatalf("initial plan=%v aggro=%v", a.Plan.Name, a.Aggro())
	}
}

func TestUpdatePlan_FleesAwayFromThreat(t *testing.T) {
	prey := newAutonomous("herbivore", rng.Fixed(0))
	prey.FleeDistance = 200
	threat := newAutonomous("trex", rng.Fixed(0))
	threat.MoveTo(mgl64.Vec3{100, 0, 0})
	s := &fakeSurroundings{actors: []*Actor{prey, threat}}

	prey.UpdateLook(s)
	if prey.LookTargetID != "" {
		t.Fatalf("flee-worthy target should not be looked at, got %q", prey.LookTargetID)
	}
	if prey.LookTargetDistance != 100 {
		t.Fatalf("look distance=%v want 100", prey.LookTargetDistance)
	}

	plan, ok := prey.UpdatePlan(s)
	if !ok || plan.Name != PlanFlee || plan.MoveTarget == nil {
		t.Fatalf("plan=%+v ok=%v want flee", plan, ok)
	}
	if !plan.MoveTarget.ApproxEqualThreshold(mgl64.Vec3{-200, 0, 0}, 1e-9) {
		t.Fatalf("flee target=%v want (-200,0,0)", *plan.MoveTarget)
	}
}

func TestUpdatePlan_HuntSetsAggro(t *testing.T) {
	hunter := newAutonomous("trex", rng.Fixed(0))
	hunter.HuntDistance = 500
	prey := newAutonomous("herbivore", rng.Fixed(0))
	prey.MoveTo(mgl64.Vec3{300, 0, 0})
	s := &fakeSurroundings{actors: []*Actor{hunter, prey}}

	hunter.Update(16, s)
	if hunter.Plan.Name != PlanHunt || !hunter.Aggro() {
		t.Fatalf("plan=%v aggro=%v want hunt", hunter.Plan.Name, hunter.Aggro())
	}
	if hunter.Plan.MoveTarget == nil || hunter.Plan.MoveTarget.X() != 300 {
		t.Fatalf("hunt target=%v", hunter.Plan.MoveTarget)
	}
	if got := hunter.GetDamage(); got != 20 {
		t.Fatalf("aggro damage=%v want 20", got)
	}
	if hunter.Animation != AnimAttack {
		t.Fatalf("animation=%q", hunter.Animation)
	}
}

func TestUpdatePlan_ExhaustedRests(t *testing.T) {
	a := newAutonomous("herbivore", rng.Fixed(0))
	a.Wandering = true
	a.Stamina.Set(0)
	plan, ok := a.UpdatePlan(&fakeSurroundings{})
	if !ok || plan.Name != PlanRest {
		t.Fatalf("plan=%v want rest", plan.Name)
	}
	if a.Cooldowns[CooldownPlanning] != 30 {
		t.Fatalf("planning cooldown=%v want 30", a.Cooldowns[CooldownPlanning])
	}
	if _, ok := a.UpdatePlan(&fakeSurroundings{}); ok {
		t.Fatalf("planning should wait for cooldown")
	}
}

func TestUpdatePlan_WanderWithinRange(t *testing.T) {
	a := newAutonomous("herbivore", &rng.Sequence{Values: []float64{0.9, 0.1, 0.2, 0.7, 0.5, 0.5}})
	a.Wandering = true
	a.AttentionDistance = 0
	plan, ok := a.UpdatePlan(&fakeSurroundings{})
	if !ok || plan.Name != PlanWander || plan.MoveTarget == nil {
		t.Fatalf("plan=%+v want wander", plan)
	}
	for i := 0; i < 2; i++ {
		if math.Abs(plan.MoveTarget[i]) >= a.MaxWanderRange {
			t.Fatalf("wander target %v outside range", *plan.MoveTarget)
		}
	}
	if cd := a.Cooldowns[CooldownPlanning]; cd < 11 || cd > 21 {
		t.Fatalf("wander cooldown=%v want 11..21", cd)
	}
}

func TestUpdatePlan_NotAutonomous(t *testing.T) {
	a := NewActor(DefaultActorConfig(), rng.Fixed(0))
	if _, ok := a.UpdatePlan(&fakeSurroundings{}); ok {
		t.Fatalf("non-autonomous actor planned")
	}
}

func TestUpdateMovement_ArrivalRests(t *testing.T) {
	a := newAutonomous("herbivore", rng.Fixed(0))
	target := mgl64.Vec3{50, 0, 0}
	a.Plan = Plan{Name: PlanWander, MoveTarget: &target}
	a.UpdateMovement(16, &fakeSurroundings{})
	if a.Plan.Name != PlanRest || a.Plan.MoveTarget != nil {
		t.Fatalf("plan=%+v want rest", a.Plan)
	}
}

func TestUpdateMovement_TurnsBeforeWalking(t *testing.T) {
	a := newAutonomous("herbivore", rng.Fixed(0))
	a.Grounded = true
	behind := mgl64.Vec3{-1000, 0, 0}
	a.Plan = Plan{Name: PlanWander, MoveTarget: &behind}
	a.UpdateMovement(16, &fakeSurroundings{})
	if a.IsMoving() {
		t.Fatalf("walked before facing the target")
	}

	ahead := mgl64.Vec3{1000, 0, 0}
	a.SetFacing(0)
	a.Plan = Plan{Name: PlanWander, MoveTarget: &ahead}
	a.UpdateMovement(16, &fakeSurroundings{})
	if !a.IsMoving() || a.MovementForce.X() <= 0 {
		t.Fatalf("expected walk toward +X, force=%v", a.MovementForce)
	}
	if a.Stamina.Current >= 50 {
		t.Fatalf("walking should use stamina")
	}
}

func TestRegenerate_StaminaOnlyWhenIdle(t *testing.T) {
	a := NewActor(DefaultActorConfig(), nil)
	a.Stamina.Set(10)
	a.Health.Set(10)
	a.MovementForce = mgl64.Vec3{1, 0, 0}
	a.Regenerate(1000)
	if a.Stamina.Current != 10 || a.Health.Current != 12 {
		t.Fatalf("moving regen stamina=%v health=%v", a.Stamina.Current, a.Health.Current)
	}
	a.MovementForce = mgl64.Vec3{}
	a.Regenerate(1000)
	if a.Stamina.Current != 15 {
		t.Fatalf("idle regen stamina=%v want 15", a.Stamina.Current)
	}
}

func TestJump_RequiresGround(t *testing.T) {
	a := NewActor(DefaultActorConfig(), nil)
	if a.Jump(16) {
		t.Fatalf("jumped while airborne")
	}
	a.Grounded = true
	if !a.Jump(16) || a.Acc.Z() <= 0 {
		t.Fatalf("jump failed acc=%v", a.Acc)
	}
}

func TestCooldowns_TickFloorsAtZero(t *testing.T) {
	c := Cooldowns{CooldownLooking: 1}
	c.Tick(0.4)
	if c[CooldownLooking] != 0.6 {
		t.Fatalf("looking=%v", c[CooldownLooking])
	}
	c.Tick(5)
	if c[CooldownLooking] != 0 || !c.Ready(CooldownLooking) {
		t.Fatalf("looking=%v want 0", c[CooldownLooking])
	}
}

func TestUpdate_RestIdlesOnlyWhenStill(t *testing.T) {
	a := NewActor(DefaultActorConfig(), nil)
	a.Grounded = true
	s := &fakeSurroundings{}

	a.Walk(16, 0, 1)
	a.Update(16, s)
	if a.Animation != AnimWalk {
		t.Fatalf("steered resting actor animation=%q want walk", a.Animation)
	}
	a.Update(16, s)
	if a.Animation != AnimIdle {
		t.Fatalf("still resting actor animation=%q want idle", a.Animation)
	}
}
