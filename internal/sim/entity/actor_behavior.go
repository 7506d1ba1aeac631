package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"dinotrek.io/internal/sim/rng"
	"dinotrek.io/internal/sim/world/logic/mathx"
)

const (
	CloseEnough = 100.0 // arrival distance for a move target
	SlowDist    = 500.0 // inside this, turning and walking slow down

	walkAfterTurn = 0.2
)

// UpdateLook scans for the nearest actor of another faction, at most once a
// second. A threat inside flee distance is remembered by position only, so the
// actor does not turn to face it.
func (a *Actor) UpdateLook(s Surroundings) {
	if !a.Autonomous || !a.Cooldowns.Ready(CooldownLooking) {
		return
	}
	a.LookTargetID = ""
	a.LookTargetDistance = math.Inf(1)
	a.hasThreat = false
	a.HeatUp(CooldownLooking, 1)

	dist, who := s.FindNearestActor(a.Pos, func(o *Actor) bool {
		return o.ID != a.ID && o.Faction != a.Faction
	})
	if who == nil {
		return
	}
	switch {
	case dist < a.FleeDistance:
		a.LookTargetDistance = dist
		a.threat, a.hasThreat = who.Pos, true
	case dist < a.AttentionDistance || dist < a.HuntDistance:
		a.LookTargetID = who.ID
		a.LookTargetDistance = dist
		a.threat, a.hasThreat = who.Pos, true
	}
}

// UpdatePlan picks a new plan when the planning cooldown allows it. The
// second result is false when the current plan should be kept.
func (a *Actor) UpdatePlan(s Surroundings) (Plan, bool) {
	if !a.Autonomous || !a.Cooldowns.Ready(CooldownPlanning) {
		return Plan{}, false
	}
	if a.Stamina.AtMin() {
		a.HeatUp(CooldownPlanning, 30)
		return RestPlan(), true
	}
	dist := a.LookTargetDistance
	if a.hasThreat && dist < a.FleeDistance && rng.Chance(a.rng, 0.8) {
		away := mathx.AngleFacing(a.Pos, a.threat) + math.Pi
		x, y := mathx.PolarToCartesian(a.FleeDistance, away)
		target := a.Pos.Add(mgl64.Vec3{x, y, 0})
		a.HeatUp(CooldownPlanning, float64(rng.Int(a.rng, 8)))
		return Plan{Name: PlanFlee, MoveTarget: &target}, true
	}
	if dist < a.HuntDistance && rng.Chance(a.rng, 0.8) {
		if prey := s.ActorByID(a.LookTargetID); prey != nil {
			target := prey.Pos
			a.HeatUp(CooldownPlanning, 1)
			return Plan{Name: PlanHunt, MoveTarget: &target}, true
		}
	}
	if dist < a.AttentionDistance && rng.Chance(a.rng, 0.5) {
		a.HeatUp(CooldownPlanning, float64(2+rng.Int(a.rng, 8)))
		return Plan{Name: PlanWatch}, true
	}
	if a.Wandering {
		r := int(a.MaxWanderRange)
		dx := rng.Int(a.rng, r) - rng.Int(a.rng, r)
		dy := rng.Int(a.rng, r) - rng.Int(a.rng, r)
		target := a.Pos.Add(mgl64.Vec3{float64(dx), float64(dy), 0})
		a.HeatUp(CooldownPlanning, 11+rng.Bell(a.rng, 10))
		return Plan{Name: PlanWander, MoveTarget: &target}, true
	}
	return RestPlan(), true
}

// UpdateMovement steers toward the plan's move target, or faces the look
// target when there is none. Arriving within CloseEnough ends the plan.
func (a *Actor) UpdateMovement(dtMS float64, s Surroundings) {
	if !a.Mobile || !a.Autonomous {
		return
	}
	if a.Plan.MoveTarget == nil {
		if t := s.ActorByID(a.LookTargetID); t != nil {
			a.TurnToward(t.Pos, dtMS*a.TurnSpeed)
		}
		return
	}
	target := *a.Plan.MoveTarget
	dist := mathx.Distance2D(a.Pos, target)
	if dist < CloseEnough {
		a.Plan = RestPlan()
		return
	}
	proximity := 1.0
	if dist <= SlowDist {
		proximity = dist / SlowDist
	}
	left := a.TurnToward(target, dtMS*a.TurnSpeed*proximity)
	if left < walkAfterTurn {
		a.Walk(dtMS, 0, proximity)
	}
}
