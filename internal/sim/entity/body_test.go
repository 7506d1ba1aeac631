package entity

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestUpdatePhysics_ClampsVelocity(t *testing.T) {
	a := NewActor(DefaultActorConfig(), nil)
	a.Grounded = true
	a.ApplyForce(mgl64.Vec3{1e9, -1e9, 1e9})
	for i := 0; i < 10; i++ {
		a.UpdatePhysics(16, DefaultPhysics())
		for j, v := range a.Vel {
			if math.Abs(v) > a.MaxVelocity {
				t.Fatalf("step %d: vel[%d]=%v exceeds %v", i, j, v, a.MaxVelocity)
			}
		}
	}
}

func TestUpdatePhysics_DiagonalWalkStaysClamped(t *testing.T) {
	b := newBody("walker")
	b.Physics = true
	b.Mass = 1
	b.Grounded = true
	b.MaxVelocity = 600
	b.Vel = mgl64.Vec3{600, 600, 0}
	b.MovementForce = mgl64.Vec3{1, 0.2, 0}
	b.UpdatePhysics(16, DefaultPhysics())
	for j, v := range b.Vel {
		if math.Abs(v) > 600 {
			t.Fatalf("vel[%d]=%v exceeds 600", j, v)
		}
	}
	if b.Vel[0] != 600 {
		t.Fatalf("vel x=%v want clamped 600", b.Vel[0])
	}
}

func TestUpdatePhysics_NoPhysicsIsNoop(t *testing.T) {
	b := newBody("rock")
	b.Vel = mgl64.Vec3{10, 0, 0}
	if b.UpdatePhysics(16, DefaultPhysics()) {
		t.Fatalf("expected no-op without physics flag")
	}
	if b.Pos != (mgl64.Vec3{}) {
		t.Fatalf("pos moved: %v", b.Pos)
	}
}

func TestUpdatePhysics_GravityOnlyInAir(t *testing.T) {
	b := newBody("ball")
	b.Physics = true
	b.Mass = 1
	b.Grounded = true
	b.UpdatePhysics(16, DefaultPhysics())
	if b.Vel.Z() != 0 {
		t.Fatalf("grounded body fell: vel=%v", b.Vel)
	}
	b.Grounded = false
	b.UpdatePhysics(16, DefaultPhysics())
	if b.Vel.Z() >= 0 {
		t.Fatalf("airborne body did not fall: vel=%v", b.Vel)
	}
}

func TestUpdatePhysics_SnapsTinyVelocity(t *testing.T) {
	b := newBody("dust")
	b.Physics = true
	b.Grounded = true
	b.Vel = mgl64.Vec3{0.0005, -0.0005, 0}
	b.UpdatePhysics(1, DefaultPhysics())
	if b.Vel != (mgl64.Vec3{}) {
		t.Fatalf("vel=%v want zero", b.Vel)
	}
}

func TestApplyForce_MasslessIgnored(t *testing.T) {
	b := newBody("ghost")
	b.ApplyForce(mgl64.Vec3{100, 0, 0})
	if b.Acc != (mgl64.Vec3{}) {
		t.Fatalf("acc=%v want zero", b.Acc)
	}
}

func TestApplyImpulse_RecordsMovementForce(t *testing.T) {
	b := newBody("walker")
	b.Mass = 2
	b.ApplyImpulse(500, mgl64.Vec3{10, 0, 0})
	if b.MovementForce.X() != 5 {
		t.Fatalf("movement force=%v want 5", b.MovementForce)
	}
	if b.Acc.X() != 2.5 {
		t.Fatalf("acc=%v want 2.5", b.Acc)
	}
	if !b.IsMoving() {
		t.Fatalf("expected moving")
	}
}

func TestTurnToward_ShortestWayAndUnsignedRemainder(t *testing.T) {
	b := newBody("turner")
	b.SetFacing(math.Pi - 0.1)
	// Target sits just across the ±π seam; the short way is +0.2 rad.
	target := mgl64.Vec3{math.Cos(-math.Pi + 0.1), math.Sin(-math.Pi + 0.1), 0}
	left := b.TurnToward(target, 0.05)
	if math.Abs(left-0.15) > 1e-9 {
		t.Fatalf("left=%v want 0.15", left)
	}
	left = b.TurnToward(target, 1)
	if left != 0 {
		t.Fatalf("left=%v want 0", left)
	}
	if d := math.Abs(b.Facing - (-math.Pi + 0.1)); d > 1e-9 {
		t.Fatalf("facing=%v", b.Facing)
	}

	// Turning clockwise also reports a positive remainder.
	b.SetFacing(0)
	left = b.TurnToward(mgl64.Vec3{0, -1, 0}, 0.5)
	if math.Abs(left-(math.Pi/2-0.5)) > 1e-9 {
		t.Fatalf("clockwise left=%v", left)
	}
}

func TestSetGrounded_SnapsHeight(t *testing.T) {
	b := newBody("lander")
	b.Pos = mgl64.Vec3{1, 2, 50}
	b.SetGrounded(false, 10)
	if b.Pos.Z() != 50 {
		t.Fatalf("z changed while airborne")
	}
	b.SetGrounded(true, 10)
	if b.Pos.Z() != 10 {
		t.Fatalf("z=%v want 10", b.Pos.Z())
	}
}

func TestTags(t *testing.T) {
	b := newBody("tagged")
	b.Tags = []string{"tree", "rooted"}
	if !b.HasTag("tree") || b.HasTag("dino") {
		t.Fatalf("HasTag mismatch")
	}
	if !b.HasOneOfTags("dino", "rooted") || b.HasOneOfTags("dino") {
		t.Fatalf("HasOneOfTags mismatch")
	}
}
