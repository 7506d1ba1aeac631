package entity

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"dinotrek.io/internal/sim/physics"
	"dinotrek.io/internal/sim/world/logic/mathx"
)

const (
	DefaultMaxVelocity      = 600.0
	DefaultSize             = 2.0
	DefaultHeightSizeOffset = 0.5
	DefaultLookLength       = 30.0

	velocitySnap = 0.001
)

// PhysicsOptions are the per-world constants used by UpdatePhysics.
// Friction values are fractions of velocity removed per millisecond.
type PhysicsOptions struct {
	Gravity           mgl64.Vec3 `json:"gravity"`
	GroundFriction    float64    `json:"ground_friction"`
	AirFriction       float64    `json:"air_friction"`
	AccelerationDecay float64    `json:"acceleration_decay"`
}

func DefaultPhysics() PhysicsOptions {
	return PhysicsOptions{
		Gravity:           mgl64.Vec3{0, 0, -80},
		GroundFriction:    0.006,
		AirFriction:       0.0001,
		AccelerationDecay: 0.9,
	}
}

// Body is the physical part shared by actors and items.
type Body struct {
	ID   string
	Name string

	Pos         mgl64.Vec3
	Vel         mgl64.Vec3
	Acc         mgl64.Vec3
	FrictionVel mgl64.Vec3 // velocity removed by friction on the last integration
	// MovementForce is the self-propelled force applied since the last
	// integration. Zero means the body is not moving on its own.
	MovementForce mgl64.Vec3

	Facing      float64 // radians, 0 along +X, counter-clockwise positive
	LookAt      mgl64.Vec3
	LookLength  float64
	Orientation mgl64.Quat

	Mass             float64 // 0 means massless: forces are ignored
	MaxVelocity      float64
	Size             float64
	HeightSizeOffset float64
	Physics          bool
	Grounded         bool

	Inventory Inventory
	Tags      []string

	RenderAs  string
	Model     string
	Color     string
	Animation string

	PhysicsShape  string
	PhysicsBody   physics.Body
	DespawnRadius float64 // 0 opts out of despawning
	Important     bool
	Character     bool
	Remove        bool
}

func NewID() string { return uuid.NewString() }

func newBody(name string) Body {
	b := Body{
		ID:               NewID(),
		Name:             name,
		LookLength:       DefaultLookLength,
		MaxVelocity:      DefaultMaxVelocity,
		Size:             DefaultSize,
		HeightSizeOffset: DefaultHeightSizeOffset,
		Orientation:      mgl64.QuatIdent(),
	}
	b.calcLookAt()
	return b
}

func (b *Body) Base() *Body { return b }

func (b *Body) IsMoving() bool { return b.MovementForce != (mgl64.Vec3{}) }

func (b *Body) ApplyForce(force mgl64.Vec3) {
	if b.Mass == 0 {
		return
	}
	b.Acc = b.Acc.Add(mathx.AccelerationDueToForce(force, b.Mass))
}

// ApplyImpulse applies forcePerSecond scaled to dtMS and records it as the
// body's movement force for this tick.
func (b *Body) ApplyImpulse(dtMS float64, forcePerSecond mgl64.Vec3) {
	f := forcePerSecond.Mul(dtMS / 1000)
	b.ApplyForce(f)
	b.MovementForce = b.MovementForce.Add(f)
}

// ApplyPlanarImpulse pushes along the XY plane at facing+directionOffset.
func (b *Body) ApplyPlanarImpulse(dtMS, magnitude, directionOffset float64) {
	x, y := mathx.PolarToCartesian(magnitude, b.Facing+directionOffset)
	b.ApplyImpulse(dtMS, mgl64.Vec3{x, y, 0})
}

// UpdatePhysics integrates one step of dtMS milliseconds.
func (b *Body) UpdatePhysics(dtMS float64, opts PhysicsOptions) bool {
	if !b.Physics {
		return false
	}
	seconds := dtMS / 1000
	if !b.Grounded {
		b.Acc = b.Acc.Add(opts.Gravity)
	}
	b.Vel = b.Vel.Add(b.Acc.Mul(seconds))
	b.Vel = mathx.ClampEach(b.Vel, b.MaxVelocity)
	b.Pos = b.Pos.Add(b.Vel.Mul(seconds))
	b.Acc = b.Acc.Mul(opts.AccelerationDecay)

	friction := opts.AirFriction
	if b.Grounded {
		friction = opts.GroundFriction
	}
	// Friction keeps the part along MovementForce, which can push a single
	// axis past the limit when walking diagonally.
	b.Vel, b.FrictionVel = mathx.ApplyFriction(b.Vel, friction*dtMS, b.MovementForce)
	b.Vel = mathx.ClampEach(b.Vel, b.MaxVelocity)
	b.Vel = mathx.SnapToZero(b.Vel, velocitySnap)
	b.MovementForce = mgl64.Vec3{}
	b.calcLookAt()
	return true
}

func (b *Body) calcLookAt() {
	x, y := mathx.PolarToCartesian(b.LookLength, b.Facing)
	b.LookAt = b.Pos.Add(mgl64.Vec3{x, y, 0})
	b.Orientation = mgl64.QuatRotate(b.Facing, mgl64.Vec3{0, 0, 1})
}

func (b *Body) Turn(radians float64) {
	b.Facing = mathx.WrapAngle(b.Facing + radians)
	b.calcLookAt()
}

func (b *Body) SetFacing(angle float64) {
	b.Facing = mathx.WrapAngle(angle)
	b.calcLookAt()
}

func (b *Body) FaceToward(target mgl64.Vec3) {
	b.SetFacing(mathx.AngleFacing(b.Pos, target))
}

// TurnToward turns at most maxRadians toward target, taking the shorter way
// around, and returns the unsigned angle still left to turn.
func (b *Body) TurnToward(target mgl64.Vec3, maxRadians float64) float64 {
	desired := mathx.WrapAngle(mathx.AngleFacing(b.Pos, target) - b.Facing)
	actual := mathx.Clamp(desired, -maxRadians, maxRadians)
	b.Turn(actual)
	left := desired - actual
	if left < 0 {
		left = -left
	}
	return left
}

// SetGrounded snaps Z to height when grounded.
func (b *Body) SetGrounded(grounded bool, height float64) {
	b.Grounded = grounded
	if grounded {
		b.Pos[2] = height
	}
}

func (b *Body) MoveTo(p mgl64.Vec3) {
	b.Pos = p
	b.calcLookAt()
}

func (b *Body) Move(delta mgl64.Vec3) { b.MoveTo(b.Pos.Add(delta)) }

func (b *Body) HasTag(tag string) bool { return slices.Contains(b.Tags, tag) }

func (b *Body) HasOneOfTags(tags ...string) bool {
	for _, t := range tags {
		if b.HasTag(t) {
			return true
		}
	}
	return false
}
