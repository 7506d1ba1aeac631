package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// PlaneEngine is a small default engine: dynamic bodies fall under gravity
// and rest on the z=0 plane. Static bodies (mass 0) never move.
type PlaneEngine struct {
	Gravity mgl64.Vec3

	bodies []*planeBody
}

func NewPlaneEngine(gravity mgl64.Vec3) *PlaneEngine {
	return &PlaneEngine{Gravity: gravity}
}

type planeBody struct {
	shape  Shape
	mass   float64
	pos    mgl64.Vec3
	vel    mgl64.Vec3
	orient mgl64.Quat
}

func (b *planeBody) Position() mgl64.Vec3        { return b.pos }
func (b *planeBody) Orientation() mgl64.Quat     { return b.orient }
func (b *planeBody) SetPosition(p mgl64.Vec3)    { b.pos = p }
func (b *planeBody) SetOrientation(q mgl64.Quat) { b.orient = q }

func (b *planeBody) bottomOffset() float64 {
	if b.shape.Kind == ShapeSphere {
		return b.shape.Radius
	}
	return b.shape.HalfExtents.Z()
}

func (e *PlaneEngine) CreateBody(shape Shape, mass float64) Body {
	return &planeBody{shape: shape, mass: mass, orient: mgl64.QuatIdent()}
}

func (e *PlaneEngine) AddBody(b Body) {
	pb, ok := b.(*planeBody)
	if !ok {
		return
	}
	for _, x := range e.bodies {
		if x == pb {
			return
		}
	}
	e.bodies = append(e.bodies, pb)
}

func (e *PlaneEngine) RemoveBody(b Body) {
	pb, ok := b.(*planeBody)
	if !ok {
		return
	}
	for i, x := range e.bodies {
		if x == pb {
			e.bodies = append(e.bodies[:i], e.bodies[i+1:]...)
			return
		}
	}
}

func (e *PlaneEngine) BodyCount() int { return len(e.bodies) }

func (e *PlaneEngine) StepSimulation(fixedDelta float64) {
	for _, b := range e.bodies {
		if b.mass == 0 {
			continue
		}
		b.vel = b.vel.Add(e.Gravity.Mul(fixedDelta))
		b.pos = b.pos.Add(b.vel.Mul(fixedDelta))
		if floor := b.bottomOffset(); b.pos.Z() < floor {
			b.pos[2] = floor
			b.vel[2] = 0
		}
	}
}
