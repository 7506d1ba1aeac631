// Package physics is the boundary to the rigid-body engine. The world only
// creates bodies, steps the engine, and reads poses back.
package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

type ShapeKind string

const (
	ShapeBox    ShapeKind = "box"
	ShapeSphere ShapeKind = "sphere"
)

type Shape struct {
	Kind        ShapeKind
	HalfExtents mgl64.Vec3
	Radius      float64
}

type Body interface {
	Position() mgl64.Vec3
	Orientation() mgl64.Quat
	SetPosition(p mgl64.Vec3)
	SetOrientation(q mgl64.Quat)
}

type Engine interface {
	CreateBody(shape Shape, mass float64) Body
	AddBody(b Body)
	RemoveBody(b Body)
	StepSimulation(fixedDelta float64)
}

// ShapeFor derives a shape from an entity's declared shape name and size.
// Unknown names are an error; callers log and skip the body.
func ShapeFor(name string, size float64) (Shape, error) {
	half := size / 2
	switch ShapeKind(name) {
	case ShapeBox:
		return Shape{Kind: ShapeBox, HalfExtents: mgl64.Vec3{half, half, half}}, nil
	case ShapeSphere:
		return Shape{Kind: ShapeSphere, Radius: half}, nil
	default:
		return Shape{}, fmt.Errorf("unsupported physics shape %q", name)
	}
}
