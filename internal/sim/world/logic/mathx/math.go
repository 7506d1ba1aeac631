package mathx

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const Tau = 2 * math.Pi

func FloorDiv(a, b int) int {
	// b > 0
	q := a / b
	r := a % b
	if r < 0 {
		q--
	}
	return q
}

func Mod(a, b int) int {
	// b > 0
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func AbsInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ModFloat is the positive remainder of a/b for b > 0.
func ModFloat(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}

// RoundHalfUp rounds .5 toward +Inf, so -0.5 rounds to 0.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// WrapAngle maps a into (-π, π].
func WrapAngle(a float64) float64 {
	a = ModFloat(a+math.Pi, Tau) - math.Pi
	if a <= -math.Pi {
		a += Tau
	}
	return a
}

// AngleFacing is the heading from one point to another on the XY plane.
func AngleFacing(from, to mgl64.Vec3) float64 {
	return math.Atan2(to.Y()-from.Y(), to.X()-from.X())
}

func PolarToCartesian(r, angle float64) (x, y float64) {
	return r * math.Cos(angle), r * math.Sin(angle)
}

func Distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

// Distance2D ignores Z.
func Distance2D(a, b mgl64.Vec3) float64 {
	return math.Hypot(a.X()-b.X(), a.Y()-b.Y())
}

// ClampEach clamps every component to [-limit, limit].
func ClampEach(v mgl64.Vec3, limit float64) mgl64.Vec3 {
	for i := range v {
		v[i] = Clamp(v[i], -limit, limit)
	}
	return v
}

// SnapToZero zeroes components whose magnitude is below eps.
func SnapToZero(v mgl64.Vec3, eps float64) mgl64.Vec3 {
	for i := range v {
		if math.Abs(v[i]) < eps {
			v[i] = 0
		}
	}
	return v
}

// AccelerationDueToForce is a = F/m. A massless body never accelerates.
func AccelerationDueToForce(force mgl64.Vec3, mass float64) mgl64.Vec3 {
	if mass == 0 {
		return mgl64.Vec3{}
	}
	return force.Mul(1 / mass)
}

// ApplyFriction removes the fraction friction (clamped to [0,1]) of the
// velocity. When movementForce is non-zero, the part of the velocity heading
// along it is left untouched. It returns the new velocity and what was removed.
func ApplyFriction(vel mgl64.Vec3, friction float64, movementForce mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	f := Clamp(friction, 0, 1)
	if f == 0 {
		return vel, mgl64.Vec3{}
	}
	keep := mgl64.Vec3{}
	rest := vel
	if l := movementForce.Len(); l > 0 {
		dir := movementForce.Mul(1 / l)
		if along := vel.Dot(dir); along > 0 {
			keep = dir.Mul(along)
			rest = vel.Sub(keep)
		}
	}
	removed := rest.Mul(f)
	return keep.Add(rest.Sub(removed)), removed
}

// AverageAngles is the circular mean of the given headings.
func AverageAngles(angles []float64) float64 {
	if len(angles) == 0 {
		return 0
	}
	var sx, sy float64
	for _, a := range angles {
		sx += math.Cos(a)
		sy += math.Sin(a)
	}
	return math.Atan2(sy, sx)
}

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func Hash2(seed int64, x, y int) uint64 {
	ux := uint64(uint32(int32(x)))
	uy := uint64(uint32(int32(y)))
	v := uint64(seed) ^ (ux * 0x9e3779b97f4a7c15) ^ (uy * 0xbf58476d1ce4e5b9)
	return mix64(v)
}
