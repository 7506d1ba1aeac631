// Package rng holds the random source that every stochastic decision in the
// simulation draws from. Tests swap in fixed sources to force outcomes.
package rng

import (
	"math"
	"math/rand"
)

// Source yields uniform floats in [0, 1).
type Source interface {
	Float64() float64
}

// New returns a seeded source. Two sources built from the same seed produce
// the same sequence.
func New(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Fixed always returns the same value. Fixed(0) makes every Chance succeed
// and every Int return 0.
type Fixed float64

func (f Fixed) Float64() float64 { return float64(f) }

// Sequence replays values in order and then repeats the last one.
type Sequence struct {
	Values []float64
	i      int
}

func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.i]
	if s.i < len(s.Values)-1 {
		s.i++
	}
	return v
}

// Chance reports whether an event of probability p happens.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Int returns an integer in [0, n). n <= 0 yields 0.
func Int(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(math.Floor(src.Float64() * float64(n)))
	if v >= n {
		v = n - 1
	}
	return v
}

// Bell returns a value in [0, n) biased toward n/2.
func Bell(src Source, n float64) float64 {
	return (src.Float64() + src.Float64()) / 2 * n
}

// Angle returns a uniform angle in [0, 2π).
func Angle(src Source) float64 {
	return src.Float64() * 2 * math.Pi
}
