package gen

import (
	"errors"
	"fmt"
	"math"
	"time"

	perlin "github.com/aquilax/go-perlin"

	"dinotrek.io/internal/sim/world/logic/mathx"
)

const (
	UnitsPerMeter   = 20
	ChunkSizeMeters = 128

	MinHeight = 0.0
	MaxHeight = 2000.0

	// The height field must not depend on the session, so the noise
	// permutation is built from a constant.
	noiseSeed  = 0
	xOffset    = 120.0
	rippleFreq = 0.002
)

var ErrInvalidCoordinate = errors.New("invalid terrain coordinate")

type Generator struct {
	// Seed only feeds cosmetic choices such as chunk tint.
	Seed    int64
	Palette Palette

	noise *perlin.Perlin
}

func New(seed int64, palette Palette) *Generator {
	if palette == nil {
		palette = GridPalette{}
	}
	return &Generator{
		Seed:    seed,
		Palette: palette,
		noise:   perlin.NewPerlin(2, 2, 1, noiseSeed),
	}
}

// DateSeed derives the per-session cosmetic seed from the calendar day. The
// result is in [1,1000]; 0 is reserved for "derive one".
func DateSeed(t time.Time) int64 {
	y, m, d := t.UTC().Date()
	if s := int64(mathx.Hash2(int64(y), int(m), d) % 1000); s != 0 {
		return s
	}
	return 1000
}

func (g *Generator) noiseHeight(x, y, scale, altitude float64) float64 {
	return altitude * g.noise.Noise2D(scale*x, scale*y)
}

// CalcTerrainHeight is the layered noise height at world (x, y), always
// within [MinHeight, MaxHeight].
func (g *Generator) CalcTerrainHeight(xP, y float64) (float64, error) {
	if !finite(xP) || !finite(y) {
		return 0, fmt.Errorf("height at (%v, %v): %w", xP, y, ErrInvalidCoordinate)
	}
	x := xP + xOffset
	h := 100.0
	// continents
	h += g.noiseHeight(x, y, 0.0002, 800)
	h = mathx.Clamp(h, MinHeight, MaxHeight)
	// mountains
	h += g.noiseHeight(x, y, 0.0008, 600)
	h = mathx.Clamp(h, MinHeight, MaxHeight)

	roughness := 50 * (h / MaxHeight)
	if h <= 2 {
		roughness = 20
	}
	h += g.noiseHeight(x, y, 0.002, roughness)

	// erosion ripples
	h -= 20 * (1 + math.Sin(rippleFreq*x+10*g.noise.Noise3D(rippleFreq*x, rippleFreq*2*y, 0)))
	return mathx.Clamp(h, MinHeight, MaxHeight), nil
}

// Tint picks the flat color for a chunk.
func (g *Generator) Tint(cx, cy int) string {
	tints := g.Palette.Tints()
	if len(tints) == 0 {
		return ""
	}
	return tints[mathx.Hash2(g.Seed, cx, cy)%uint64(len(tints))]
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
