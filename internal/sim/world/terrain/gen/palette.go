package gen

import (
	"math"

	"dinotrek.io/internal/sim/world/logic/mathx"
)

type RGB [3]uint8

// Palette colors terrain texels. h is the terrain height at (x, y).
type Palette interface {
	Color(x, y, h float64) RGB
	Tints() []string
}

var (
	axisNorth = RGB{255, 255, 255}
	axisEast  = RGB{0, 255, 0}
	axisOther = RGB{0, 0, 255}
)

func axisColor(x, y float64) (RGB, bool) {
	switch {
	case x == 0 && y > 0:
		return axisNorth, true
	case y == 0 && x > 0:
		return axisEast, true
	case x == 0 || y == 0:
		return axisOther, true
	}
	return RGB{}, false
}

// AxisPalette marks the world axes on a flat grey ground.
type AxisPalette struct{}

func (AxisPalette) Color(x, y, _ float64) RGB {
	if c, ok := axisColor(x, y); ok {
		return c
	}
	return RGB{100, 100, 100}
}

func (AxisPalette) Tints() []string { return []string{"#808095"} }

// GridPalette draws survey grid lines and banded contours by height.
type GridPalette struct{}

const gridSpacing = 150

var (
	gridBase    = RGB{30, 30, 30}
	gridColor2  = RGB{10, 10, 40}
	gridColor3  = RGB{10, 20, 20}
	gridColor4  = RGB{60, 60, 60}
	gridLine    = RGB{100, 200, 200}
	gridLineLow = RGB{170, 100, 170}
)

func (GridPalette) Color(x, y, height float64) RGB {
	if c, ok := axisColor(x, y); ok {
		return c
	}
	h := mathx.RoundHalfUp(height)
	if math.Mod(x, gridSpacing) == 0 || math.Mod(y, gridSpacing) == 0 {
		if h < 3 {
			return gridLineLow
		}
		return gridLine
	}
	switch {
	case h > 400:
		return gridColor4
	case h > 300:
		if h%2 == 0 {
			return gridColor4
		}
		return gridColor3
	case h > 250:
		if h%4 == 0 {
			return gridBase
		}
		return gridColor3
	case h > 150:
		if h%2 == 0 {
			return gridBase
		}
		return gridColor3
	case h > 1:
		if h%5 == 0 {
			return gridBase
		}
		return gridColor2
	}
	return gridBase
}

func (GridPalette) Tints() []string { return []string{"#76c379", "#6fb874", "#7bc983"} }
