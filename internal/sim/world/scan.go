package world

import (
	"math"
	"sort"

	"dinotrek.io/internal/sim/world/logic/mathx"
)

// MaxScanDistance is where a scannable item's signal fades to zero.
const MaxScanDistance = 5000

// frontAngle is roughly π/8.
const frontAngle = 0.4

type ScanResult struct {
	ItemID    string
	Name      string
	Distance  float64
	Angle     float64 // absolute bearing from the character
	SortAngle float64 // bearing relative to facing, in (-π, π]
	Percent   float64
	Front     bool
	Behind    bool
}

// Scan lists scannable items by bearing relative to where the character
// faces, left to right.
func (w *World) Scan() []ScanResult {
	ch := w.character
	if ch == nil {
		return nil
	}
	var out []ScanResult
	for _, it := range w.items {
		if !it.Scannable || it.Remove {
			continue
		}
		d := mathx.Distance(ch.Pos, it.Pos)
		angle := mathx.AngleFacing(ch.Pos, it.Pos)
		rel := mathx.WrapAngle(ch.Facing - angle)
		abs := math.Abs(rel)
		out = append(out, ScanResult{
			ItemID:    it.ID,
			Name:      it.Name,
			Distance:  d,
			Angle:     angle,
			SortAngle: rel,
			Percent:   math.Max(1-d/MaxScanDistance, 0),
			Front:     abs < frontAngle,
			Behind:    abs > math.Pi/2,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortAngle < out[j].SortAngle })
	return out
}

// LastScan is the cached result from the most recent periodic scan.
func (w *World) LastScan() []ScanResult { return w.scan }
