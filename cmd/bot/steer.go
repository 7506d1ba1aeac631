package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"dinotrek.io/internal/protocol"
	"dinotrek.io/internal/sim/world/logic/mathx"
)

// aimTolerance is how far off the target bearing the bot still walks.
const aimTolerance = 0.15

// steer picks the commands to hold for a frame: work whatever is in reach,
// otherwise head for the closest scanned item, otherwise wander forward.
func steer(f *protocol.FrameMsg) []string {
	if f.Outcome != "" && f.Outcome != "exploring" {
		return nil
	}
	if f.HUD.Interactable != nil {
		return []string{"interact nearest"}
	}
	target, ok := closestScanned(f)
	if !ok {
		return []string{"move forward"}
	}
	me := toVec(f.Camera.Target)
	off := mathx.WrapAngle(mathx.AngleFacing(me, target) - f.Camera.Facing)
	switch {
	case off > aimTolerance:
		return []string{"turn left"}
	case off < -aimTolerance:
		return []string{"turn right"}
	}
	if f.HUD.Stamina.Max > 0 && f.HUD.Stamina.Current > f.HUD.Stamina.Max/2 {
		return []string{"move forward sprint"}
	}
	return []string{"move forward"}
}

func closestScanned(f *protocol.FrameMsg) (mgl64.Vec3, bool) {
	pos := make(map[string][3]float64, len(f.Entities))
	for _, e := range f.Entities {
		pos[e.ID] = e.Pos
	}
	best := math.Inf(1)
	var out mgl64.Vec3
	for _, s := range f.HUD.Scan {
		p, ok := pos[s.ItemID]
		if !ok || s.Distance >= best {
			continue
		}
		best = s.Distance
		out = toVec(p)
	}
	return out, !math.IsInf(best, 1)
}

func toVec(p [3]float64) mgl64.Vec3 { return mgl64.Vec3{p[0], p[1], p[2]} }

func sameCommands(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
