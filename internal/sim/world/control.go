package world

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"dinotrek.io/internal/sim/entity"
	"dinotrek.io/internal/sim/world/logic/mathx"
)

// Walk directions relative to facing.
var walkAngles = map[string]float64{
	"forward": 0,
	"back":    math.Pi,
	"left":    math.Pi / 2,
	"right":   math.Pi + math.Pi/2,
}

// turnStep is one turn command, a fiftieth of a circle.
const turnStep = mathx.Tau / 50

// interactEffortPerMS converts held interaction time into effort.
const interactEffortPerMS = 1.0 / 40

// ApplyCommands drives the character from the commands held this frame:
// "move <forward|back|left|right> [sprint]", "sprint", "jump",
// "interact nearest", "turn <left|right>" and "stop". Several move
// directions are averaged. Unknown commands are ignored and reported.
func (w *World) ApplyCommands(cmds []string, dtMS float64) (unknown []string) {
	ch := w.character
	if ch == nil || w.outcome != OutcomeExploring {
		return nil
	}
	var angles []float64
	sprint := false
	seen := map[string]bool{}
	for _, raw := range cmds {
		cmd := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
		if cmd == "" || seen[cmd] {
			continue
		}
		seen[cmd] = true
		words := strings.Fields(cmd)
		switch words[0] {
		case "move":
			if len(words) < 2 {
				unknown = append(unknown, raw)
				continue
			}
			a, ok := walkAngles[words[1]]
			if !ok {
				unknown = append(unknown, raw)
				continue
			}
			angles = append(angles, a)
			if len(words) > 2 && words[2] == "sprint" {
				sprint = true
			}
		case "sprint":
			sprint = true
		case "jump":
			ch.Jump(dtMS)
		case "interact":
			if len(words) > 1 && words[1] == "nearest" {
				w.interactNearest(dtMS)
			} else {
				unknown = append(unknown, raw)
			}
		case "turn":
			switch {
			case len(words) > 1 && words[1] == "left":
				ch.Turn(turnStep)
			case len(words) > 1 && words[1] == "right":
				ch.Turn(-turnStep)
			default:
				unknown = append(unknown, raw)
			}
		case "stop":
			ch.Vel = mgl64.Vec3{}
		default:
			unknown = append(unknown, raw)
		}
	}
	if len(angles) > 0 {
		dir := mathx.AverageAngles(angles)
		if sprint {
			ch.Sprint(dtMS, dir)
		} else {
			ch.Walk(dtMS, dir, 1)
		}
	}
	return unknown
}

// interactNearest works on the closest item in reach and re-grounds it,
// since a modify effect may have changed how it sits.
func (w *World) interactNearest(dtMS float64) []string {
	_, it := w.FindNearestInRangeInteractableItem(w.character.Pos)
	if it == nil {
		return nil
	}
	msgs := w.interact(it, dtMS*interactEffortPerMS)
	if !it.Remove {
		if err := w.SetHeightToTerrain(&it.Body); err != nil {
			w.log.WithError(err).Warn("item grounding")
		}
	}
	return msgs
}

// interact applies effort from the character and records what happened.
func (w *World) interact(it *entity.Item, amount float64) []string {
	msgs := it.Interact(w.character, amount)
	if len(msgs) == 0 {
		return nil
	}
	w.addToLog(msgs...)
	kind := EventInteract
	if it.Remove {
		kind = EventPickUp
	}
	w.emit(kind, &it.Body, strings.Join(msgs, " "))
	return msgs
}
