package world

import (
	"dinotrek.io/internal/sim/world/logic/mathx"
)

// checkEncounter lets every creature within its damage range of the
// character bite for this tick.
func (w *World) checkEncounter(dtMS float64) float64 {
	ch := w.character
	if ch == nil {
		return 0
	}
	seconds := dtMS / 1000
	total := 0.0
	for _, a := range w.actors {
		if a.Character || a.Remove {
			continue
		}
		if mathx.Distance(ch.Pos, a.Pos) > a.DamageRange {
			continue
		}
		total += ch.Health.Subtract(a.GetDamage() * seconds)
	}
	return total
}

func (w *World) checkOutcome() Outcome {
	switch {
	case w.timeMachine != nil && w.timeMachine.Damage <= 0:
		return OutcomeWon
	case w.character != nil && w.character.Health.AtMin():
		return OutcomeDead
	}
	return OutcomeExploring
}
