package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"dinotrek.io/internal/sim/world/logic/mathx"
)

type Item struct {
	Body

	InteractionRange     float64
	InteractionAction    string
	InteractionEffort    float64
	InteractionProgress  float64
	InteractionResult    *InteractionResult
	InventoryDescription string

	Damage         int
	Rooted         bool
	Scannable      bool
	RandomAtRadius float64

	// spent is set once an effort-gated result has fired and was not
	// replaced by a modify effect.
	spent bool
}

func NewItem(cfg ItemConfig) *Item {
	cfg = cfg.Clone()
	it := &Item{
		Body:                 newBody(cfg.Name),
		InteractionRange:     cfg.InteractionRange,
		InteractionAction:    cfg.InteractionAction,
		InteractionEffort:    cfg.InteractionEffort,
		InteractionResult:    cfg.InteractionResult,
		InventoryDescription: cfg.InventoryDescription,
		Damage:               cfg.Damage,
		Rooted:               cfg.Rooted,
		Scannable:            cfg.Scannable,
		RandomAtRadius:       cfg.RandomAtRadius,
	}
	it.Mass = cfg.Mass
	it.Size = cfg.Size
	it.HeightSizeOffset = cfg.HeightSizeOffset
	it.Tags = cfg.Tags
	it.RenderAs = cfg.RenderAs
	it.Model = cfg.Model
	it.Color = cfg.Color
	it.PhysicsShape = cfg.PhysicsShape
	it.DespawnRadius = cfg.DespawnRadius
	it.Important = cfg.Important
	it.Inventory.Size = cfg.InventorySize
	return it
}

func (it *Item) IsInteractable() bool {
	return it.InteractionRange > 0 && it.InteractionAction != "" && it.InteractionResult != nil && !it.spent
}

func (it *Item) IsInRangeInteractable(pos mgl64.Vec3) bool {
	return it.IsInteractable() && mathx.Distance(it.Pos, pos) <= it.InteractionRange
}

// InteractionPercent is 1 for items that need no effort.
func (it *Item) InteractionPercent() float64 {
	if it.InteractionEffort <= 0 {
		return 1
	}
	return mathx.Clamp(it.InteractionProgress/it.InteractionEffort, 0, 1)
}

// Interact applies amount of effort from who. Once the effort is met the
// result effects run in order (modify, pick up, give, repair) and their
// messages are returned. Out of range, or still in progress, returns nil.
func (it *Item) Interact(who *Actor, amount float64) []string {
	if who == nil || !it.IsInRangeInteractable(who.Pos) {
		return nil
	}
	gated := it.InteractionEffort > 0
	if gated {
		it.InteractionProgress = mathx.Clamp(it.InteractionProgress+amount, 0, it.InteractionEffort)
		if it.InteractionPercent() < 1 {
			return nil
		}
	}

	res := it.InteractionResult
	var msgs []string
	if res.Modify != nil {
		it.apply(res.Modify)
	}
	if res.PickUp {
		if who.Inventory.Add(it) {
			it.Remove = true
			if it.InventoryDescription != "" {
				msgs = append(msgs, fmt.Sprintf("You pick up the %s. %s", it.Name, it.InventoryDescription))
			}
		} else {
			msgs = append(msgs, "Your inventory is full.")
		}
	}
	if res.Give != "" {
		if given := who.Inventory.TakeSelection(res.Give); given != nil {
			it.Inventory.Add(given)
			msgs = append(msgs, "You give an item...")
		} else {
			msgs = append(msgs, "You do not have any items that can be used here.")
		}
	}
	if res.Repair != "" {
		if who.Inventory.TakeSelection(res.Repair) != nil {
			if it.Damage > 0 {
				it.Damage--
			}
			msgs = append(msgs, fmt.Sprintf("You use an item to repair the %s.", it.Name))
		} else {
			msgs = append(msgs, "You do not have any items that can be used to repair.")
		}
	}

	if gated {
		if it.InteractionResult != res {
			it.InteractionProgress = 0
		} else {
			it.spent = true
		}
	}
	return msgs
}

func (it *Item) apply(p *ItemPatch) {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Model != nil {
		it.Model = *p.Model
	}
	if p.HeightSizeOffset != nil {
		it.HeightSizeOffset = *p.HeightSizeOffset
	}
	if p.Rooted != nil {
		it.Rooted = *p.Rooted
	}
	if p.Scannable != nil {
		it.Scannable = *p.Scannable
	}
	if p.InteractionRange != nil {
		it.InteractionRange = *p.InteractionRange
	}
	if p.InteractionAction != nil {
		it.InteractionAction = *p.InteractionAction
	}
	if p.InteractionEffort != nil {
		it.InteractionEffort = *p.InteractionEffort
	}
	if p.InteractionResult != nil {
		it.InteractionResult = p.InteractionResult.clone()
	}
}
