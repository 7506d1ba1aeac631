package entity

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidSlot = errors.New("invalid inventory slot")

// Inventory is a fixed-capacity list of item slots. Taken items leave a nil
// slot behind that later additions reuse.
type Inventory struct {
	Size  int
	Slots []*Item
}

func (inv *Inventory) Count() int {
	n := 0
	for _, it := range inv.Slots {
		if it != nil {
			n++
		}
	}
	return n
}

// Add declines (false) when the inventory is full.
func (inv *Inventory) Add(it *Item) bool {
	if it == nil || inv.Count() >= inv.Size {
		return false
	}
	for i, s := range inv.Slots {
		if s == nil {
			inv.Slots[i] = it
			return true
		}
	}
	inv.Slots = append(inv.Slots, it)
	return true
}

func (inv *Inventory) Take(i int) (*Item, error) {
	if i < 0 || i >= len(inv.Slots) {
		return nil, fmt.Errorf("take slot %d of %d: %w", i, len(inv.Slots), ErrInvalidSlot)
	}
	it := inv.Slots[i]
	inv.Slots[i] = nil
	return it, nil
}

// Find returns the first slot matching selector, or -1.
func (inv *Inventory) Find(selector string) int {
	for i, it := range inv.Slots {
		if it != nil && it.Matches(selector) {
			return i
		}
	}
	return -1
}

// TakeSelection removes and returns the first item matching selector.
func (inv *Inventory) TakeSelection(selector string) *Item {
	i := inv.Find(selector)
	if i < 0 {
		return nil
	}
	it, _ := inv.Take(i)
	return it
}

// Items lists occupied slots in order.
func (inv *Inventory) Items() []*Item {
	out := make([]*Item, 0, len(inv.Slots))
	for _, it := range inv.Slots {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

// Matches reports whether the item satisfies a selector. "key:value" compares
// name, model or tag; a bare word matches a tag.
func (it *Item) Matches(selector string) bool {
	key, value, ok := strings.Cut(strings.TrimSpace(selector), ":")
	if !ok {
		return key != "" && it.HasTag(key)
	}
	switch key {
	case "name":
		return it.Name == value
	case "model":
		return it.Model == value
	case "tag":
		return it.HasTag(value)
	}
	return false
}
