package entity

import (
	"errors"
	"testing"
)

func TestInventory_CapacityAndSlotReuse(t *testing.T) {
	inv := Inventory{Size: 2}
	a := NewItem(ItemConfig{Name: "a", Tags: []string{"gem"}})
	b := NewItem(ItemConfig{Name: "b"})
	c := NewItem(ItemConfig{Name: "c"})

	if !inv.Add(a) || !inv.Add(b) {
		t.Fatalf("add within capacity failed")
	}
	if inv.Add(c) {
		t.Fatalf("add beyond capacity succeeded")
	}
	got, err := inv.Take(0)
	if err != nil || got != a {
		t.Fatalf("take(0)=%v err=%v", got, err)
	}
	if !inv.Add(c) || inv.Slots[0] != c || len(inv.Slots) != 2 {
		t.Fatalf("empty slot not reused: %v", inv.Slots)
	}
}

func TestInventory_TakeInvalidSlot(t *testing.T) {
	inv := Inventory{Size: 1}
	if _, err := inv.Take(3); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("err=%v want ErrInvalidSlot", err)
	}
	if _, err := inv.Take(-1); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("err=%v want ErrInvalidSlot", err)
	}
}

func TestInventory_Selectors(t *testing.T) {
	inv := Inventory{Size: 3}
	inv.Add(NewItem(ItemConfig{Name: "gear", Model: "gear"}))
	inv.Add(NewItem(ItemConfig{Name: "pod", Model: "commandPod", Tags: []string{"timeTravelPart"}}))

	cases := []struct {
		sel  string
		want int
	}{
		{"timeTravelPart", 1},
		{"tag:timeTravelPart", 1},
		{"model:gear", 0},
		{"name:pod", 1},
		{"name:missing", -1},
		{"color:red", -1},
		{"", -1},
	}
	for _, c := range cases {
		if got := inv.Find(c.sel); got != c.want {
			t.Fatalf("Find(%q)=%d want %d", c.sel, got, c.want)
		}
	}
	if it := inv.TakeSelection("model:commandPod"); it == nil || it.Name != "pod" {
		t.Fatalf("TakeSelection=%v", it)
	}
	if inv.TakeSelection("model:commandPod") != nil {
		t.Fatalf("selection taken twice")
	}
	if len(inv.Items()) != 1 {
		t.Fatalf("items=%d want 1", len(inv.Items()))
	}
}

func TestPool_Bounds(t *testing.T) {
	p := NewPool(50, 50)
	if d := p.Add(10); d != 0 || p.Current != 50 {
		t.Fatalf("add at max: d=%v cur=%v", d, p.Current)
	}
	if d := p.Subtract(80); d != 50 || p.Current != 0 || !p.AtMin() {
		t.Fatalf("subtract: d=%v cur=%v", d, p.Current)
	}
	if p.LastDelta() != -50 {
		t.Fatalf("last delta=%v", p.LastDelta())
	}
	p.ClearLastDelta()
	p.Add(25)
	if p.Percent() != 0.5 || p.LastDelta() != 25 {
		t.Fatalf("percent=%v delta=%v", p.Percent(), p.LastDelta())
	}
}
