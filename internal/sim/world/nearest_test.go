package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"dinotrek.io/internal/sim/entity"
)

func TestFindNearestActor_FilterAndRemoved(t *testing.T) {
	w := newTestWorld(t, testConfig())
	addCreature(t, w, "trex", mgl64.Vec3{100, 0, 0})
	addCreature(t, w, "para", mgl64.Vec3{300, 0, 0})
	addCreature(t, w, "para", mgl64.Vec3{200, 0, 0})

	herb := func(a *entity.Actor) bool { return a.Faction == "herbivore" }
	d, a := w.FindNearestActor(mgl64.Vec3{}, herb)
	if a == nil || d != 200 {
		t.Fatalf("nearest herbivore d=%v a=%v", d, a)
	}

	a.Remove = true
	d, a = w.FindNearestActor(mgl64.Vec3{}, herb)
	if a == nil || d != 300 {
		t.Fatalf("removed actor still found: d=%v", d)
	}

	none := func(a *entity.Actor) bool { return false }
	if d, a := w.FindNearestActor(mgl64.Vec3{}, none); a != nil || !math.IsInf(d, 1) {
		t.Fatalf("no match d=%v a=%v", d, a)
	}
}

func TestFindNearestInRangeInteractableItem(t *testing.T) {
	w := newTestWorld(t, testConfig())
	part := w.AddNewItem(w.cats.Parts[0], mgl64.Vec3{})
	part.MoveTo(mgl64.Vec3{50, 0, 0})
	tree := w.AddNewItem(w.cats.Tree, mgl64.Vec3{})
	tree.MoveTo(mgl64.Vec3{10, 0, 0})

	if _, it := w.FindNearestInRangeInteractableItem(mgl64.Vec3{}); it != part {
		t.Fatalf("got %v want part", it)
	}
	part.MoveTo(mgl64.Vec3{500, 0, 0})
	if _, it := w.FindNearestInRangeInteractableItem(mgl64.Vec3{}); it != nil {
		t.Fatalf("out of range item returned: %s", it.Name)
	}
	if _, it := w.FindNearestInteractableItem(mgl64.Vec3{}); it != part {
		t.Fatalf("interactable ignoring range: %v", it)
	}
}

func TestFindNearest_Empty(t *testing.T) {
	d, a := FindNearest[*entity.Actor](nil, mgl64.Vec3{}, nil)
	if a != nil || !math.IsInf(d, 1) {
		t.Fatalf("empty list d=%v a=%v", d, a)
	}
	w := newTestWorld(t, testConfig())
	if d, it := w.FindNearestItem(mgl64.Vec3{}, nil); it != nil || !math.IsInf(d, 1) {
		t.Fatalf("no items d=%v it=%v", d, it)
	}
}

func TestLookTarget_ResolvesNilOnceRemoved(t *testing.T) {
	w := newTestWorld(t, testConfig())
	hunter, err := w.DebugSpawnCreature("trex", mgl64.Vec3{100, 0, 0})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	prey, err := w.DebugSpawnCreature("para", mgl64.Vec3{150, 0, 0})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	hunter.LookTargetID = prey.ID
	if got := w.ActorByID(hunter.LookTargetID); got != prey {
		t.Fatalf("target=%v want prey", got)
	}

	prey.Remove = true
	if got := w.ActorByID(hunter.LookTargetID); got != nil {
		t.Fatalf("removed target still resolves: %s", got.ID)
	}
	w.Despawn(w.Character().Pos)
	if got := w.ActorByID(hunter.LookTargetID); got != nil {
		t.Fatalf("despawned target still resolves: %s", got.ID)
	}
	if w.ActorByID(hunter.ID) != hunter {
		t.Fatalf("hunter lost")
	}
}
