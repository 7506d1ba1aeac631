package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"dinotrek.io/internal/sim/entity"
	"dinotrek.io/internal/sim/physics"
)

func TestSyncBodies_CreatesAndSkipsUnknown(t *testing.T) {
	w := newTestWorld(t, testConfig())
	eng := physics.NewPlaneEngine(mgl64.Vec3{0, 0, -80})
	w.SetEngine(eng)

	ball := w.AddNewItem(entity.ItemConfig{Name: "ball", PhysicsShape: "sphere", Size: 10, Mass: 1}, mgl64.Vec3{})
	ball.MoveTo(mgl64.Vec3{0, 0, 100})
	blob := w.AddNewItem(entity.ItemConfig{Name: "blob", PhysicsShape: "blob", Size: 10, Mass: 1}, mgl64.Vec3{})

	for i := 0; i < 3; i++ {
		w.syncBodies()
		w.stepEngine()
	}
	w.syncBodies()

	if eng.BodyCount() != 1 {
		t.Fatalf("bodies=%d want 1", eng.BodyCount())
	}
	if blob.PhysicsBody != nil || !w.shapeWarned[blob.ID] {
		t.Fatalf("unknown shape got a body")
	}
	if ball.Pos.Z() >= 100 {
		t.Fatalf("ball did not fall: z=%v", ball.Pos.Z())
	}

	ball.Remove = true
	w.Despawn(mgl64.Vec3{})
	if eng.BodyCount() != 0 {
		t.Fatalf("removed entity kept its body")
	}
}

func TestNew_UnknownEngine(t *testing.T) {
	cfg := testConfig()
	cfg.PhysicsEngine = "bullet"
	if _, err := New(cfg, loadCats(t)); err == nil {
		t.Fatalf("expected error for unknown engine")
	}
}
