package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"dinotrek.io/internal/sim/catalogs"
	"dinotrek.io/internal/sim/world/terrain/store"
)

func loadCats(t *testing.T) *catalogs.Catalogs {
	t.Helper()
	cats, err := catalogs.Load("../../../configs")
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	return cats
}

func testConfig() WorldConfig {
	return WorldConfig{
		ID:            "test",
		TickRateHz:    20,
		Seed:          42,
		StartHour:     8,
		DespawnRadius: 5250,
		Layout:        store.Layout{TextureSize: 16},
	}
}

// newTestWorld builds a world with the character standing on the terrain
// at the origin and nothing else in it.
func newTestWorld(t *testing.T, cfg WorldConfig) *World {
	t.Helper()
	w, err := New(cfg, loadCats(t))
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	ch := w.AddNewCharacter(w.cats.Character)
	h, err := w.chunks.HeightAt(0, 0)
	if err != nil {
		t.Fatalf("height: %v", err)
	}
	ch.MoveTo(mgl64.Vec3{0, 0, h + ch.HeightSizeOffset*ch.Size})
	if err := w.SetHeightToTerrain(&ch.Body); err != nil || !ch.Grounded {
		t.Fatalf("character not grounded: %v", err)
	}
	return w
}

// placeNear puts an item level with the character at the given offset.
func placeNear(w *World, it Entity, dx, dy float64) {
	it.Base().MoveTo(w.Character().Pos.Add(mgl64.Vec3{dx, dy, 0}))
}

func addCreature(t *testing.T, w *World, key string, pos mgl64.Vec3) {
	t.Helper()
	if _, err := w.DebugSpawnCreature(key, pos); err != nil {
		t.Fatalf("spawn %s: %v", key, err)
	}
}
