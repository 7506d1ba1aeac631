package catalogs

import (
	"path/filepath"
	"testing"
)

func TestLoad_RepoArchetypes(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "..", "configs"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.CreatureKeys) != 6 || c.CreatureKeys[0] != "apat" || c.CreatureKeys[5] != "velo" {
		t.Fatalf("creature keys=%v", c.CreatureKeys)
	}
	trex := c.Creatures["trex"]
	if trex.HuntDistance != 500 || trex.Mass != 15000 || !trex.Autonomous || trex.Size != 60 {
		t.Fatalf("trex not merged onto creature defaults: %+v", trex)
	}
	// Untouched keys keep the actor defaults.
	if trex.StaminaUsePerWalk != 1.3 || trex.MaxWanderRange != 1400 {
		t.Fatalf("actor defaults lost: %+v", trex)
	}
	if !c.Character.Character || c.Character.InventorySize != c.TotalParts() {
		t.Fatalf("character=%+v parts=%d", c.Character, c.TotalParts())
	}
	if c.TotalParts() != 9 || len(c.Landmarks) != 1 {
		t.Fatalf("parts=%d landmarks=%d", c.TotalParts(), len(c.Landmarks))
	}
	if c.Digest == "" {
		t.Fatalf("empty digest")
	}
}

func TestParse_PartsInheritDefaults(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "..", "configs"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	first := c.Parts[0]
	if first.Model != "sputnik" || first.HeightSizeOffset != -0.5 || first.RandomAtRadius != 400 {
		t.Fatalf("override lost: %+v", first)
	}
	if first.InteractionEffort != 100 || first.InteractionResult == nil || first.InteractionResult.Modify == nil {
		t.Fatalf("defaults lost: %+v", first)
	}
	// Parts must not share their result.
	if c.Parts[0].InteractionResult == c.Parts[1].InteractionResult {
		t.Fatalf("interaction results shared between parts")
	}
	scatter := c.Scatter()
	if len(scatter) != 10 || scatter[9].Damage != 6 {
		t.Fatalf("scatter=%d last=%+v", len(scatter), scatter[len(scatter)-1])
	}
	scatter[0].Tags[0] = "mutated"
	if c.Parts[0].Tags[0] == "mutated" {
		t.Fatalf("scatter returned shared tags")
	}
}

func TestParse_SchemaRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":   "character: {name: x, wings: 2}\ncreatures: {a: {}}\nparts: []\nlandmarks: []\n",
		"negative mass": "character: {mass: -1}\ncreatures: {a: {}}\nparts: []\nlandmarks: []\n",
		"no creatures":  "character: {}\ncreatures: {}\nparts: []\nlandmarks: []\n",
		"bad shape":     "character: {physics_shape: cone}\ncreatures: {a: {}}\nparts: []\nlandmarks: []\n",
		"missing parts": "character: {}\ncreatures: {a: {}}\nlandmarks: []\n",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected schema error", name)
		}
	}
}

func TestParse_Minimal(t *testing.T) {
	doc := "character: {}\ncreatures: {a: {faction: x}}\nparts: [{name: p}]\nlandmarks: []\n"
	c, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Creatures["a"].Mass != 60 || c.Character.InventorySize != 1 {
		t.Fatalf("defaults: %+v / %+v", c.Creatures["a"], c.Character)
	}
}
