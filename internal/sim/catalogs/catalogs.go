package catalogs

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"dinotrek.io/internal/sim/entity"
)

//go:embed archetypes.schema.json
var archetypesSchema string

// Catalogs holds the archetypes the world spawns from. Every config is
// already merged onto the entity defaults; callers should Clone before
// mutating.
type Catalogs struct {
	Character    entity.ActorConfig
	Creatures    map[string]entity.ActorConfig
	CreatureKeys []string // sorted
	Tree         entity.ItemConfig
	Parts        []entity.ItemConfig
	Landmarks    []entity.ItemConfig

	Digest string
}

type archetypeFile struct {
	Character        yaml.Node            `yaml:"character"`
	CreatureDefaults yaml.Node            `yaml:"creature_defaults"`
	Creatures        map[string]yaml.Node `yaml:"creatures"`
	Tree             yaml.Node            `yaml:"tree"`
	PartDefaults     yaml.Node            `yaml:"part_defaults"`
	Parts            []yaml.Node          `yaml:"parts"`
	Landmarks        []yaml.Node          `yaml:"landmarks"`
}

func Load(configDir string) (*Catalogs, error) {
	return LoadFile(filepath.Join(configDir, "archetypes.yaml"))
}

func LoadFile(path string) (*Catalogs, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Catalogs, error) {
	if err := validate(raw); err != nil {
		return nil, fmt.Errorf("archetypes.yaml: %w", err)
	}
	var f archetypeFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("archetypes.yaml: %w", err)
	}

	c := &Catalogs{
		Character: entity.DefaultActorConfig(),
		Creatures: map[string]entity.ActorConfig{},
		Tree:      entity.DefaultItemConfig(),
		Digest:    sha256Hex(raw),
	}
	if err := decodeOnto(&f.Character, &c.Character); err != nil {
		return nil, fmt.Errorf("archetypes.yaml: character: %w", err)
	}
	c.Character.Character = true

	creatureBase := entity.DefaultActorConfig()
	if err := decodeOnto(&f.CreatureDefaults, &creatureBase); err != nil {
		return nil, fmt.Errorf("archetypes.yaml: creature_defaults: %w", err)
	}
	for key, node := range f.Creatures {
		cfg := creatureBase.Clone()
		if err := decodeOnto(&node, &cfg); err != nil {
			return nil, fmt.Errorf("archetypes.yaml: creatures.%s: %w", key, err)
		}
		c.Creatures[key] = cfg
		c.CreatureKeys = append(c.CreatureKeys, key)
	}
	sort.Strings(c.CreatureKeys)

	if err := decodeOnto(&f.Tree, &c.Tree); err != nil {
		return nil, fmt.Errorf("archetypes.yaml: tree: %w", err)
	}

	partBase := entity.DefaultItemConfig()
	if err := decodeOnto(&f.PartDefaults, &partBase); err != nil {
		return nil, fmt.Errorf("archetypes.yaml: part_defaults: %w", err)
	}
	for i := range f.Parts {
		cfg := partBase.Clone()
		if err := decodeOnto(&f.Parts[i], &cfg); err != nil {
			return nil, fmt.Errorf("archetypes.yaml: parts[%d]: %w", i, err)
		}
		c.Parts = append(c.Parts, cfg)
	}
	for i := range f.Landmarks {
		cfg := entity.DefaultItemConfig()
		if err := decodeOnto(&f.Landmarks[i], &cfg); err != nil {
			return nil, fmt.Errorf("archetypes.yaml: landmarks[%d]: %w", i, err)
		}
		c.Landmarks = append(c.Landmarks, cfg)
	}

	// The traveler carries every part at once.
	if c.Character.InventorySize == 0 {
		c.Character.InventorySize = len(c.Parts)
	}
	return c, nil
}

// Scatter returns fresh copies of everything placed when a world is built:
// parts first, then landmarks.
func (c *Catalogs) Scatter() []entity.ItemConfig {
	out := make([]entity.ItemConfig, 0, len(c.Parts)+len(c.Landmarks))
	for _, p := range c.Parts {
		out = append(out, p.Clone())
	}
	for _, l := range c.Landmarks {
		out = append(out, l.Clone())
	}
	return out
}

func (c *Catalogs) TotalParts() int { return len(c.Parts) }

func decodeOnto(n *yaml.Node, out any) error {
	if n.Kind == 0 {
		return nil
	}
	return n.Decode(out)
}

// validate checks the document against the embedded schema. YAML is first
// normalized through JSON so the validator sees plain JSON values.
func validate(raw []byte) error {
	schema, err := jsonschema.CompileString("archetypes.schema.json", archetypesSchema)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return schema.Validate(v)
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
