package data

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/skillcast/internal/model"
)

//go:embed catalog/skills.yaml
var defaultCatalogYAML []byte

// skillEntry is the YAML form of one catalog entry.
type skillEntry struct {
	Name           string        `yaml:"name"`
	Kind           string        `yaml:"kind"`
	Power          int           `yaml:"power"`
	Chant          time.Duration `yaml:"chant"`
	ChantFrames    int           `yaml:"chant_frames"` // enemy skills are authored in frames
	Recovery       time.Duration `yaml:"recovery"`
	Animation      string        `yaml:"animation"`
	AnimationSpeed float64       `yaml:"animation_speed"`
	SpawnOffset    model.Vector3 `yaml:"spawn_offset"`
	Prefab         string        `yaml:"prefab"`
	HitEffect      string        `yaml:"hit_effect"`
}

type catalogFile struct {
	Skills []skillEntry `yaml:"skills"`
}

// Catalog — registry of skill definitions keyed by name.
// Read-only after construction; safe for concurrent use.
type Catalog struct {
	skills map[string]*SkillDefinition
}

// NewCatalog builds a catalog from already validated definitions.
func NewCatalog(defs ...*SkillDefinition) (*Catalog, error) {
	c := &Catalog{skills: make(map[string]*SkillDefinition, len(defs))}
	for _, d := range defs {
		if _, dup := c.skills[d.Name()]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidSkill, d.Name())
		}
		c.skills[d.Name()] = d
	}
	return c, nil
}

// ParseCatalog decodes a YAML catalog. tick is the simulation tick interval,
// used to convert chant_frames into a duration.
func ParseCatalog(raw []byte, tick time.Duration) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding skill catalog: %w", err)
	}

	defs := make([]*SkillDefinition, 0, len(f.Skills))
	for i, e := range f.Skills {
		d, err := e.definition(tick)
		if err != nil {
			return nil, fmt.Errorf("skill #%d: %w", i, err)
		}
		defs = append(defs, d)
	}

	return NewCatalog(defs...)
}

// LoadCatalog reads and parses a YAML catalog file.
func LoadCatalog(path string, tick time.Duration) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading skill catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(raw, tick)
	if err != nil {
		return nil, fmt.Errorf("parsing skill catalog %s: %w", path, err)
	}
	slog.Info("loaded skill catalog", "path", path, "skills", c.Len())
	return c, nil
}

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog(tick time.Duration) (*Catalog, error) {
	c, err := ParseCatalog(defaultCatalogYAML, tick)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded skill catalog: %w", err)
	}
	slog.Info("loaded embedded skill catalog", "skills", c.Len())
	return c, nil
}

// Get returns the definition named name.
func (c *Catalog) Get(name string) (*SkillDefinition, error) {
	d, ok := c.skills[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSkill, name)
	}
	return d, nil
}

// Names returns all skill names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.skills))
	for n := range c.skills {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of skills.
func (c *Catalog) Len() int {
	return len(c.skills)
}

func (e skillEntry) definition(tick time.Duration) (*SkillDefinition, error) {
	kind, err := parseKind(e.Kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name, err)
	}

	chant := e.Chant
	if e.ChantFrames != 0 {
		if e.Chant != 0 {
			return nil, fmt.Errorf("%w: %s: both chant and chant_frames set", ErrInvalidSkill, e.Name)
		}
		if e.ChantFrames < 0 {
			return nil, fmt.Errorf("%w: %s: negative chant_frames %d", ErrInvalidSkill, e.Name, e.ChantFrames)
		}
		chant = time.Duration(e.ChantFrames) * tick
	}

	return NewSkillDefinition(SkillParams{
		Name:           e.Name,
		Kind:           kind,
		Power:          e.Power,
		Chant:          chant,
		Recovery:       e.Recovery,
		Animation:      e.Animation,
		AnimationSpeed: e.AnimationSpeed,
		SpawnOffset:    e.SpawnOffset,
		Prefab:         PrefabHandle(e.Prefab),
		HitEffect:      PrefabHandle(e.HitEffect),
	})
}

func parseKind(s string) (SkillKind, error) {
	switch s {
	case "", "player":
		return SkillKindPlayer, nil
	case "enemy":
		return SkillKindEnemy, nil
	default:
		return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidSkill, s)
	}
}
