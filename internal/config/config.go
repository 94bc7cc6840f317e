package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/skillcast/internal/model"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Simulation holds all configuration for the skill simulator.
type Simulation struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Ticking
	TickInterval time.Duration `yaml:"tick_interval"`
	MaxTicks     uint64        `yaml:"max_ticks"` // 0 = run until signal

	// Skill tuning
	FaceSpeed         float64 `yaml:"face_speed"` // degrees per second
	ActivateThreshold float64 `yaml:"activate_threshold"`

	// Content
	SkillsPath  string `yaml:"skills_path"`  // empty = embedded catalog
	InputScript string `yaml:"input_script"` // empty = idle input

	Actors []ActorEntry `yaml:"actors"`

	// Database (loadout persistence)
	Database DatabaseConfig `yaml:"database"`
}

// ActorEntry is one actor to spawn at startup.
type ActorEntry struct {
	ID       int64         `yaml:"id"`
	Position model.Vector3 `yaml:"position"`
	Loadout  LoadoutEntry  `yaml:"loadout"`
}

// LoadoutEntry is the default loadout used when none is persisted.
// Selected is 1-based, matching the select keys.
type LoadoutEntry struct {
	Selected int      `yaml:"selected"`
	Slots    []string `yaml:"slots"`
}

// Model converts the entry into a model.Loadout for actorID.
func (l LoadoutEntry) Model(actorID int64) model.Loadout {
	out := model.Loadout{ActorID: actorID}
	if l.Selected > 0 {
		out.Selected = l.Selected - 1
	}
	copy(out.Slots[:], l.Slots)
	return out
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Default returns Simulation config with sensible defaults.
func Default() Simulation {
	return Simulation{
		LogLevel:          "info",
		TickInterval:      20 * time.Millisecond,
		FaceSpeed:         1200,
		ActivateThreshold: 1.0,
		Actors: []ActorEntry{
			{
				ID: 1,
				Loadout: LoadoutEntry{
					Selected: 1,
					Slots:    []string{"slash", "fireball", "ice_lance"},
				},
			},
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "skillcast",
			Password: "skillcast",
			DBName:   "skillcast",
			SSLMode:  "disable",
		},
	}
}

// Load loads config from a YAML file on top of Default.
// If the file doesn't exist, returns defaults.
func Load(path string) (Simulation, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Simulation) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick_interval must be positive, got %s", ErrInvalidConfig, c.TickInterval)
	}
	if c.FaceSpeed < 0 {
		return fmt.Errorf("%w: face_speed must not be negative, got %g", ErrInvalidConfig, c.FaceSpeed)
	}
	if c.ActivateThreshold <= 0 {
		return fmt.Errorf("%w: activate_threshold must be positive, got %g", ErrInvalidConfig, c.ActivateThreshold)
	}

	seen := make(map[int64]struct{}, len(c.Actors))
	for _, a := range c.Actors {
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("%w: duplicate actor id %d", ErrInvalidConfig, a.ID)
		}
		seen[a.ID] = struct{}{}

		if len(a.Loadout.Slots) > model.SkillSlotCount {
			return fmt.Errorf("%w: actor %d: %d slots, max %d",
				ErrInvalidConfig, a.ID, len(a.Loadout.Slots), model.SkillSlotCount)
		}
		if a.Loadout.Selected < 0 || a.Loadout.Selected > model.SkillSlotCount {
			return fmt.Errorf("%w: actor %d: selected slot %d out of range 1..%d",
				ErrInvalidConfig, a.ID, a.Loadout.Selected, model.SkillSlotCount)
		}
	}
	return nil
}
