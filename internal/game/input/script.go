// Package input provides recorded input sources for driving actors without a device.
package input

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/skillcast/internal/game/skill"
	"github.com/udisondev/skillcast/internal/model"
)

// ErrInvalidScript is returned when a script fails validation.
var ErrInvalidScript = errors.New("invalid input script")

type frameEntry struct {
	Tick     uint64         `yaml:"tick"`
	Activate float64        `yaml:"activate"`
	Select   int            `yaml:"select"` // 1..3, 0 = none
	Facing   *model.Vector3 `yaml:"facing"`
}

type scriptFile struct {
	Frames []frameEntry `yaml:"frames"`
}

type frame struct {
	tick     uint64
	activate float64
	selected int // 0-based slot, -1 = none
	facing   model.Vector3
}

// Script replays recorded input. Between frames the last activate intensity
// and facing are held; a slot selection is an edge on its own tick only.
type Script struct {
	frames []frame
}

// ParseScript decodes a YAML input script.
func ParseScript(raw []byte) (*Script, error) {
	var f scriptFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding input script: %w", err)
	}

	entries := slices.Clone(f.Frames)
	slices.SortStableFunc(entries, func(a, b frameEntry) int {
		return cmp.Compare(a.Tick, b.Tick)
	})

	s := &Script{frames: make([]frame, 0, len(entries))}
	facing := model.Forward
	for i, e := range entries {
		if i > 0 && entries[i-1].Tick == e.Tick {
			return nil, fmt.Errorf("%w: duplicate tick %d", ErrInvalidScript, e.Tick)
		}
		if e.Select < 0 || e.Select > model.SkillSlotCount {
			return nil, fmt.Errorf("%w: tick %d: select %d out of range 1..%d",
				ErrInvalidScript, e.Tick, e.Select, model.SkillSlotCount)
		}
		if e.Facing != nil {
			facing = *e.Facing
		}
		s.frames = append(s.frames, frame{
			tick:     e.Tick,
			activate: e.Activate,
			selected: e.Select - 1,
			facing:   facing,
		})
	}
	return s, nil
}

// LoadScript reads and parses a YAML input script file.
func LoadScript(path string) (*Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input script %s: %w", path, err)
	}
	s, err := ParseScript(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing input script %s: %w", path, err)
	}
	return s, nil
}

// Sample returns the input for tick.
func (s *Script) Sample(tick uint64) skill.Input {
	// Index of the first frame after tick.
	i, _ := slices.BinarySearchFunc(s.frames, tick+1, func(f frame, t uint64) int {
		return cmp.Compare(f.tick, t)
	})
	if i == 0 {
		return skill.Input{Facing: model.Forward}
	}

	f := s.frames[i-1]
	in := skill.Input{Activate: f.activate, Facing: f.facing}
	if f.tick == tick && f.selected >= 0 {
		in.Select[f.selected] = true
	}
	return in
}

// LastTick returns the tick of the final frame.
func (s *Script) LastTick() uint64 {
	if len(s.frames) == 0 {
		return 0
	}
	return s.frames[len(s.frames)-1].tick
}

// Len returns the number of frames.
func (s *Script) Len() int {
	return len(s.frames)
}
