package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skillcast/internal/model"
)

const sampleScript = `
frames:
  - tick: 5
    activate: 1
    select: 2
    facing: {x: 1, y: 0, z: 0}
  - tick: 2
    activate: 0.5
  - tick: 8
    activate: 0
`

func TestScript_Sample(t *testing.T) {
	s, err := ParseScript([]byte(sampleScript))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, uint64(8), s.LastTick())

	tests := []struct {
		name     string
		tick     uint64
		activate float64
		slot     int // -1 = no select flag
		facing   model.Vector3
	}{
		{"before first frame", 0, 0, -1, model.Forward},
		{"first frame", 2, 0.5, -1, model.Forward},
		{"held between frames", 4, 0.5, -1, model.Forward},
		{"select edge", 5, 1, 1, model.Vec3(1, 0, 0)},
		{"select does not repeat", 6, 1, -1, model.Vec3(1, 0, 0)},
		{"facing held", 9, 0, -1, model.Vec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := s.Sample(tt.tick)
			assert.Equal(t, tt.activate, in.Activate)
			assert.Equal(t, tt.facing, in.Facing)

			var want [model.SkillSlotCount]bool
			if tt.slot >= 0 {
				want[tt.slot] = true
			}
			assert.Equal(t, want, in.Select)
		})
	}
}

func TestParseScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"duplicate tick", "frames: [{tick: 1}, {tick: 1}]"},
		{"select too high", "frames: [{tick: 1, select: 4}]"},
		{"select negative", "frames: [{tick: 1, select: -1}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidScript)
		})
	}

	_, err := ParseScript([]byte("frames: ["))
	assert.Error(t, err)
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScript), 0o600))

	s, err := LoadScript(path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestScript_Empty(t *testing.T) {
	s, err := ParseScript([]byte("frames: []"))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), s.LastTick())
	assert.Equal(t, model.Forward, s.Sample(3).Facing)
}
