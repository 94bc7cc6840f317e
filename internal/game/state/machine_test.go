package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMachine_Initial(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, Actable, m.Current())
	assert.Equal(t, uint64(0), m.Transitions())
}

func TestMachine_Transitions(t *testing.T) {
	m := NewMachine()

	assert.False(t, m.EndCast(), "EndCast from Actable must be a no-op")
	assert.Equal(t, Actable, m.Current())

	assert.True(t, m.BeginCast())
	assert.Equal(t, Casting, m.Current())

	assert.False(t, m.BeginCast(), "BeginCast while Casting must be a no-op")
	assert.Equal(t, Casting, m.Current())

	assert.True(t, m.EndCast())
	assert.Equal(t, Actable, m.Current())

	assert.Equal(t, uint64(2), m.Transitions())
}

func TestActorState_String(t *testing.T) {
	tests := []struct {
		state ActorState
		want  string
	}{
		{Actable, "actable"},
		{Casting, "casting"},
		{ActorState(9), "ActorState(9)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
		})
	}
}
