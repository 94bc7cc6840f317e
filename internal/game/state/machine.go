// Package state holds the per-actor activity state machine.
package state

import "fmt"

// ActorState is what an actor is currently doing.
type ActorState int8

const (
	Actable ActorState = iota // free to act (initial)
	Casting                   // between skill activation and recovery
)

// String implements fmt.Stringer.
func (s ActorState) String() string {
	switch s {
	case Actable:
		return "actable"
	case Casting:
		return "casting"
	default:
		return fmt.Sprintf("ActorState(%d)", int8(s))
	}
}

// Machine enforces the legal transitions between actor states.
// There is no terminal state: a Machine lives as long as its actor.
//
// Not thread-safe; owned by a single actor and driven from its tick.
type Machine struct {
	current     ActorState
	transitions uint64
}

// NewMachine returns a Machine in the Actable state.
func NewMachine() *Machine {
	return &Machine{current: Actable}
}

// Current returns the current state.
func (m *Machine) Current() ActorState {
	return m.current
}

// BeginCast moves Actable -> Casting.
// Returns false and changes nothing if the actor is already casting.
func (m *Machine) BeginCast() bool {
	if m.current != Actable {
		return false
	}
	m.current = Casting
	m.transitions++
	return true
}

// EndCast moves Casting -> Actable.
// Returns false and changes nothing if the actor is already actable.
func (m *Machine) EndCast() bool {
	if m.current != Casting {
		return false
	}
	m.current = Actable
	m.transitions++
	return true
}

// Transitions returns how many successful transitions have happened.
func (m *Machine) Transitions() uint64 {
	return m.transitions
}
