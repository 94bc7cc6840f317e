package sim

import (
	"log/slog"

	"github.com/udisondev/skillcast/internal/game/skill"
	"github.com/udisondev/skillcast/internal/game/state"
	"github.com/udisondev/skillcast/internal/model"
)

// InputSource supplies one tick of input for an actor.
type InputSource interface {
	Sample(tick uint64) skill.Input
}

// InputFunc adapts a function to InputSource.
type InputFunc func(tick uint64) skill.Input

func (f InputFunc) Sample(tick uint64) skill.Input { return f(tick) }

// ActorConfig describes how to build an Actor.
type ActorConfig struct {
	ID       int64
	Position model.Vector3
	Slots    *skill.SlotTable
	Selected int
	Input    InputSource
	Skill    skill.Config
	Animator skill.Animator
	Spawner  skill.Spawner
	Logger   *slog.Logger
}

// Actor owns one character's state machine, transform and skill coordinator,
// and feeds it input once per tick.
type Actor struct {
	id        int64
	transform *model.Transform
	machine   *state.Machine
	coord     *skill.Coordinator
	input     InputSource
	tick      uint64
}

// NewActor wires an actor from cfg. A nil Input means no input at all.
func NewActor(cfg ActorConfig) *Actor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("actor", cfg.ID)

	input := cfg.Input
	if input == nil {
		input = InputFunc(func(uint64) skill.Input { return skill.Input{Facing: model.Forward} })
	}

	a := &Actor{
		id:        cfg.ID,
		transform: model.NewTransform(cfg.Position),
		machine:   state.NewMachine(),
		input:     input,
	}
	a.coord = skill.NewCoordinator(cfg.Skill, skill.Deps{
		Machine:   a.machine,
		Transform: a.transform,
		Slots:     cfg.Slots,
		Animator:  cfg.Animator,
		Spawner:   cfg.Spawner,
		Logger:    logger,
	})
	a.coord.SelectSlot(cfg.Selected)
	return a
}

// ID returns the actor ID.
func (a *Actor) ID() int64 {
	return a.id
}

// Tick samples input and advances the coordinator by one tick.
func (a *Actor) Tick() {
	a.coord.Tick(a.input.Sample(a.tick))
	a.tick++
}

// Destroy cancels the actor's pending skill timers.
func (a *Actor) Destroy() {
	a.coord.Destroy()
}

// Coordinator exposes the actor's skill coordinator.
func (a *Actor) Coordinator() *skill.Coordinator {
	return a.coord
}

// Transform returns the actor's transform.
func (a *Actor) Transform() *model.Transform {
	return a.transform
}

// Loadout snapshots the actor's slots for persistence.
func (a *Actor) Loadout() model.Loadout {
	return a.coord.Loadout(a.id)
}
