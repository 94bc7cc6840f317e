package skill

import (
	"github.com/udisondev/skillcast/internal/data"
	"github.com/udisondev/skillcast/internal/model"
)

// Input is one tick of player input.
type Input struct {
	Activate float64                    // "activate skill" axis intensity
	Select   [model.SkillSlotCount]bool // select-slot edge flags, slot 1..3
	Facing   model.Vector3              // camera forward
}

// Animator plays the cast animation. Fire-and-forget.
type Animator interface {
	SetSkillClip(animation string, speed float64)
	TriggerSkill()
}

// Spawner instantiates the object a skill creates. Fire-and-forget.
type Spawner interface {
	Spawn(skill *data.SkillDefinition, at model.Transform)
}

// SpawnerFunc adapts a function to Spawner.
type SpawnerFunc func(skill *data.SkillDefinition, at model.Transform)

func (f SpawnerFunc) Spawn(skill *data.SkillDefinition, at model.Transform) { f(skill, at) }

type nopAnimator struct{}

func (nopAnimator) SetSkillClip(string, float64) {}
func (nopAnimator) TriggerSkill()                {}

type nopSpawner struct{}

func (nopSpawner) Spawn(*data.SkillDefinition, model.Transform) {}
