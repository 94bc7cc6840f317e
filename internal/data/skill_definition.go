package data

import (
	"errors"
	"fmt"
	"time"

	"github.com/udisondev/skillcast/internal/model"
)

// SkillKind distinguishes who authored a skill.
type SkillKind int8

const (
	SkillKindPlayer SkillKind = iota
	SkillKindEnemy
)

// String implements fmt.Stringer.
func (k SkillKind) String() string {
	switch k {
	case SkillKindPlayer:
		return "player"
	case SkillKindEnemy:
		return "enemy"
	default:
		return fmt.Sprintf("SkillKind(%d)", int8(k))
	}
}

// PrefabHandle — opaque reference to the attack object a skill spawns.
// Интерпретируется только Spawner'ом.
type PrefabHandle string

var (
	// ErrInvalidSkill is returned when skill parameters fail validation.
	ErrInvalidSkill = errors.New("invalid skill definition")
	// ErrUnknownSkill is returned when a catalog lookup misses.
	ErrUnknownSkill = errors.New("unknown skill")
)

// SkillParams are the authored values of a skill, before validation.
type SkillParams struct {
	Name           string
	Kind           SkillKind
	Power          int
	Chant          time.Duration
	Recovery       time.Duration
	Animation      string
	AnimationSpeed float64
	SpawnOffset    model.Vector3
	Prefab         PrefabHandle
	HitEffect      PrefabHandle
}

// SkillDefinition describes one skill. It is immutable once built and is
// shared read-only by every actor that equips it.
type SkillDefinition struct {
	name           string
	kind           SkillKind
	power          int
	chant          time.Duration
	recovery       time.Duration
	animation      string
	animationSpeed float64
	spawnOffset    model.Vector3
	prefab         PrefabHandle
	hitEffect      PrefabHandle
}

// NewSkillDefinition validates p and builds a SkillDefinition.
// A zero AnimationSpeed defaults to 1.
func NewSkillDefinition(p SkillParams) (*SkillDefinition, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidSkill)
	}
	if p.Chant < 0 {
		return nil, fmt.Errorf("%w: %s: negative chant duration %s", ErrInvalidSkill, p.Name, p.Chant)
	}
	if p.Recovery < 0 {
		return nil, fmt.Errorf("%w: %s: negative recovery duration %s", ErrInvalidSkill, p.Name, p.Recovery)
	}
	if p.AnimationSpeed < 0 {
		return nil, fmt.Errorf("%w: %s: negative animation speed %g", ErrInvalidSkill, p.Name, p.AnimationSpeed)
	}
	speed := p.AnimationSpeed
	if speed == 0 {
		speed = 1
	}

	return &SkillDefinition{
		name:           p.Name,
		kind:           p.Kind,
		power:          p.Power,
		chant:          p.Chant,
		recovery:       p.Recovery,
		animation:      p.Animation,
		animationSpeed: speed,
		spawnOffset:    p.SpawnOffset,
		prefab:         p.Prefab,
		hitEffect:      p.HitEffect,
	}, nil
}

// MustSkillDefinition is NewSkillDefinition that panics on error.
// Intended for tests and static tables.
func MustSkillDefinition(p SkillParams) *SkillDefinition {
	d, err := NewSkillDefinition(p)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *SkillDefinition) Name() string { return d.name }

func (d *SkillDefinition) Kind() SkillKind { return d.kind }

// Power is the attack power carried by the spawned object.
func (d *SkillDefinition) Power() int { return d.power }

// ChantDuration is the delay between activation and the spawn effect.
func (d *SkillDefinition) ChantDuration() time.Duration { return d.chant }

// RecoveryDuration is the delay between activation and the actor being actable again.
func (d *SkillDefinition) RecoveryDuration() time.Duration { return d.recovery }

func (d *SkillDefinition) Animation() string { return d.animation }

func (d *SkillDefinition) AnimationSpeed() float64 { return d.animationSpeed }

// SpawnOffset is relative to the caster, in the cast orientation's frame.
func (d *SkillDefinition) SpawnOffset() model.Vector3 { return d.spawnOffset }

func (d *SkillDefinition) PrefabHandle() PrefabHandle { return d.prefab }

// HitEffect is the optional impact effect handle; empty when unset.
func (d *SkillDefinition) HitEffect() PrefabHandle { return d.hitEffect }
