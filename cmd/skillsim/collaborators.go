package main

import (
	"log/slog"

	"github.com/udisondev/skillcast/internal/data"
	"github.com/udisondev/skillcast/internal/model"
)

// logAnimator stands in for the animation system.
type logAnimator struct {
	actorID int64
}

func (a logAnimator) SetSkillClip(animation string, speed float64) {
	slog.Debug("animation clip", "actor", a.actorID, "clip", animation, "speed", speed)
}

func (a logAnimator) TriggerSkill() {
	slog.Debug("animation trigger", "actor", a.actorID)
}

// logSpawner stands in for the world: it reports what would be instantiated.
type logSpawner struct {
	actorID int64
}

func (s logSpawner) Spawn(skill *data.SkillDefinition, at model.Transform) {
	slog.Info("skill object spawned",
		"actor", s.actorID,
		"skill", skill.Name(),
		"kind", skill.Kind(),
		"prefab", skill.PrefabHandle(),
		"power", skill.Power(),
		"x", at.Position.X,
		"y", at.Position.Y,
		"z", at.Position.Z,
		"heading", at.Rotation.Heading())

	if effect := skill.HitEffect(); effect != "" {
		slog.Info("hit effect spawned",
			"actor", s.actorID,
			"skill", skill.Name(),
			"effect", effect)
	}
}
