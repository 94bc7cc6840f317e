package skill

import (
	"github.com/udisondev/skillcast/internal/data"
	"github.com/udisondev/skillcast/internal/model"
)

// CastSession is an in-progress cast. It captures the skill at activation,
// so changing the selected slot mid-cast does not affect it.
type CastSession struct {
	Seq       uint64
	Slot      int
	Skill     *data.SkillDefinition
	Target    model.Quaternion
	StartTick uint64
	Spawned   bool
}
