package skill

import (
	"log/slog"
	"time"

	"github.com/udisondev/skillcast/internal/data"
	"github.com/udisondev/skillcast/internal/game/state"
	"github.com/udisondev/skillcast/internal/game/timer"
	"github.com/udisondev/skillcast/internal/model"
)

// Defaults for Config.
const (
	DefaultTickInterval      = 20 * time.Millisecond
	DefaultFaceSpeed         = 1200.0 // degrees per second
	DefaultActivateThreshold = 1.0
)

// Config holds the coordinator's tuning.
type Config struct {
	TickInterval      time.Duration
	FaceSpeed         float64 // degrees per second
	ActivateThreshold float64
}

// DefaultConfig returns Config with the default tuning.
func DefaultConfig() Config {
	return Config{
		TickInterval:      DefaultTickInterval,
		FaceSpeed:         DefaultFaceSpeed,
		ActivateThreshold: DefaultActivateThreshold,
	}
}

// Deps are the collaborators a Coordinator drives.
// Machine, Transform and Slots are required; nil Animator/Spawner are no-ops
// and a nil Logger means slog.Default().
type Deps struct {
	Machine   *state.Machine
	Transform *model.Transform
	Slots     *SlotTable
	Animator  Animator
	Spawner   Spawner
	Logger    *slog.Logger
}

// Coordinator runs one actor's skill casting: slot selection, rising-edge
// activation, the chant and recovery timers, and turning to face the cast.
//
// All methods must be called from the actor's tick goroutine.
type Coordinator struct {
	cfg       Config
	machine   *state.Machine
	transform *model.Transform
	slots     *SlotTable
	animator  Animator
	spawner   Spawner
	logger    *slog.Logger
	timers    *timer.Scheduler

	selected  int
	session   *CastSession
	inputHeld bool // input was at or above the threshold on the last actable tick
	tick      uint64
	castSeq   uint64
	destroyed bool
}

// NewCoordinator creates a Coordinator with slot 0 selected.
func NewCoordinator(cfg Config, deps Deps) *Coordinator {
	c := &Coordinator{
		cfg:       cfg,
		machine:   deps.Machine,
		transform: deps.Transform,
		slots:     deps.Slots,
		animator:  deps.Animator,
		spawner:   deps.Spawner,
		logger:    deps.Logger,
		timers:    timer.NewScheduler(),
	}
	if c.animator == nil {
		c.animator = nopAnimator{}
	}
	if c.spawner == nil {
		c.spawner = nopSpawner{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.cfg.ActivateThreshold <= 0 {
		c.cfg.ActivateThreshold = DefaultActivateThreshold
	}
	return c
}

// SelectSlot makes slot i the one the next activation uses. It is accepted
// mid-cast; the open session keeps the skill it captured.
// Returns false if i is out of range.
func (c *Coordinator) SelectSlot(i int) bool {
	if i < 0 || i >= model.SkillSlotCount {
		return false
	}
	c.selected = i
	return true
}

// Tick applies one frame of input: slot flags in order (the last set flag
// wins), then Update.
func (c *Coordinator) Tick(in Input) {
	for i, sel := range in.Select {
		if sel {
			c.SelectSlot(i)
		}
	}
	c.Update(in.Activate, in.Facing)
}

// Update advances the coordinator by one tick.
//
// Order within a tick: facing correction runs if a cast is open, due timers
// fire, then activation is considered only if the actor is actable.
// Activation needs a rising edge against the input seen on the last actable
// tick. The edge is not tracked while casting, so the input must be seen
// below the threshold on an actable tick before the next cast starts.
func (c *Coordinator) Update(activate float64, facing model.Vector3) {
	if c.destroyed {
		return
	}
	c.tick++

	if c.session != nil {
		c.faceTarget()
	}
	c.timers.Advance()

	if c.machine.Current() != state.Actable {
		return
	}

	pressed := activate >= c.cfg.ActivateThreshold
	rising := pressed && !c.inputHeld
	c.inputHeld = pressed
	if !rising {
		return
	}

	def, ok := c.slots.Get(c.selected)
	if !ok {
		c.logger.Warn("empty skill slot",
			"slot", c.selected,
			"tick", c.tick)
		return
	}

	c.activate(def, facing)
}

func (c *Coordinator) activate(def *data.SkillDefinition, facing model.Vector3) {
	target, ok := model.LookRotationFlat(facing)
	if !ok {
		target = c.transform.Rotation
		c.logger.Debug("degenerate facing direction, keeping orientation",
			"facing", facing,
			"tick", c.tick)
	}

	if !c.machine.BeginCast() {
		return
	}

	c.castSeq++
	sess := &CastSession{
		Seq:       c.castSeq,
		Slot:      c.selected,
		Skill:     def,
		Target:    target,
		StartTick: c.tick,
	}
	c.session = sess

	c.animator.SetSkillClip(def.Animation(), def.AnimationSpeed())
	c.animator.TriggerSkill()

	chantTicks := timer.TicksFor(def.ChantDuration(), c.cfg.TickInterval)
	recoveryTicks := timer.TicksFor(def.RecoveryDuration(), c.cfg.TickInterval)
	c.timers.Schedule(timer.Key{Cast: sess.Seq, Kind: timer.Spawn}, chantTicks, func() { c.spawn(sess) })
	c.timers.Schedule(timer.Key{Cast: sess.Seq, Kind: timer.Recovery}, recoveryTicks, func() { c.endRecovery(sess) })

	c.logger.Debug("skill cast",
		"skill", def.Name(),
		"slot", sess.Slot,
		"cast", sess.Seq,
		"tick", c.tick,
		"chantTicks", chantTicks,
		"recoveryTicks", recoveryTicks,
		"heading", target.Heading())
}

// faceTarget turns the actor toward the open session's target by at most
// FaceSpeed*TickInterval degrees.
func (c *Coordinator) faceTarget() {
	if c.transform.Rotation.ApproxEqual(c.session.Target) {
		return
	}
	step := c.cfg.FaceSpeed * c.cfg.TickInterval.Seconds()
	c.transform.Rotation = model.RotateTowards(c.transform.Rotation, c.session.Target, step)
}

// spawn fires when the chant finishes. It uses the skill and orientation the
// session captured and the actor's current position.
func (c *Coordinator) spawn(sess *CastSession) {
	sess.Spawned = true
	at := model.Transform{
		Position: c.transform.LocalToWorld(sess.Skill.SpawnOffset(), sess.Target),
		Rotation: sess.Target,
	}
	c.spawner.Spawn(sess.Skill, at)

	c.logger.Debug("skill spawned",
		"skill", sess.Skill.Name(),
		"cast", sess.Seq,
		"tick", c.tick)
}

// endRecovery fires when recovery finishes: the session closes and the actor
// becomes actable again.
func (c *Coordinator) endRecovery(sess *CastSession) {
	if c.session == sess {
		c.session = nil
	}
	c.machine.EndCast()

	c.logger.Debug("skill recovered",
		"skill", sess.Skill.Name(),
		"cast", sess.Seq,
		"tick", c.tick)
}

// Destroy cancels every pending timer and closes an open session. Later
// calls to Update do nothing. Game logic has no other way to cancel a timer.
func (c *Coordinator) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	dropped := c.timers.CancelAll()
	if c.session != nil {
		c.session = nil
		c.machine.EndCast()
	}
	c.logger.Debug("skill coordinator destroyed", "droppedTimers", dropped)
}

// State returns the actor's current state.
func (c *Coordinator) State() state.ActorState {
	return c.machine.Current()
}

// Session returns a copy of the open cast session.
func (c *Coordinator) Session() (CastSession, bool) {
	if c.session == nil {
		return CastSession{}, false
	}
	return *c.session, true
}

// SelectedSlot returns the slot the next activation uses.
func (c *Coordinator) SelectedSlot() int {
	return c.selected
}

// PendingTimers returns the number of scheduled timers.
func (c *Coordinator) PendingTimers() int {
	return c.timers.Len()
}

// TickCount returns how many ticks Update has processed.
func (c *Coordinator) TickCount() uint64 {
	return c.tick
}

// Destroyed reports whether Destroy was called.
func (c *Coordinator) Destroyed() bool {
	return c.destroyed
}

// Loadout snapshots the equipped skills and the selected slot for persistence.
func (c *Coordinator) Loadout(actorID int64) model.Loadout {
	return model.Loadout{
		ActorID:  actorID,
		Selected: c.selected,
		Slots:    c.slots.Names(),
	}
}
