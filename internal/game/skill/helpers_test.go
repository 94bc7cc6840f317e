package skill

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/skillcast/internal/data"
	"github.com/udisondev/skillcast/internal/game/state"
	"github.com/udisondev/skillcast/internal/model"
)

// recordingHandler captures log records so tests can count diagnostics.
type recordingHandler struct {
	mu       sync.Mutex
	messages []string
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, r.Message)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) count(msg string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, m := range h.messages {
		if m == msg {
			n++
		}
	}
	return n
}

type spawnRecord struct {
	skill *data.SkillDefinition
	at    model.Transform
	tick  uint64
}

type fakeAnimator struct {
	clips    []string
	speeds   []float64
	triggers int
}

func (a *fakeAnimator) SetSkillClip(animation string, speed float64) {
	a.clips = append(a.clips, animation)
	a.speeds = append(a.speeds, speed)
}

func (a *fakeAnimator) TriggerSkill() { a.triggers++ }

type harness struct {
	c         *Coordinator
	machine   *state.Machine
	transform *model.Transform
	slots     *SlotTable
	animator  *fakeAnimator
	log       *recordingHandler
	spawns    []spawnRecord
}

func newHarness(t *testing.T, cfg Config, defs ...*data.SkillDefinition) *harness {
	t.Helper()

	slots, err := NewSlotTable(defs...)
	require.NoError(t, err)

	h := &harness{
		machine:   state.NewMachine(),
		transform: model.NewTransform(model.Vector3{}),
		slots:     slots,
		animator:  &fakeAnimator{},
		log:       &recordingHandler{},
	}
	h.c = NewCoordinator(cfg, Deps{
		Machine:   h.machine,
		Transform: h.transform,
		Slots:     slots,
		Animator:  h.animator,
		Spawner: SpawnerFunc(func(skill *data.SkillDefinition, at model.Transform) {
			h.spawns = append(h.spawns, spawnRecord{skill: skill, at: at, tick: h.c.TickCount()})
		}),
		Logger: slog.New(h.log),
	})
	return h
}

// assertInvariant checks that the actor is casting exactly when a session is open.
func (h *harness) assertInvariant(t *testing.T) {
	t.Helper()
	_, open := h.c.Session()
	require.Equal(t, open, h.c.State() == state.Casting,
		"tick %d: state=%s sessionOpen=%v", h.c.TickCount(), h.c.State(), open)
}

// tickConfig returns a Config where one tick is 100ms.
func tickConfig() Config {
	return Config{
		TickInterval:      100 * time.Millisecond,
		FaceSpeed:         DefaultFaceSpeed,
		ActivateThreshold: DefaultActivateThreshold,
	}
}

func testSkill(name string, chant, recovery time.Duration) *data.SkillDefinition {
	return data.MustSkillDefinition(data.SkillParams{
		Name:           name,
		Power:          10,
		Chant:          chant,
		Recovery:       recovery,
		Animation:      "anim_" + name,
		AnimationSpeed: 1.5,
		SpawnOffset:    model.Vec3(0, 1, 2),
		Prefab:         data.PrefabHandle(name),
	})
}

var forward = model.Vec3(0, 0, 1)
