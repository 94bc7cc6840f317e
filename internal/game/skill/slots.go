package skill

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/skillcast/internal/data"
	"github.com/udisondev/skillcast/internal/model"
)

// SlotTable holds the skills an actor has equipped. A nil entry is an empty slot.
type SlotTable struct {
	slots [model.SkillSlotCount]*data.SkillDefinition
}

// NewSlotTable fills slots in order; pass nil for an empty slot.
func NewSlotTable(defs ...*data.SkillDefinition) (*SlotTable, error) {
	if len(defs) > model.SkillSlotCount {
		return nil, fmt.Errorf("slot table holds %d skills, got %d", model.SkillSlotCount, len(defs))
	}
	t := &SlotTable{}
	copy(t.slots[:], defs)
	return t, nil
}

// SlotTableFromLoadout resolves loadout skill names against catalog.
// Names the catalog does not know leave the slot empty and are logged.
func SlotTableFromLoadout(l model.Loadout, catalog *data.Catalog, logger *slog.Logger) *SlotTable {
	if logger == nil {
		logger = slog.Default()
	}
	t := &SlotTable{}
	for i, name := range l.Slots {
		if name == "" {
			continue
		}
		def, err := catalog.Get(name)
		if err != nil {
			logger.Warn("loadout references unknown skill",
				"actor", l.ActorID,
				"slot", i,
				"skill", name,
				"error", err)
			continue
		}
		t.slots[i] = def
	}
	return t
}

// Get returns the skill in slot i; ok is false for an empty or out-of-range slot.
func (t *SlotTable) Get(i int) (def *data.SkillDefinition, ok bool) {
	if i < 0 || i >= len(t.slots) || t.slots[i] == nil {
		return nil, false
	}
	return t.slots[i], true
}

// Set equips def in slot i (nil empties it). Returns false for an out-of-range slot.
func (t *SlotTable) Set(i int, def *data.SkillDefinition) bool {
	if i < 0 || i >= len(t.slots) {
		return false
	}
	t.slots[i] = def
	return true
}

// Names returns the equipped skill names; empty slots are "".
func (t *SlotTable) Names() [model.SkillSlotCount]string {
	var names [model.SkillSlotCount]string
	for i, d := range t.slots {
		if d != nil {
			names[i] = d.Name()
		}
	}
	return names
}
