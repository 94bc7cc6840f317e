package model

// SkillSlotCount is the number of equip positions an actor has.
const SkillSlotCount = 3

// Loadout — сохраняемое состояние слотов скиллов актора.
// Slots holds skill names; an empty string is an empty slot.
type Loadout struct {
	ActorID  int64
	Selected int
	Slots    [SkillSlotCount]string
}
