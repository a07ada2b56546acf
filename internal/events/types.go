package events

import "strings"

// EventType - внутренний числовой идентификатор события симуляции.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventDamageDealt
	EventEnemyDied
	EventModuleEquipped
	EventModuleUnequipped
	EventSlotUnlocked
	EventSlotStatUpgraded
	EventSkillActivated
	EventSkillCooldownStarted
	EventSkillCooldownEnded
	EventModuleSold
	EventTankDamaged
	EventTankHealed
	EventWaveCleared
	EventItemDropped
	EventInventoryOverflow
	EventDefsReloaded
)

// Маппинг для конвертации строк из конфигов/скриптов -> Domain
var eventStringToType = map[string]EventType{
	"DAMAGE_DEALT":           EventDamageDealt,
	"ENEMY_DIED":             EventEnemyDied,
	"MODULE_EQUIPPED":        EventModuleEquipped,
	"MODULE_UNEQUIPPED":      EventModuleUnequipped,
	"SLOT_UNLOCKED":          EventSlotUnlocked,
	"SLOT_STAT_UPGRADED":     EventSlotStatUpgraded,
	"SKILL_ACTIVATED":        EventSkillActivated,
	"SKILL_COOLDOWN_STARTED": EventSkillCooldownStarted,
	"SKILL_COOLDOWN_ENDED":   EventSkillCooldownEnded,
	"MODULE_SOLD":            EventModuleSold,
	"TANK_DAMAGED":           EventTankDamaged,
	"TANK_HEALED":            EventTankHealed,
	"WAVE_CLEARED":           EventWaveCleared,
	"ITEM_DROPPED":           EventItemDropped,
	"INVENTORY_OVERFLOW":     EventInventoryOverflow,
	"DEFS_RELOADED":          EventDefsReloaded,
}

// Маппинг для логов Domain -> String
var eventTypeToString = map[EventType]string{
	EventDamageDealt:          "DAMAGE_DEALT",
	EventEnemyDied:            "ENEMY_DIED",
	EventModuleEquipped:       "MODULE_EQUIPPED",
	EventModuleUnequipped:     "MODULE_UNEQUIPPED",
	EventSlotUnlocked:         "SLOT_UNLOCKED",
	EventSlotStatUpgraded:     "SLOT_STAT_UPGRADED",
	EventSkillActivated:       "SKILL_ACTIVATED",
	EventSkillCooldownStarted: "SKILL_COOLDOWN_STARTED",
	EventSkillCooldownEnded:   "SKILL_COOLDOWN_ENDED",
	EventModuleSold:           "MODULE_SOLD",
	EventTankDamaged:          "TANK_DAMAGED",
	EventTankHealed:           "TANK_HEALED",
	EventWaveCleared:          "WAVE_CLEARED",
	EventItemDropped:          "ITEM_DROPPED",
	EventInventoryOverflow:    "INVENTORY_OVERFLOW",
	EventDefsReloaded:         "DEFS_RELOADED",
}

// ParseEventType конвертирует строку в EventType.
func ParseEventType(s string) EventType {
	// Нечувствительно к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := eventStringToType[upper]; ok {
		return val
	}
	return EventUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf и логов)
func (e EventType) String() string {
	if val, ok := eventTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// AllTypes возвращает все известные типы событий в порядке объявления.
// Нужен ретрансляторам, которые зеркалят всю шину наружу.
func AllTypes() []EventType {
	all := make([]EventType, 0, len(eventTypeToString))
	for t := EventDamageDealt; t <= EventDefsReloaded; t++ {
		all = append(all, t)
	}
	return all
}
