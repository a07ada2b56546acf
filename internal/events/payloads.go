package events

import (
	"github.com/google/uuid"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types"
	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
)

// Event - единица трафика шины. Data всегда одна из структур ниже,
// слушатели достают её type-switch'ем.
type Event struct {
	Type EventType
	Data interface{}
}

// DamageDealt публикуется при каждом фактическом изменении здоровья цели.
type DamageDealt struct {
	TargetID        types.EntityID `json:"target_id"`
	Damage          int            `json:"damage"`
	IsCrit          bool           `json:"is_crit"`
	RemainingHealth int            `json:"remaining_health"`
	MaxHealth       int            `json:"max_health"`
}

// EnemyDied публикуется синхронно в момент смерти, до возврата в пул.
type EnemyDied struct {
	EnemyID     types.EntityID `json:"enemy_id"`
	EnemyType   string         `json:"enemy_type"`
	XPAwarded   int            `json:"xp_awarded"`
	GoldAwarded int            `json:"gold_awarded"`
}

// ModuleEquipped / ModuleUnequipped - границы жизни боевого модуля в слоте.
type ModuleEquipped struct {
	SlotIndex  int               `json:"slot_index"`
	ModuleID   uuid.UUID         `json:"module_id"`
	ModuleType enums.WeaponClass `json:"module_type"`
}

type ModuleUnequipped struct {
	SlotIndex  int               `json:"slot_index"`
	ModuleID   uuid.UUID         `json:"module_id"`
	ModuleType enums.WeaponClass `json:"module_type"`
}

type SlotUnlocked struct {
	SlotIndex int `json:"slot_index"`
	Cost      int `json:"cost"`
}

type SlotStatUpgraded struct {
	SlotIndex int            `json:"slot_index"`
	StatType  enums.SlotStat `json:"stat_type"`
	NewLevel  int            `json:"new_level"`
	Cost      int            `json:"cost"`
}

type SkillActivated struct {
	SlotIndex int    `json:"slot_index"`
	SkillName string `json:"skill_name"`
	AutoMode  bool   `json:"auto_mode"`
}

// SkillCooldownStarted несет итоговую длительность кулдауна в мс,
// уже с учетом CDR. UI строит по ней кольцо отката.
type SkillCooldownStarted struct {
	SlotIndex        int     `json:"slot_index"`
	SkillName        string  `json:"skill_name"`
	CooldownDuration float64 `json:"cooldown_duration_ms"`
}

type SkillCooldownEnded struct {
	SlotIndex int    `json:"slot_index"`
	SkillName string `json:"skill_name"`
}

type ModuleSold struct {
	ModuleID   uuid.UUID    `json:"module_id"`
	Rarity     enums.Rarity `json:"rarity"`
	GoldEarned int          `json:"gold_earned"`
}

type TankDamaged struct {
	Damage          int `json:"damage"`
	RemainingHealth int `json:"remaining_health"`
	MaxHealth       int `json:"max_health"`
}

type TankHealed struct {
	Points          int `json:"points"`
	RemainingHealth int `json:"remaining_health"`
	MaxHealth       int `json:"max_health"`
}

type WaveCleared struct {
	Act  int `json:"act"`
	Zone int `json:"zone"`
	Wave int `json:"wave"`
}

// ItemDropped: предмет уже лежит в инвентаре, когда событие уходит наружу.
type ItemDropped struct {
	ItemID     uuid.UUID         `json:"item_id"`
	ModuleType enums.WeaponClass `json:"module_type"`
	Rarity     enums.Rarity      `json:"rarity"`
	SourceID   types.EntityID    `json:"source_id"`
}

// InventoryOverflow: предметы сверх лимита отброшены при загрузке профиля.
// Молча такое терять нельзя, поэтому событие + error-лог.
type InventoryOverflow struct {
	Dropped int `json:"dropped"`
	Cap     int `json:"cap"`
}

type DefsReloaded struct {
	Path string `json:"path"`
}
