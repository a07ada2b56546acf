package domain

import (
	"encoding/json"
	"strings"
)

// ActionType - внутренний числовой идентификатор действия клиента.
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionState
	ActionSpawnEnemy
	ActionSpawnWave
	ActionEquip
	ActionUnequip
	ActionUpgradeStat
	ActionUnlockSlot
	ActionSellItem
	ActionActivateSkill
	ActionToggleAuto
	ActionSave
	ActionLoad
	ActionCheat
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"STATE":          ActionState,
	"SPAWN_ENEMY":    ActionSpawnEnemy,
	"SPAWN_WAVE":     ActionSpawnWave,
	"EQUIP":          ActionEquip,
	"UNEQUIP":        ActionUnequip,
	"UPGRADE_STAT":   ActionUpgradeStat,
	"UNLOCK_SLOT":    ActionUnlockSlot,
	"SELL_ITEM":      ActionSellItem,
	"ACTIVATE_SKILL": ActionActivateSkill,
	"TOGGLE_AUTO":    ActionToggleAuto,
	"SAVE":           ActionSave,
	"LOAD":           ActionLoad,
	"CHEAT":          ActionCheat,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionState:         "STATE",
	ActionSpawnEnemy:    "SPAWN_ENEMY",
	ActionSpawnWave:     "SPAWN_WAVE",
	ActionEquip:         "EQUIP",
	ActionUnequip:       "UNEQUIP",
	ActionUpgradeStat:   "UPGRADE_STAT",
	ActionUnlockSlot:    "UNLOCK_SLOT",
	ActionSellItem:      "SELL_ITEM",
	ActionActivateSkill: "ACTIVATE_SKILL",
	ActionToggleAuto:    "TOGGLE_AUTO",
	ActionSave:          "SAVE",
	ActionLoad:          "LOAD",
	ActionCheat:         "CHEAT",
}

// ParseAction конвертирует строку из JSON в ActionType.
// Нечувствителен к регистру.
func ParseAction(s string) ActionType {
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf и логов)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// InternalCommand - оптимизированная команда для движка.
// Использует ActionType вместо string.
type InternalCommand struct {
	Action   ActionType      // Число! Быстро и безопасно.
	ClientID string          // Кто прислал команду (для ответов)
	Payload  json.RawMessage // Сырые данные (парсятся хендлером)
}
