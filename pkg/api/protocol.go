package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы исходящих сообщений.
const (
	MsgState  = "STATE"  // полный снапшот симуляции
	MsgEvents = "EVENTS" // пачка событий за кадр
	MsgError  = "ERROR"  // отказ команды
)

// ServerResponse - корневой объект, который сервер отправляет клиенту.
// STATE шлется по запросу и при подключении, EVENTS - после каждого
// кадра, в котором что-то произошло.
type ServerResponse struct {
	Type string `json:"type"`

	// RunID - идентификатор забега, которому принадлежит сообщение.
	RunID string `json:"run_id,omitempty"`

	// TimeMs - время симуляции на момент отправки, мс от старта забега.
	TimeMs float64 `json:"time_ms"`

	// State - полный слепок симуляции (только для MsgState).
	State *StateView `json:"state,omitempty"`

	// Events - события симуляции в порядке публикации.
	Events []EventFrame `json:"events,omitempty"`

	// Logs - новые строки боевого лога с прошлой рассылки.
	Logs []LogEntry `json:"logs,omitempty"`

	// Error - человекочитаемая причина отказа (только для MsgError).
	Error string `json:"error,omitempty"`
}

// EventFrame - одно событие шины, завернутое для клиента.
// Data - типизированный payload события, сериализуется как есть.
type EventFrame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// StateView - полный слепок симуляции, видимый клиенту.
type StateView struct {
	TimeMs float64 `json:"time_ms"`

	Act  int `json:"act"`
	Zone int `json:"zone"`
	Wave int `json:"wave"`

	Tank        *TankView        `json:"tank"`
	Slots       []SlotView       `json:"slots"`
	Inventory   []ItemView       `json:"inventory"`
	Enemies     []EnemyView      `json:"enemies,omitempty"`
	Projectiles []ProjectileView `json:"projectiles,omitempty"`
}

// TankView - состояние обороняемой машины.
type TankView struct {
	Health    int `json:"health"`
	MaxHealth int `json:"max_health"`
	Level     int `json:"level"`
	XP        int `json:"xp"`
	XPToNext  int `json:"xp_to_next"`
	Gold      int `json:"gold"`
}

// SlotView - состояние одного из пяти маунтов.
// UnlockCost и ActGate присылаются только для закрытых слотов.
type SlotView struct {
	Index      int           `json:"index"`
	Unlocked   bool          `json:"unlocked"`
	Direction  string        `json:"direction"`
	UnlockCost int           `json:"unlock_cost,omitempty"`
	ActGate    int           `json:"act_gate,omitempty"`
	Stats      SlotStatsView `json:"stats"`
	Item       *ItemView     `json:"item,omitempty"`
	Skills     []SkillView   `json:"skills,omitempty"`
}

// SlotStatsView - уровни прокачки слота и цены следующих апгрейдов.
type SlotStatsView struct {
	DamageLevel      int `json:"damage_level"`
	AttackSpeedLevel int `json:"attack_speed_level"`
	CDRLevel         int `json:"cdr_level"`

	DamageCost      int `json:"damage_cost"`
	AttackSpeedCost int `json:"attack_speed_cost"`
	CDRCost         int `json:"cdr_cost"`
}

// ItemView - предмет-модуль в инвентаре или слоте.
type ItemView struct {
	ID      string      `json:"id"`
	Class   string      `json:"class"`
	Rarity  string      `json:"rarity"`
	Bonuses []BonusView `json:"bonuses,omitempty"`
}

// BonusView - один ролл предмета. Value - доля: 0.08 означает +8%.
type BonusView struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// SkillView - состояние скилла экипированного модуля.
type SkillView struct {
	Name              string  `json:"name"`
	CooldownRemaining float64 `json:"cooldown_remaining_ms"`
	ActiveRemaining   float64 `json:"active_remaining_ms"`
	Active            bool    `json:"active"`
	AutoMode          bool    `json:"auto_mode"`
}

// EnemyView - активный враг на поле.
type EnemyView struct {
	ID        string  `json:"id"`
	Archetype string  `json:"archetype"`
	Category  string  `json:"category"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Side      string  `json:"side"`
	Health    int     `json:"health"`
	MaxHealth int     `json:"max_health"`
	State     string  `json:"state"`
}

// ProjectileView - снаряд в полете.
type ProjectileView struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	SlotIndex int     `json:"slot_index"`
	Crit      bool    `json:"crit"`
}

// LogEntry - одна строка боевого лога.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"` // INFO, COMBAT, LOOT, ERROR
	Timestamp int64  `json:"timestamp"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand - корневой объект всех сообщений от клиента.
type ClientCommand struct {
	// ClientID - идентификатор сессии. Проставляется сервером после
	// рукопожатия; клиенту достаточно прислать его в первом сообщении.
	ClientID string `json:"client_id,omitempty"`

	// Action - название действия (SPAWN_ENEMY, EQUIP, ...).
	Action string `json:"action"`

	// Payload - данные действия, структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// SpawnEnemyPayload - ручной спавн врага (SPAWN_ENEMY).
type SpawnEnemyPayload struct {
	Archetype string `json:"archetype"`
	Side      string `json:"side,omitempty"`  // LEFT/RIGHT, пусто = случайно
	Count     int    `json:"count,omitempty"` // 0 = один
}

// SpawnWavePayload - запуск волны (SPAWN_WAVE).
// Нулевые значения означают текущую точку прогрессии.
type SpawnWavePayload struct {
	Act  int `json:"act,omitempty"`
	Zone int `json:"zone,omitempty"`
	Wave int `json:"wave,omitempty"`
}

// EquipPayload - экипировка предмета из инвентаря в слот (EQUIP).
type EquipPayload struct {
	SlotIndex int    `json:"slot_index"`
	ItemID    string `json:"item_id"`
}

// UnequipPayload - снятие предмета из слота в инвентарь (UNEQUIP).
type UnequipPayload struct {
	SlotIndex int `json:"slot_index"`
}

// UpgradeStatPayload - прокачка стата слота (UPGRADE_STAT).
type UpgradeStatPayload struct {
	SlotIndex int    `json:"slot_index"`
	Stat      string `json:"stat"` // DAMAGE, ATTACK_SPEED, CDR
}

// UnlockSlotPayload - покупка слота (UNLOCK_SLOT).
type UnlockSlotPayload struct {
	SlotIndex int `json:"slot_index"`
}

// SellItemPayload - продажа предмета из инвентаря (SELL_ITEM).
type SellItemPayload struct {
	ItemID string `json:"item_id"`
}

// SkillPayload - ручная активация скилла (ACTIVATE_SKILL).
type SkillPayload struct {
	SlotIndex  int `json:"slot_index"`
	SkillIndex int `json:"skill_index"`
}

// ToggleAutoPayload - управление авторежимом скилла (TOGGLE_AUTO).
// Enabled == nil переключает, иначе выставляет явно.
type ToggleAutoPayload struct {
	SlotIndex  int   `json:"slot_index"`
	SkillIndex int   `json:"skill_index"`
	Enabled    *bool `json:"enabled,omitempty"`
}

// PersistPayload - сохранение/загрузка профиля (SAVE, LOAD).
// Пустой Path означает файл профиля по умолчанию.
type PersistPayload struct {
	Path string `json:"path,omitempty"`
}

// CheatPayload - отладочные читы (CHEAT). Ненулевые поля применяются
// независимо друг от друга.
type CheatPayload struct {
	Gold   int    `json:"gold,omitempty"`
	XP     int    `json:"xp,omitempty"`
	Heal   bool   `json:"heal,omitempty"`
	Act    int    `json:"act,omitempty"`
	Item   string `json:"item,omitempty"`   // класс оружия для выдачи
	Rarity string `json:"rarity,omitempty"` // редкость выдаваемого предмета
}
