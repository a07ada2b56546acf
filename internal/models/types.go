package models

// Формы персистентного профиля забега. Пакет намеренно не импортирует
// domain: это контракт файла сохранения, он должен переживать
// рефакторинги рантайм-типов. Все enum-поля - строки, конвертацию
// в типизированные значения делает движок при применении профиля.

// ProfileVersion - текущая версия формата профиля.
const ProfileVersion = 1

// Profile - полное сохраняемое состояние забега.
type Profile struct {
	Version int   `json:"version" msgpack:"version"`
	SavedAt int64 `json:"saved_at" msgpack:"saved_at"` // unix seconds

	Tank      TankState   `json:"tank" msgpack:"tank"`
	Slots     []SlotState `json:"slots" msgpack:"slots"` // ровно 5
	Inventory []ItemState `json:"inventory" msgpack:"inventory"`
	Progress  Progress    `json:"progress" msgpack:"progress"`
}

// TankState - прогрессия и ресурсы машины.
type TankState struct {
	Level     int `json:"level" msgpack:"level"`
	XP        int `json:"xp" msgpack:"xp"`
	Gold      int `json:"gold" msgpack:"gold"`
	Health    int `json:"health" msgpack:"health"`
	MaxHealth int `json:"max_health" msgpack:"max_health"`
}

// SlotState - один маунт: открыт ли, прокачка, экипированный предмет.
type SlotState struct {
	Index    int        `json:"index" msgpack:"index"`
	Unlocked bool       `json:"unlocked" msgpack:"unlocked"`
	Stats    StatLevels `json:"stats" msgpack:"stats"`
	Equipped *ItemState `json:"equipped,omitempty" msgpack:"equipped,omitempty"`
}

// StatLevels - уровни независимой прокачки слота.
type StatLevels struct {
	Damage      int `json:"damage" msgpack:"damage"`
	AttackSpeed int `json:"attack_speed" msgpack:"attack_speed"`
	CDR         int `json:"cdr" msgpack:"cdr"`
}

// ItemState - предмет-модуль в сериализуемой форме.
type ItemState struct {
	ID      string       `json:"id" msgpack:"id"`
	Class   string       `json:"class" msgpack:"class"`
	Rarity  string       `json:"rarity" msgpack:"rarity"`
	Bonuses []BonusState `json:"bonuses,omitempty" msgpack:"bonuses,omitempty"`
}

// BonusState - один ролл предмета.
type BonusState struct {
	Type  string  `json:"type" msgpack:"type"`
	Value float64 `json:"value" msgpack:"value"`
}

// Progress - точка прогрессии забега.
type Progress struct {
	Act  int `json:"act" msgpack:"act"`
	Zone int `json:"zone" msgpack:"zone"`
	Wave int `json:"wave" msgpack:"wave"`
}
