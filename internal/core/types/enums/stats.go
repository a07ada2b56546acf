package enums

import "strings"

// SlotStat - прокачиваемая характеристика слота.
// Каждый уровень дает +1% к соответствующему показателю модуля.
type SlotStat uint8

const (
	StatUnknown SlotStat = iota
	StatDamage
	StatAttackSpeed
	StatCooldownReduction
)

var slotStatToString = map[SlotStat]string{
	StatDamage:            "DAMAGE",
	StatAttackSpeed:       "ATTACK_SPEED",
	StatCooldownReduction: "CDR",
}

var slotStatStringToStat = map[string]SlotStat{
	"DAMAGE":       StatDamage,
	"ATTACK_SPEED": StatAttackSpeed,
	"CDR":          StatCooldownReduction,
}

func (s SlotStat) String() string {
	if val, ok := slotStatToString[s]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseSlotStat(v string) SlotStat {
	upper := strings.ToUpper(strings.TrimSpace(v))
	if val, ok := slotStatStringToStat[upper]; ok {
		return val
	}
	return StatUnknown
}

// BonusType - тип случайного бонуса на предмете.
// Количество и диапазон роллов определяются редкостью.
type BonusType uint8

const (
	BonusUnknown BonusType = iota
	BonusDamage
	BonusAttackSpeed
	BonusCritChance
	BonusCritDamage
	BonusCooldownReduction
)

var bonusTypeToString = map[BonusType]string{
	BonusDamage:            "DAMAGE",
	BonusAttackSpeed:       "ATTACK_SPEED",
	BonusCritChance:        "CRIT_CHANCE",
	BonusCritDamage:        "CRIT_DAMAGE",
	BonusCooldownReduction: "CDR",
}

var bonusTypeStringToType = map[string]BonusType{
	"DAMAGE":       BonusDamage,
	"ATTACK_SPEED": BonusAttackSpeed,
	"CRIT_CHANCE":  BonusCritChance,
	"CRIT_DAMAGE":  BonusCritDamage,
	"CDR":          BonusCooldownReduction,
}

func (b BonusType) String() string {
	if val, ok := bonusTypeToString[b]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseBonusType(v string) BonusType {
	upper := strings.ToUpper(strings.TrimSpace(v))
	if val, ok := bonusTypeStringToType[upper]; ok {
		return val
	}
	return BonusUnknown
}
