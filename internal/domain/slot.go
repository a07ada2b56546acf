package domain

import (
	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
)

// SlotStats - независимые уровни прокачки слота.
// Каждый уровень дает +1% к своему показателю, без верхнего капа
// кроме ограничения уровнем танка на момент апгрейда.
type SlotStats struct {
	DamageLevel      int `json:"damage_level"`
	AttackSpeedLevel int `json:"attack_speed_level"`
	CDRLevel         int `json:"cdr_level"`
}

// Level возвращает уровень конкретного стата.
func (s SlotStats) Level(stat enums.SlotStat) int {
	switch stat {
	case enums.StatDamage:
		return s.DamageLevel
	case enums.StatAttackSpeed:
		return s.AttackSpeedLevel
	case enums.StatCooldownReduction:
		return s.CDRLevel
	}
	return 0
}

// Bump поднимает уровень стата на единицу и возвращает новый уровень.
func (s *SlotStats) Bump(stat enums.SlotStat) int {
	switch stat {
	case enums.StatDamage:
		s.DamageLevel++
		return s.DamageLevel
	case enums.StatAttackSpeed:
		s.AttackSpeedLevel++
		return s.AttackSpeedLevel
	case enums.StatCooldownReduction:
		s.CDRLevel++
		return s.CDRLevel
	}
	return 0
}

// ModuleSlot - один из пяти фиксированных маунтов танка.
//
// Направление стрельбы жестко задано индексом и не меняется.
// Слот владеет снапшотом экипированного предмета: equip/unequip
// переносят владение явно, предмет не живет в двух местах сразу.
type ModuleSlot struct {
	Index     int             `json:"index"`
	Unlocked  bool            `json:"unlocked"`
	Direction enums.Direction `json:"direction"`
	Stats     SlotStats       `json:"stats"`
	Equipped  *ModuleItem     `json:"equipped,omitempty"`
}

// DirectionForIndex - фиксированная раскладка направлений:
// 0 и 2 смотрят вперед, 1 и 3 назад, 4 кроет обе стороны.
func DirectionForIndex(index int) enums.Direction {
	switch index {
	case 0, 2:
		return enums.DirectionFront
	case 1, 3:
		return enums.DirectionBack
	case 4:
		return enums.DirectionBoth
	}
	return enums.DirectionFront
}

// NewSlot создает слот. Первые два (фронт и тыл) открыты изначально,
// остальные три покупаются.
func NewSlot(index int) *ModuleSlot {
	return &ModuleSlot{
		Index:     index,
		Unlocked:  index < 2,
		Direction: DirectionForIndex(index),
	}
}

// Множители, которые слот добавляет модулю. Читаются модулем как
// снапшот при каждом пересчете, слот мутируется только менеджером.

// DamageMult: 1 + уровень * 1%.
func (s *ModuleSlot) DamageMult() float64 {
	return 1.0 + float64(s.Stats.DamageLevel)*0.01
}

// AttackSpeedMult: 1 + уровень * 1%.
func (s *ModuleSlot) AttackSpeedMult() float64 {
	return 1.0 + float64(s.Stats.AttackSpeedLevel)*0.01
}

// CDRFraction: доля среза кулдауна, уровень * 1%.
func (s *ModuleSlot) CDRFraction() float64 {
	return float64(s.Stats.CDRLevel) * 0.01
}

// UpgradeCost - цена апгрейда стата с текущего уровня на следующий.
func (s *ModuleSlot) UpgradeCost(stat enums.SlotStat) int {
	return (s.Stats.Level(stat) + 1) * UpgradeCostBase
}

// IsOccupied: в слоте есть предмет.
func (s *ModuleSlot) IsOccupied() bool {
	return s.Equipped != nil
}
