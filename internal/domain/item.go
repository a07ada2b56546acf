package domain

import (
	"github.com/google/uuid"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
)

// StatBonus - один случайный бонус на предмете.
// Value хранится долей: 0.08 означает +8%.
type StatBonus struct {
	Type  enums.BonusType `json:"type"`
	Value float64         `json:"value"`
}

// ModuleItem - выпадающий предмет-модуль.
//
// После генерации неизменяем; меняется только место жизни предмета:
// предмет всегда ровно в одном из {слот, инвентарь, продан}.
// Пара скиллов фиксирована классом оружия и лежит в defs, предмет
// несет только роллы.
type ModuleItem struct {
	ID      uuid.UUID         `json:"id"`
	Class   enums.WeaponClass `json:"class"`
	Rarity  enums.Rarity      `json:"rarity"`
	Bonuses []StatBonus       `json:"bonuses"`
}

// BonusTotal суммирует все роллы данного типа.
func (m *ModuleItem) BonusTotal(t enums.BonusType) float64 {
	var total float64
	for _, b := range m.Bonuses {
		if b.Type == t {
			total += b.Value
		}
	}
	return total
}

// Сокращения для формулы урона.

func (m *ModuleItem) DamageBonus() float64 {
	return m.BonusTotal(enums.BonusDamage)
}

func (m *ModuleItem) AttackSpeedBonus() float64 {
	return m.BonusTotal(enums.BonusAttackSpeed)
}

func (m *ModuleItem) CritChanceBonus() float64 {
	return m.BonusTotal(enums.BonusCritChance)
}

func (m *ModuleItem) CritDamageBonus() float64 {
	return m.BonusTotal(enums.BonusCritDamage)
}

func (m *ModuleItem) CDRBonus() float64 {
	return m.BonusTotal(enums.BonusCooldownReduction)
}

// Clone возвращает глубокую копию предмета.
// Нужен при передаче владения слот <-> инвентарь, чтобы снапшот в
// слоте никогда не алиасился с предметом в инвентаре.
func (m *ModuleItem) Clone() *ModuleItem {
	if m == nil {
		return nil
	}
	c := *m
	c.Bonuses = make([]StatBonus, len(m.Bonuses))
	copy(c.Bonuses, m.Bonuses)
	return &c
}
