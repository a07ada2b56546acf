package domain

import (
	"testing"

	"github.com/google/uuid"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
)

func TestModuleItem_BonusTotals(t *testing.T) {
	item := &ModuleItem{
		ID:     uuid.New(),
		Class:  enums.WeaponMachineGun,
		Rarity: enums.RarityRare,
		Bonuses: []StatBonus{
			{Type: enums.BonusDamage, Value: 0.10},
			{Type: enums.BonusDamage, Value: 0.05},
			{Type: enums.BonusCritChance, Value: 0.03},
		},
	}

	// Одноименные бонусы суммируются.
	if got := item.DamageBonus(); got != 0.15 {
		t.Errorf("DamageBonus = %v, want 0.15", got)
	}
	if got := item.CritChanceBonus(); got != 0.03 {
		t.Errorf("CritChanceBonus = %v, want 0.03", got)
	}
	// Отсутствующий бонус - ноль, не ошибка.
	if got := item.CDRBonus(); got != 0 {
		t.Errorf("CDRBonus = %v, want 0", got)
	}
}

func TestModuleItem_CloneDoesNotAlias(t *testing.T) {
	orig := &ModuleItem{
		ID:     uuid.New(),
		Class:  enums.WeaponMissilePod,
		Rarity: enums.RarityEpic,
		Bonuses: []StatBonus{
			{Type: enums.BonusDamage, Value: 0.2},
		},
	}

	dup := orig.Clone()
	if dup == orig {
		t.Fatal("Clone returned the same pointer")
	}
	if dup.ID != orig.ID {
		t.Error("Clone must keep item identity")
	}

	// Мутация копии не просачивается в оригинал.
	dup.Bonuses[0].Value = 0.99
	if orig.Bonuses[0].Value != 0.2 {
		t.Errorf("original bonus mutated through clone: %v", orig.Bonuses[0].Value)
	}
}
