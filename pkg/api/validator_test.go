package api

import "testing"

func TestValidSlotIndexBounds(t *testing.T) {
	// Пять маунтов, индексы 0..4. Все, что вне, - отказ до симуляции.
	cases := []struct {
		idx int
		ok  bool
	}{
		{-1, false},
		{0, true},
		{4, true},
		{5, false},
		{99, false},
	}
	for _, c := range cases {
		err := UnequipPayload{SlotIndex: c.idx}.Validate()
		if c.ok && err != nil {
			t.Errorf("slot %d: unexpected error: %v", c.idx, err)
		}
		if !c.ok && err == nil {
			t.Errorf("slot %d: want error, got nil", c.idx)
		}
	}
}

func TestPayloadValidation(t *testing.T) {
	cases := []struct {
		name string
		p    Validator
		ok   bool
	}{
		{"spawn enemy ok", SpawnEnemyPayload{Archetype: "imp"}, true},
		{"spawn enemy no archetype", SpawnEnemyPayload{}, false},
		{"spawn enemy negative count", SpawnEnemyPayload{Archetype: "imp", Count: -1}, false},

		{"spawn wave defaults", SpawnWavePayload{}, true},
		{"spawn wave explicit point", SpawnWavePayload{Act: 2, Zone: 1, Wave: 3}, true},
		{"spawn wave negative", SpawnWavePayload{Wave: -2}, false},

		{"equip ok", EquipPayload{SlotIndex: 1, ItemID: "itm"}, true},
		{"equip no item", EquipPayload{SlotIndex: 1}, false},
		{"equip bad slot", EquipPayload{SlotIndex: 7, ItemID: "itm"}, false},

		{"upgrade ok", UpgradeStatPayload{SlotIndex: 0, Stat: "DAMAGE"}, true},
		{"upgrade no stat", UpgradeStatPayload{SlotIndex: 0}, false},

		{"unlock edge slot", UnlockSlotPayload{SlotIndex: 4}, true},
		{"unlock out of range", UnlockSlotPayload{SlotIndex: 5}, false},

		{"sell ok", SellItemPayload{ItemID: "itm"}, true},
		{"sell empty", SellItemPayload{}, false},

		{"skill ok", SkillPayload{SlotIndex: 2, SkillIndex: 0}, true},
		{"skill negative index", SkillPayload{SlotIndex: 2, SkillIndex: -1}, false},

		{"toggle ok", ToggleAutoPayload{SlotIndex: 0, SkillIndex: 1}, true},
		{"toggle bad slot", ToggleAutoPayload{SlotIndex: -3}, false},

		{"cheat ok", CheatPayload{Gold: 100, Heal: true}, true},
		{"cheat negative gold", CheatPayload{Gold: -5}, false},
		{"cheat negative act", CheatPayload{Act: -1}, false},
	}
	for _, c := range cases {
		err := c.p.Validate()
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%s: want validation error, got nil", c.name)
		}
	}
}
