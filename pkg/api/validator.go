package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO.
// Проверяется автоматически при распаковке payload'а команды.
type Validator interface {
	Validate() error
}

// Слотов ровно пять; здесь дублируем число, чтобы пакет оставался
// чистым от доменных импортов - это граница wire-формата.
const slotCount = 5

func validSlotIndex(idx int) error {
	if idx < 0 || idx >= slotCount {
		return errors.New("slot_index out of range")
	}
	return nil
}

func (p SpawnEnemyPayload) Validate() error {
	if p.Archetype == "" {
		return errors.New("archetype is required")
	}
	if p.Count < 0 {
		return errors.New("count cannot be negative")
	}
	return nil
}

func (p SpawnWavePayload) Validate() error {
	if p.Act < 0 || p.Zone < 0 || p.Wave < 0 {
		return errors.New("progression point cannot be negative")
	}
	return nil
}

func (p EquipPayload) Validate() error {
	if err := validSlotIndex(p.SlotIndex); err != nil {
		return err
	}
	if p.ItemID == "" {
		return errors.New("item_id is required")
	}
	return nil
}

func (p UnequipPayload) Validate() error {
	return validSlotIndex(p.SlotIndex)
}

func (p UpgradeStatPayload) Validate() error {
	if err := validSlotIndex(p.SlotIndex); err != nil {
		return err
	}
	if p.Stat == "" {
		return errors.New("stat is required")
	}
	return nil
}

func (p UnlockSlotPayload) Validate() error {
	return validSlotIndex(p.SlotIndex)
}

func (p SellItemPayload) Validate() error {
	if p.ItemID == "" {
		return errors.New("item_id is required")
	}
	return nil
}

func (p SkillPayload) Validate() error {
	if err := validSlotIndex(p.SlotIndex); err != nil {
		return err
	}
	if p.SkillIndex < 0 {
		return errors.New("skill_index cannot be negative")
	}
	return nil
}

func (p ToggleAutoPayload) Validate() error {
	if err := validSlotIndex(p.SlotIndex); err != nil {
		return err
	}
	if p.SkillIndex < 0 {
		return errors.New("skill_index cannot be negative")
	}
	return nil
}

func (p CheatPayload) Validate() error {
	if p.Gold < 0 || p.XP < 0 || p.Act < 0 {
		return errors.New("cheat values cannot be negative")
	}
	return nil
}
