package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
	"github.com/umutterol/hellcrawler-sub001/internal/models"
	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

// Имя файла профиля по умолчанию внутри каталога сохранений.
const defaultProfileFile = "profile.json"

// snapshotProfile собирает персистентный слепок прогресса забега.
// Поле боя (враги, снаряды, кулдауны) намеренно не сохраняется:
// профиль - это прогрессия, а не пауза.
func snapshotProfile(i *Instance) *models.Profile {
	p := &models.Profile{
		Version: models.ProfileVersion,
		SavedAt: time.Now().Unix(),
		Tank: models.TankState{
			Level:     i.Tank.Level(),
			XP:        i.Tank.XP(),
			Gold:      i.Tank.Gold(),
			Health:    i.Tank.Health(),
			MaxHealth: i.Tank.MaxHealth(),
		},
		Progress: models.Progress{Act: i.act, Zone: i.zone, Wave: i.wave},
	}

	for idx := 0; idx < domain.SlotCount; idx++ {
		slot := i.Manager.Slot(idx)
		if slot == nil {
			continue
		}
		state := models.SlotState{
			Index:    slot.Index,
			Unlocked: slot.Unlocked,
			Stats: models.StatLevels{
				Damage:      slot.Stats.DamageLevel,
				AttackSpeed: slot.Stats.AttackSpeedLevel,
				CDR:         slot.Stats.CDRLevel,
			},
		}
		if slot.Equipped != nil {
			item := toItemState(slot.Equipped)
			state.Equipped = &item
		}
		p.Slots = append(p.Slots, state)
	}

	for _, item := range i.Manager.Inventory() {
		p.Inventory = append(p.Inventory, toItemState(item))
	}

	return p
}

// applyProfile восстанавливает прогресс из слепка: танк, точка
// прогрессии, инвентарь (с громкой обрезкой сверх лимита), слоты с
// пересозданием боевых модулей. Битый предмет - отказ всей загрузки:
// частично примененный профиль хуже, чем несгруженный.
func applyProfile(i *Instance, p *models.Profile) error {
	if p.Version > models.ProfileVersion {
		return fmt.Errorf("profile version %d newer than supported %d", p.Version, models.ProfileVersion)
	}

	items := make([]*domain.ModuleItem, 0, len(p.Inventory))
	for _, state := range p.Inventory {
		item, err := fromItemState(state)
		if err != nil {
			return fmt.Errorf("inventory item %s: %w", state.ID, err)
		}
		items = append(items, item)
	}

	slotItems := make(map[int]*domain.ModuleItem, len(p.Slots))
	for _, state := range p.Slots {
		if state.Equipped == nil {
			continue
		}
		item, err := fromItemState(*state.Equipped)
		if err != nil {
			return fmt.Errorf("slot %d item %s: %w", state.Index, state.Equipped.ID, err)
		}
		slotItems[state.Index] = item
	}

	// Валидация закончена, дальше мутации.
	i.Tank.Restore(p.Tank.Level, p.Tank.XP, p.Tank.Gold, p.Tank.Health, p.Tank.MaxHealth)

	act, zone, wave := p.Progress.Act, p.Progress.Zone, p.Progress.Wave
	if act < 1 {
		act, zone, wave = 1, 1, 1
	}
	if err := i.SetProgress(act, zone, wave); err != nil {
		return err
	}

	if kept, dropped := i.Manager.SetInventory(items); dropped > 0 {
		logger.Log.WithFields(logrus.Fields{
			"kept":    kept,
			"dropped": dropped,
		}).Error("Profile inventory over cap, tail dropped")
	}

	for _, state := range p.Slots {
		stats := domain.SlotStats{
			DamageLevel:      state.Stats.Damage,
			AttackSpeedLevel: state.Stats.AttackSpeed,
			CDRLevel:         state.Stats.CDR,
		}
		if err := i.Manager.RestoreSlot(state.Index, state.Unlocked, stats, slotItems[state.Index]); err != nil {
			return fmt.Errorf("restore slot %d: %w", state.Index, err)
		}
	}

	return nil
}

func toItemState(item *domain.ModuleItem) models.ItemState {
	state := models.ItemState{
		ID:     item.ID.String(),
		Class:  item.Class.String(),
		Rarity: item.Rarity.String(),
	}
	for _, b := range item.Bonuses {
		state.Bonuses = append(state.Bonuses, models.BonusState{
			Type:  b.Type.String(),
			Value: b.Value,
		})
	}
	return state
}

func fromItemState(state models.ItemState) (*domain.ModuleItem, error) {
	id, err := uuid.Parse(state.ID)
	if err != nil {
		return nil, fmt.Errorf("bad item id: %w", err)
	}

	class := enums.ParseWeaponClass(state.Class)
	if class == enums.WeaponUnknown {
		return nil, fmt.Errorf("unknown weapon class %q", state.Class)
	}

	item := &domain.ModuleItem{
		ID:     id,
		Class:  class,
		Rarity: enums.ParseRarity(state.Rarity),
	}
	for _, b := range state.Bonuses {
		bonusType := enums.ParseBonusType(b.Type)
		if bonusType == enums.BonusUnknown {
			return nil, fmt.Errorf("unknown bonus type %q", b.Type)
		}
		item.Bonuses = append(item.Bonuses, domain.StatBonus{Type: bonusType, Value: b.Value})
	}
	return item, nil
}

// --- handlers.Runner: персистентность ---

func (i *Instance) SaveProfile(path string) error {
	if path == "" {
		path = defaultProfileFile
	}
	return i.Service.Profiles.Save(path, snapshotProfile(i))
}

func (i *Instance) LoadProfile(path string) error {
	if path == "" {
		path = defaultProfileFile
	}
	p, err := i.Service.Profiles.Load(path)
	if err != nil {
		return err
	}
	return applyProfile(i, p)
}

// --- Реплей ---

// encodeKeyframe - msgpack-слепок профиля на момент старта записи.
// Плеер реплея применяет его до прокрутки ленты действий.
func (i *Instance) encodeKeyframe() ([]byte, error) {
	return msgpack.Marshal(snapshotProfile(i))
}

func decodeKeyframe(raw []byte) (*models.Profile, error) {
	var p models.Profile
	if err := msgpack.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode keyframe: %w", err)
	}
	return &p, nil
}
