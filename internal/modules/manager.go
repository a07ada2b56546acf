package modules

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp/v2"
	"github.com/sirupsen/logrus"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/defs"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
	"github.com/umutterol/hellcrawler-sub001/internal/events"
	"github.com/umutterol/hellcrawler-sub001/internal/systems"
	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

// Ошибки операций над слотами и инвентарем. Любая из них означает
// отказ без мутаций.
var (
	ErrSlotIndex     = errors.New("modules: slot index out of range")
	ErrSlotLocked    = errors.New("modules: slot is locked")
	ErrSlotUnlocked  = errors.New("modules: slot already unlocked")
	ErrSlotEmpty     = errors.New("modules: slot is empty")
	ErrSlotGated     = errors.New("modules: slot gated by act")
	ErrItemNotFound  = errors.New("modules: item not in inventory")
	ErrInventoryFull = errors.New("modules: inventory full")
	ErrNotEnoughGold = errors.New("modules: not enough gold")
	ErrStatCapped    = errors.New("modules: stat capped by tank level")
	ErrUnknownStat   = errors.New("modules: unknown stat")
)

// Wallet - кошелек и уровень владельца слотов. Менеджеру не нужен
// весь танк.
type Wallet interface {
	Spend(cost int) bool
	Earn(amount int)
	Gold() int
	Level() int
}

// Manager владеет пятью слотами, инвентарем и активными боевыми
// модулями. Все мутации экипировки и прокачки идут только через него,
// поэтому инварианты "предмет ровно в одном месте" и "модуль жив ровно
// пока предмет в слоте" проверяются здесь и нигде больше.
//
// Менеджер не потокобезопасен: им владеет цикл симуляции.
type Manager struct {
	lib    *defs.Library
	wallet Wallet
	deps   Deps

	slots  [domain.SlotCount]*domain.ModuleSlot
	active [domain.SlotCount]Module

	inventory []*domain.ModuleItem

	log *logrus.Entry
}

// NewManager создает менеджер с пустым инвентарем и дефолтной
// раскладкой слотов (0 и 1 открыты).
func NewManager(lib *defs.Library, wallet Wallet, deps Deps) *Manager {
	m := &Manager{
		lib:    lib,
		wallet: wallet,
		deps:   deps,
		log:    logger.Log.WithField("component", "loadout"),
	}
	for i := 0; i < domain.SlotCount; i++ {
		m.slots[i] = domain.NewSlot(i)
	}
	return m
}

// --- Доступ ---

// Slot возвращает слот по индексу, nil вне диапазона.
func (m *Manager) Slot(index int) *domain.ModuleSlot {
	if index < 0 || index >= domain.SlotCount {
		return nil
	}
	return m.slots[index]
}

// ModuleAt - активный модуль слота, nil если слот пуст.
func (m *Manager) ModuleAt(index int) Module {
	if index < 0 || index >= domain.SlotCount {
		return nil
	}
	return m.active[index]
}

// Inventory - предметы в инвентаре. Срез принадлежит менеджеру,
// вызывающий только читает.
func (m *Manager) Inventory() []*domain.ModuleItem {
	return m.inventory
}

// RefreshLibrary подменяет библиотеку контента после hot-reload.
// Уже созданные модули доигрывают со старыми характеристиками до
// переэкипировки.
func (m *Manager) RefreshLibrary(lib *defs.Library) {
	m.lib = lib
}

// --- Инвентарь ---

// AddItem кладет предмет в инвентарь. false - лимит достигнут,
// предмет потерян (решение о логировании за вызывающим).
func (m *Manager) AddItem(item *domain.ModuleItem) bool {
	if item == nil || len(m.inventory) >= domain.InventoryCap {
		return false
	}
	m.inventory = append(m.inventory, item)
	return true
}

// SetInventory заменяет инвентарь содержимым профиля. Всё сверх
// лимита отбрасывается громко: error-лог и INVENTORY_OVERFLOW.
func (m *Manager) SetInventory(items []*domain.ModuleItem) (kept, dropped int) {
	if len(items) > domain.InventoryCap {
		dropped = len(items) - domain.InventoryCap
		items = items[:domain.InventoryCap]

		m.log.WithFields(logrus.Fields{
			"dropped": dropped,
			"cap":     domain.InventoryCap,
		}).Error("Inventory overflow on restore, items truncated.")
		m.deps.Bus.Emit(events.EventInventoryOverflow, events.InventoryOverflow{
			Dropped: dropped,
			Cap:     domain.InventoryCap,
		})
	}
	m.inventory = append(m.inventory[:0], items...)
	return len(items), dropped
}

// FindItem ищет предмет в инвентаре по ID.
func (m *Manager) FindItem(id uuid.UUID) *domain.ModuleItem {
	idx := m.inventoryIndex(id)
	if idx < 0 {
		return nil
	}
	return m.inventory[idx]
}

func (m *Manager) inventoryIndex(id uuid.UUID) int {
	for i, it := range m.inventory {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) removeInventoryAt(idx int) *domain.ModuleItem {
	it := m.inventory[idx]
	m.inventory = append(m.inventory[:idx], m.inventory[idx+1:]...)
	return it
}

// --- Экипировка ---

// Equip переносит предмет из инвентаря в слот и создает боевой модуль.
// Занятый слот освобождается в инвентарь тем же ходом: операция
// атомарна, промежуточное состояние снаружи не наблюдаемо.
func (m *Manager) Equip(slotIndex int, itemID uuid.UUID) error {
	slot := m.Slot(slotIndex)
	if slot == nil {
		return ErrSlotIndex
	}
	if !slot.Unlocked {
		return ErrSlotLocked
	}
	invIdx := m.inventoryIndex(itemID)
	if invIdx < 0 {
		return ErrItemNotFound
	}
	item := m.inventory[invIdx]

	def, err := m.lib.Weapon(item.Class)
	if err != nil {
		return err
	}

	// Владение переносится клоном, чтобы снапшот в слоте никогда не
	// алиасился с инвентарем.
	clone := item.Clone()
	mod, err := New(def, clone, slotIndex, slot.Direction, mountOrigin(slotIndex), m.slotMults(slot), m.deps)
	if err != nil {
		return err
	}

	// Проверки пройдены - мутируем. Сначала изымаем новый предмет,
	// чтобы обмен никогда не уперся в лимит инвентаря.
	m.removeInventoryAt(invIdx)
	if slot.Equipped != nil {
		m.stow(slot)
	}

	slot.Equipped = clone
	m.active[slotIndex] = mod

	m.log.WithFields(logrus.Fields{
		"slot":   slotIndex,
		"class":  clone.Class.String(),
		"rarity": clone.Rarity.String(),
	}).Info("Module equipped.")
	m.deps.Bus.Emit(events.EventModuleEquipped, events.ModuleEquipped{
		SlotIndex:  slotIndex,
		ModuleID:   clone.ID,
		ModuleType: clone.Class,
	})
	return nil
}

// Unequip снимает предмет из слота в инвентарь и уничтожает модуль.
func (m *Manager) Unequip(slotIndex int) error {
	slot := m.Slot(slotIndex)
	if slot == nil {
		return ErrSlotIndex
	}
	if slot.Equipped == nil {
		return ErrSlotEmpty
	}
	if len(m.inventory) >= domain.InventoryCap {
		return ErrInventoryFull
	}

	m.stow(slot)
	return nil
}

// stow гасит модуль слота и возвращает предмет в инвентарь.
// Вызывающий отвечает за место в инвентаре.
func (m *Manager) stow(slot *domain.ModuleSlot) {
	item := slot.Equipped

	if mod := m.active[slot.Index]; mod != nil {
		mod.Detach()
		m.active[slot.Index] = nil
	}
	slot.Equipped = nil
	m.inventory = append(m.inventory, item.Clone())

	m.log.WithFields(logrus.Fields{
		"slot":  slot.Index,
		"class": item.Class.String(),
	}).Info("Module unequipped.")
	m.deps.Bus.Emit(events.EventModuleUnequipped, events.ModuleUnequipped{
		SlotIndex:  slot.Index,
		ModuleID:   item.ID,
		ModuleType: item.Class,
	})
}

// --- Экономика слотов ---

// UnlockSlot покупает слот. currentAct гейтит поздние слоты по
// прогрессии забега.
func (m *Manager) UnlockSlot(slotIndex, currentAct int) error {
	slot := m.Slot(slotIndex)
	if slot == nil {
		return ErrSlotIndex
	}
	if slot.Unlocked {
		return ErrSlotUnlocked
	}
	if currentAct < m.lib.SlotActGate(slotIndex) {
		return ErrSlotGated
	}
	cost := m.lib.SlotCost(slotIndex)
	if cost < 0 {
		return ErrSlotIndex
	}
	if !m.wallet.Spend(cost) {
		return ErrNotEnoughGold
	}

	slot.Unlocked = true
	m.log.WithFields(logrus.Fields{"slot": slotIndex, "cost": cost}).Info("Slot unlocked.")
	m.deps.Bus.Emit(events.EventSlotUnlocked, events.SlotUnlocked{
		SlotIndex: slotIndex,
		Cost:      cost,
	})
	return nil
}

// UpgradeStat поднимает один стат слота на уровень за золото.
// Уровень стата не может обогнать уровень танка на момент покупки.
func (m *Manager) UpgradeStat(slotIndex int, stat enums.SlotStat) error {
	slot := m.Slot(slotIndex)
	if slot == nil {
		return ErrSlotIndex
	}
	if !slot.Unlocked {
		return ErrSlotLocked
	}
	if stat != enums.StatDamage && stat != enums.StatAttackSpeed && stat != enums.StatCooldownReduction {
		return ErrUnknownStat
	}
	if slot.Stats.Level(stat) >= m.wallet.Level() {
		return ErrStatCapped
	}
	cost := slot.UpgradeCost(stat)
	if !m.wallet.Spend(cost) {
		return ErrNotEnoughGold
	}

	newLevel := slot.Stats.Bump(stat)
	if mod := m.active[slotIndex]; mod != nil {
		mod.RefreshSlot(m.slotMults(slot))
	}

	m.log.WithFields(logrus.Fields{
		"slot":  slotIndex,
		"stat":  stat.String(),
		"level": newLevel,
		"cost":  cost,
	}).Info("Slot stat upgraded.")
	m.deps.Bus.Emit(events.EventSlotStatUpgraded, events.SlotStatUpgraded{
		SlotIndex: slotIndex,
		StatType:  stat,
		NewLevel:  newLevel,
		Cost:      cost,
	})
	return nil
}

// SellItem продает предмет из инвентаря за золото его редкости.
// Экипированный предмет сначала снимается командой UNEQUIP.
func (m *Manager) SellItem(itemID uuid.UUID) (int, error) {
	invIdx := m.inventoryIndex(itemID)
	if invIdx < 0 {
		return 0, ErrItemNotFound
	}
	item := m.inventory[invIdx]

	rdef, err := m.lib.Rarity(item.Rarity)
	if err != nil {
		return 0, err
	}

	m.removeInventoryAt(invIdx)
	m.wallet.Earn(rdef.SellGold)

	m.log.WithFields(logrus.Fields{
		"rarity": item.Rarity.String(),
		"gold":   rdef.SellGold,
	}).Info("Module sold.")
	m.deps.Bus.Emit(events.EventModuleSold, events.ModuleSold{
		ModuleID:   item.ID,
		Rarity:     item.Rarity,
		GoldEarned: rdef.SellGold,
	})
	return rdef.SellGold, nil
}

// --- Боевой кадр ---

// UpdateAll двигает все активные модули в стабильном порядке слотов:
// сперва таймеры и авторежим (Update), затем обычный выстрел (Fire).
// Кандидаты фильтруются направлением слота до передачи модулю.
func (m *Manager) UpdateAll(now, delta float64, enemies []*domain.Enemy) {
	for i := 0; i < domain.SlotCount; i++ {
		mod := m.active[i]
		if mod == nil {
			continue
		}
		candidates := systems.FilterBySide(enemies, m.slots[i].Direction)
		mod.Update(now, delta, candidates)
		mod.Fire(now, candidates)
	}
}

// ActivateSkill вручную запускает скилл модуля слота.
// false - гейт модуля (кулдаун, активность, кривой индекс скилла).
func (m *Manager) ActivateSkill(slotIndex, skillIndex int, now float64, enemies []*domain.Enemy) (bool, error) {
	slot := m.Slot(slotIndex)
	if slot == nil {
		return false, ErrSlotIndex
	}
	mod := m.active[slotIndex]
	if mod == nil {
		return false, ErrSlotEmpty
	}
	candidates := systems.FilterBySide(enemies, slot.Direction)
	return mod.ActivateSkill(skillIndex, now, candidates, false), nil
}

// ToggleAuto переключает или выставляет авторежим скилла.
func (m *Manager) ToggleAuto(slotIndex, skillIndex int, enabled *bool) (bool, error) {
	if m.Slot(slotIndex) == nil {
		return false, ErrSlotIndex
	}
	mod := m.active[slotIndex]
	if mod == nil {
		return false, ErrSlotEmpty
	}
	if enabled != nil {
		return mod.SetAutoMode(skillIndex, *enabled), nil
	}
	return mod.ToggleAutoMode(skillIndex), nil
}

// DetachAll гасит все активные модули. Вызывается при остановке
// забега и перед применением профиля.
func (m *Manager) DetachAll() {
	for i, mod := range m.active {
		if mod != nil {
			mod.Detach()
			m.active[i] = nil
		}
	}
}

// --- Восстановление из профиля ---

// RestoreSlot применяет сохраненное состояние слота в обход экономики:
// разблокировка и уровни выставляются как есть, для предмета создается
// свежий модуль. Текущий модуль слота гасится.
func (m *Manager) RestoreSlot(slotIndex int, unlocked bool, stats domain.SlotStats, equipped *domain.ModuleItem) error {
	slot := m.Slot(slotIndex)
	if slot == nil {
		return ErrSlotIndex
	}

	if mod := m.active[slotIndex]; mod != nil {
		mod.Detach()
		m.active[slotIndex] = nil
	}
	slot.Unlocked = unlocked
	slot.Stats = stats
	slot.Equipped = nil

	if equipped == nil {
		return nil
	}

	def, err := m.lib.Weapon(equipped.Class)
	if err != nil {
		return err
	}
	clone := equipped.Clone()
	mod, err := New(def, clone, slotIndex, slot.Direction, mountOrigin(slotIndex), m.slotMults(slot), m.deps)
	if err != nil {
		return err
	}
	slot.Equipped = clone
	m.active[slotIndex] = mod
	return nil
}

func (m *Manager) slotMults(slot *domain.ModuleSlot) SlotMults {
	return SlotMults{
		Damage:      slot.DamageMult(),
		AttackSpeed: slot.AttackSpeedMult(),
		CDR:         slot.CDRFraction(),
	}
}

// mountOrigin - точка вылета снарядов слота. Маунты разнесены по
// высоте и вынесены к своему борту.
func mountOrigin(index int) cp.Vector {
	y := 24.0 + 12.0*float64(index)
	switch domain.DirectionForIndex(index) {
	case enums.DirectionFront:
		return cp.Vector{X: domain.TankX + 24, Y: y}
	case enums.DirectionBack:
		return cp.Vector{X: domain.TankX - 24, Y: y}
	default:
		return cp.Vector{X: domain.TankX, Y: y}
	}
}
