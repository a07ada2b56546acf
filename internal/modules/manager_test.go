package modules

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp/v2"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types"
	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/defs"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
	"github.com/umutterol/hellcrawler-sub001/internal/events"
	"github.com/umutterol/hellcrawler-sub001/pkg/forge"
)

// --- Подставные зависимости ---

type fakeWallet struct {
	gold  int
	level int
}

func (w *fakeWallet) Spend(cost int) bool {
	if w.gold < cost {
		return false
	}
	w.gold -= cost
	return true
}
func (w *fakeWallet) Earn(amount int) { w.gold += amount }
func (w *fakeWallet) Gold() int       { return w.gold }
func (w *fakeWallet) Level() int      { return w.level }

// fakeLauncher считает обращения за снарядами и всегда отвечает
// "пул исчерпан": выстрел наблюдаем, снаряд не нужен.
type fakeLauncher struct {
	acquired int
}

func (l *fakeLauncher) Acquire() *domain.Projectile {
	l.acquired++
	return nil
}

type fakeResolver struct{}

func (fakeResolver) Enemy(types.EntityID) *domain.Enemy { return nil }

type fakeHeal struct{}

func (fakeHeal) Heal(points int) int { return points }
func (fakeHeal) MaxHealth() int      { return 5000 }

type managerFixture struct {
	m        *Manager
	lib      *defs.Library
	bus      *events.Dispatcher
	wallet   *fakeWallet
	launcher *fakeLauncher
	rng      *rand.Rand
}

func newFixture(gold, level int) *managerFixture {
	lib := defs.DefaultLibrary()
	bus := events.NewDispatcher()
	wallet := &fakeWallet{gold: gold, level: level}
	launcher := &fakeLauncher{}
	rng := rand.New(rand.NewSource(7))

	deps := Deps{
		Bus:      bus,
		Launcher: launcher,
		Resolver: fakeResolver{},
		Heal:     fakeHeal{},
		Rng:      rng,
	}
	return &managerFixture{
		m:        NewManager(lib, wallet, deps),
		lib:      lib,
		bus:      bus,
		wallet:   wallet,
		launcher: launcher,
		rng:      rng,
	}
}

func (f *managerFixture) rollItem(t *testing.T, class enums.WeaponClass, rarity enums.Rarity) *domain.ModuleItem {
	t.Helper()
	item, err := forge.RollItem(f.lib, f.rng, class, rarity)
	if err != nil {
		t.Fatalf("RollItem(%v, %v): %v", class, rarity, err)
	}
	return item
}

func (f *managerFixture) addItem(t *testing.T, class enums.WeaponClass, rarity enums.Rarity) *domain.ModuleItem {
	t.Helper()
	item := f.rollItem(t, class, rarity)
	if !f.m.AddItem(item) {
		t.Fatalf("AddItem: inventory rejected item")
	}
	return item
}

func activeEnemy(t *testing.T, bus *events.Dispatcher, x float64, side enums.Side) *domain.Enemy {
	t.Helper()
	e := domain.NewEnemy(bus)
	cfg := domain.EnemyConfig{
		Archetype: "imp",
		Category:  enums.CategoryFodder,
		MaxHealth: 50,
	}
	if err := e.Activate(cp.Vector{X: x, Y: 0}, cfg, side); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	return e
}

// --- Экипировка ---

func TestManager_EquipMovesItemIntoSlot(t *testing.T) {
	f := newFixture(0, 1)
	item := f.addItem(t, enums.WeaponMachineGun, enums.RarityUncommon)

	if err := f.m.Equip(0, item.ID); err != nil {
		t.Fatalf("Equip: %v", err)
	}

	// Предмет живет ровно в одном месте: из инвентаря ушел, в слоте есть.
	if len(f.m.Inventory()) != 0 {
		t.Errorf("inventory size = %d, want 0", len(f.m.Inventory()))
	}
	slot := f.m.Slot(0)
	if slot.Equipped == nil || slot.Equipped.ID != item.ID {
		t.Fatalf("slot 0 equipped = %v, want item %s", slot.Equipped, item.ID)
	}
	mod := f.m.ModuleAt(0)
	if mod == nil {
		t.Fatal("ModuleAt(0) = nil, want live module")
	}
	if mod.Class() != enums.WeaponMachineGun {
		t.Errorf("module class = %v, want MACHINE_GUN", mod.Class())
	}
}

func TestManager_EquipRejections(t *testing.T) {
	f := newFixture(0, 1)
	item := f.addItem(t, enums.WeaponLaser, enums.RarityRare)

	// Слот 2 закрыт с рождения.
	if err := f.m.Equip(2, item.ID); !errors.Is(err, ErrSlotLocked) {
		t.Errorf("Equip into locked slot: err = %v, want ErrSlotLocked", err)
	}
	if err := f.m.Equip(9, item.ID); !errors.Is(err, ErrSlotIndex) {
		t.Errorf("Equip out of range: err = %v, want ErrSlotIndex", err)
	}
	if err := f.m.Equip(0, uuid.New()); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Equip unknown item: err = %v, want ErrItemNotFound", err)
	}

	// Отказы не трогают состояние.
	if len(f.m.Inventory()) != 1 {
		t.Errorf("inventory size after rejections = %d, want 1", len(f.m.Inventory()))
	}
	if f.m.ModuleAt(0) != nil {
		t.Error("ModuleAt(0) != nil after rejected equips")
	}
}

func TestManager_EquipSwapsWhenInventoryFull(t *testing.T) {
	f := newFixture(0, 1)

	first := f.addItem(t, enums.WeaponMachineGun, enums.RarityUncommon)
	if err := f.m.Equip(0, first.ID); err != nil {
		t.Fatalf("Equip first: %v", err)
	}

	// Забиваем инвентарь под завязку.
	var last *domain.ModuleItem
	for len(f.m.Inventory()) < domain.InventoryCap {
		last = f.addItem(t, enums.WeaponCannon, enums.RarityUncommon)
	}

	// Обмен через полный инвентарь обязан пройти: новый предмет
	// изымается раньше, чем старый возвращается на его место.
	if err := f.m.Equip(0, last.ID); err != nil {
		t.Fatalf("Equip swap with full inventory: %v", err)
	}
	if got := f.m.Slot(0).Equipped; got == nil || got.ID != last.ID {
		t.Fatalf("slot 0 equipped = %v, want %s", got, last.ID)
	}
	if len(f.m.Inventory()) != domain.InventoryCap {
		t.Errorf("inventory size = %d, want %d", len(f.m.Inventory()), domain.InventoryCap)
	}
	if f.m.FindItem(first.ID) == nil {
		t.Error("swapped-out item missing from inventory")
	}
	if f.m.FindItem(last.ID) != nil {
		t.Error("equipped item still listed in inventory")
	}

	// А вот снять в полный инвентарь нельзя.
	if err := f.m.Unequip(0); !errors.Is(err, ErrInventoryFull) {
		t.Errorf("Unequip into full inventory: err = %v, want ErrInventoryFull", err)
	}
	if f.m.Slot(0).Equipped == nil {
		t.Error("rejected unequip must keep the slot occupied")
	}
}

func TestManager_UnequipReturnsItem(t *testing.T) {
	f := newFixture(0, 1)
	item := f.addItem(t, enums.WeaponRepairDrone, enums.RarityEpic)
	if err := f.m.Equip(1, item.ID); err != nil {
		t.Fatalf("Equip: %v", err)
	}

	if err := f.m.Unequip(1); err != nil {
		t.Fatalf("Unequip: %v", err)
	}
	if f.m.Slot(1).Equipped != nil {
		t.Error("slot 1 still occupied after unequip")
	}
	if f.m.ModuleAt(1) != nil {
		t.Error("module survived unequip")
	}
	if f.m.FindItem(item.ID) == nil {
		t.Error("item did not return to inventory")
	}

	if err := f.m.Unequip(1); !errors.Is(err, ErrSlotEmpty) {
		t.Errorf("Unequip empty slot: err = %v, want ErrSlotEmpty", err)
	}
}

// --- Экономика ---

func TestManager_UpgradeStatEconomy(t *testing.T) {
	f := newFixture(150, 2)

	// Первый уровень стоит 50, второй 100.
	if err := f.m.UpgradeStat(0, enums.StatDamage); err != nil {
		t.Fatalf("upgrade to level 1: %v", err)
	}
	if f.wallet.Gold() != 100 {
		t.Errorf("gold after first upgrade = %d, want 100", f.wallet.Gold())
	}
	if err := f.m.UpgradeStat(0, enums.StatDamage); err != nil {
		t.Fatalf("upgrade to level 2: %v", err)
	}
	if f.wallet.Gold() != 0 {
		t.Errorf("gold after second upgrade = %d, want 0", f.wallet.Gold())
	}
	if lvl := f.m.Slot(0).Stats.DamageLevel; lvl != 2 {
		t.Errorf("damage level = %d, want 2", lvl)
	}

	// Уровень стата уперся в уровень танка: дальше нельзя даже за деньги.
	f.wallet.Earn(10_000)
	if err := f.m.UpgradeStat(0, enums.StatDamage); !errors.Is(err, ErrStatCapped) {
		t.Errorf("upgrade past tank level: err = %v, want ErrStatCapped", err)
	}

	// Другой стат капом не задет, но у него своя цена с первого уровня.
	if err := f.m.UpgradeStat(0, enums.StatAttackSpeed); err != nil {
		t.Fatalf("upgrade attack speed: %v", err)
	}
	if f.wallet.Gold() != 10_000-50 {
		t.Errorf("gold = %d, want %d", f.wallet.Gold(), 10_000-50)
	}

	if err := f.m.UpgradeStat(2, enums.StatDamage); !errors.Is(err, ErrSlotLocked) {
		t.Errorf("upgrade locked slot: err = %v, want ErrSlotLocked", err)
	}
	if err := f.m.UpgradeStat(0, enums.SlotStat(99)); !errors.Is(err, ErrUnknownStat) {
		t.Errorf("upgrade unknown stat: err = %v, want ErrUnknownStat", err)
	}
}

func TestManager_UpgradeRefreshesLiveModule(t *testing.T) {
	f := newFixture(1000, 30)
	item := f.addItem(t, enums.WeaponMachineGun, enums.RarityUncommon)
	if err := f.m.Equip(0, item.ID); err != nil {
		t.Fatalf("Equip: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := f.m.UpgradeStat(0, enums.StatCooldownReduction); err != nil {
			t.Fatalf("upgrade cdr %d: %v", i, err)
		}
	}
	if lvl := f.m.Slot(0).Stats.CDRLevel; lvl != 3 {
		t.Errorf("cdr level = %d, want 3", lvl)
	}
	// Живой модуль получил свежие множители без переэкипировки:
	// активация скилла дает кулдаун короче табличного.
	mod := f.m.ModuleAt(0)
	if ok := mod.ActivateSkill(0, 0, nil, false); !ok {
		t.Fatal("ActivateSkill: gate rejected a ready skill")
	}
	def, _ := f.lib.Weapon(enums.WeaponMachineGun)
	base := def.Skills[0].CooldownSec * 1000
	if cd := mod.Skills()[0].CooldownRemaining; cd >= base {
		t.Errorf("cooldown = %v, want below base %v after CDR upgrades", cd, base)
	}
}

func TestManager_UnlockSlotGates(t *testing.T) {
	f := newFixture(30_000, 1)

	// Слот 4 открывается только с третьего акта.
	if err := f.m.UnlockSlot(4, 1); !errors.Is(err, ErrSlotGated) {
		t.Errorf("unlock act-gated slot: err = %v, want ErrSlotGated", err)
	}
	if err := f.m.UnlockSlot(4, 3); err != nil {
		t.Fatalf("unlock slot 4 at act 3: %v", err)
	}
	if f.wallet.Gold() != 10_000 {
		t.Errorf("gold after unlock = %d, want 10000", f.wallet.Gold())
	}
	if err := f.m.UnlockSlot(4, 3); !errors.Is(err, ErrSlotUnlocked) {
		t.Errorf("double unlock: err = %v, want ErrSlotUnlocked", err)
	}

	poor := newFixture(999, 1)
	if err := poor.m.UnlockSlot(2, 1); !errors.Is(err, ErrNotEnoughGold) {
		t.Errorf("unlock without gold: err = %v, want ErrNotEnoughGold", err)
	}
	if poor.m.Slot(2).Unlocked {
		t.Error("rejected unlock must keep the slot locked")
	}
	if poor.wallet.Gold() != 999 {
		t.Errorf("rejected unlock must not charge, gold = %d", poor.wallet.Gold())
	}

	if err := f.m.UnlockSlot(7, 3); !errors.Is(err, ErrSlotIndex) {
		t.Errorf("unlock out of range: err = %v, want ErrSlotIndex", err)
	}
}

func TestManager_SellItem(t *testing.T) {
	f := newFixture(0, 1)
	item := f.addItem(t, enums.WeaponMissilePod, enums.RarityRare)

	gold, err := f.m.SellItem(item.ID)
	if err != nil {
		t.Fatalf("SellItem: %v", err)
	}
	// RARE уходит за 75.
	if gold != 75 {
		t.Errorf("sell price = %d, want 75", gold)
	}
	if f.wallet.Gold() != 75 {
		t.Errorf("wallet = %d, want 75", f.wallet.Gold())
	}
	if len(f.m.Inventory()) != 0 {
		t.Errorf("inventory size = %d, want 0", len(f.m.Inventory()))
	}

	if _, err := f.m.SellItem(item.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("double sell: err = %v, want ErrItemNotFound", err)
	}
}

// --- Восстановление профиля ---

func TestManager_SetInventoryTruncatesAtCap(t *testing.T) {
	f := newFixture(0, 1)

	var overflow events.InventoryOverflow
	fired := 0
	f.bus.SubscribeFunc(events.EventInventoryOverflow, func(e events.Event) {
		fired++
		overflow, _ = e.Data.(events.InventoryOverflow)
	})

	// Профиль принес на три предмета больше лимита.
	items := make([]*domain.ModuleItem, 0, domain.InventoryCap+3)
	for i := 0; i < domain.InventoryCap+3; i++ {
		items = append(items, &domain.ModuleItem{
			ID:     uuid.New(),
			Class:  enums.WeaponMachineGun,
			Rarity: enums.RarityUncommon,
		})
	}

	kept, dropped := f.m.SetInventory(items)
	if kept != domain.InventoryCap || dropped != 3 {
		t.Fatalf("SetInventory = (%d, %d), want (%d, 3)", kept, dropped, domain.InventoryCap)
	}
	if len(f.m.Inventory()) != domain.InventoryCap {
		t.Errorf("inventory size = %d, want %d", len(f.m.Inventory()), domain.InventoryCap)
	}
	// Хвост отброшен, голова на месте.
	if f.m.FindItem(items[0].ID) == nil {
		t.Error("first item missing after restore")
	}
	if f.m.FindItem(items[domain.InventoryCap].ID) != nil {
		t.Error("item past the cap survived the restore")
	}
	if fired != 1 || overflow.Dropped != 3 || overflow.Cap != domain.InventoryCap {
		t.Errorf("overflow event: fired %d, payload %+v, want one event with dropped 3", fired, overflow)
	}

	// Ровно лимит проходит тихо.
	kept, dropped = f.m.SetInventory(items[:domain.InventoryCap])
	if kept != domain.InventoryCap || dropped != 0 {
		t.Errorf("SetInventory at cap = (%d, %d), want (%d, 0)", kept, dropped, domain.InventoryCap)
	}
	if fired != 1 {
		t.Errorf("overflow fired on an in-cap restore, count = %d", fired)
	}
}

// --- Боевой кадр ---

func TestManager_UpdateAllRespectsSlotDirection(t *testing.T) {
	f := newFixture(0, 1)
	bus := events.NewDispatcher()

	item := f.addItem(t, enums.WeaponMachineGun, enums.RarityUncommon)
	if err := f.m.Equip(0, item.ID); err != nil {
		t.Fatalf("Equip: %v", err)
	}

	// Слот 0 смотрит вперед и кроет только правый край.
	left := activeEnemy(t, bus, -200, enums.SideLeft)
	right := activeEnemy(t, bus, 200, enums.SideRight)

	f.m.UpdateAll(0, 33.3, []*domain.Enemy{left})
	if f.launcher.acquired != 0 {
		t.Fatalf("front slot fired at a left-side enemy, acquired = %d", f.launcher.acquired)
	}

	f.m.UpdateAll(0, 33.3, []*domain.Enemy{left, right})
	if f.launcher.acquired != 1 {
		t.Fatalf("acquired = %d, want exactly 1 shot at the right-side enemy", f.launcher.acquired)
	}

	// Тыловой слот 1 наоборот: видит левого, игнорирует правого.
	back := f.addItem(t, enums.WeaponMachineGun, enums.RarityUncommon)
	if err := f.m.Equip(1, back.ID); err != nil {
		t.Fatalf("Equip back slot: %v", err)
	}
	before := f.launcher.acquired
	f.m.UpdateAll(0, 33.3, []*domain.Enemy{left, right})
	if got := f.launcher.acquired - before; got != 2 {
		t.Fatalf("both slots with targets in their arcs: %d shots, want 2", got)
	}
}

func TestManager_ToggleAutoRequiresModule(t *testing.T) {
	f := newFixture(0, 1)

	if _, err := f.m.ToggleAuto(0, 0, nil); !errors.Is(err, ErrSlotEmpty) {
		t.Errorf("toggle on empty slot: err = %v, want ErrSlotEmpty", err)
	}

	item := f.addItem(t, enums.WeaponLaser, enums.RarityUncommon)
	if err := f.m.Equip(0, item.ID); err != nil {
		t.Fatalf("Equip: %v", err)
	}

	on, err := f.m.ToggleAuto(0, 0, nil)
	if err != nil || !on {
		t.Fatalf("ToggleAuto = (%v, %v), want (true, nil)", on, err)
	}
	enabled := false
	on, err = f.m.ToggleAuto(0, 0, &enabled)
	if err != nil || !on {
		t.Fatalf("SetAuto(false) = (%v, %v), want (true, nil)", on, err)
	}
	if f.m.ModuleAt(0).Skills()[0].AutoMode {
		t.Error("auto mode still on after explicit disable")
	}
}
