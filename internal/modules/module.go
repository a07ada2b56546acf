package modules

import (
	"fmt"

	"github.com/jakecoffman/cp/v2"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types"
	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/defs"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
	"github.com/umutterol/hellcrawler-sub001/internal/events"
)

// Module - боевой автомат экипированного предмета.
//
// Закрытый набор вариантов по WeaponClass. Общая математика урона и
// кулдаунов живет в композитном core, варианты добавляют поведение
// выстрела и эффектов скиллов. Порядок вызовов на кадр фиксирован
// менеджером: Update (кулдауны, авторежим, внутренние циклы), затем
// Fire. Кандидаты уже отфильтрованы по направлению слота.
type Module interface {
	Class() enums.WeaponClass
	Item() *domain.ModuleItem

	// Update двигает таймеры скиллов и внутренние циклы варианта.
	Update(now, delta float64, candidates []*domain.Enemy)

	// Fire пытается выстрелить по обычному ритму. false - гейт по
	// кулдауну, пустой список целей или исчерпанный пул снарядов.
	Fire(now float64, candidates []*domain.Enemy) bool

	// ActivateSkill запускает скилл. false без мутаций на кривом
	// индексе, активном скилле или недобитом кулдауне.
	ActivateSkill(idx int, now float64, candidates []*domain.Enemy, auto bool) bool

	// Переключатели авторежима. Сами скилл не запускают.
	ToggleAutoMode(idx int) bool
	SetAutoMode(idx int, enabled bool) bool

	// RefreshSlot подменяет снапшот множителей слота после апгрейда.
	RefreshSlot(m SlotMults)

	// Skills - копия состояния скиллов для DTO и дебага.
	Skills() []SkillView

	// Detach снимает наложенные модулем эффекты. Вызывается менеджером
	// перед уничтожением модуля при unequip.
	Detach()
}

// SlotMults - read-only снапшот множителей слота. Модуль не видит сам
// слот: менеджер выдает свежий снапшот после каждого апгрейда.
type SlotMults struct {
	Damage      float64 // 1 + уровень*0.01
	AttackSpeed float64 // 1 + уровень*0.01
	CDR         float64 // доля среза кулдауна, уровень*0.01
}

// NeutralSlotMults - множители непрокачанного слота.
func NeutralSlotMults() SlotMults {
	return SlotMults{Damage: 1, AttackSpeed: 1, CDR: 0}
}

// SkillView - снимок состояния одного скилла.
type SkillView struct {
	Name              string  `json:"name"`
	CooldownRemaining float64 `json:"cooldown_remaining_ms"`
	ActiveRemaining   float64 `json:"active_remaining_ms"`
	Active            bool    `json:"active"`
	AutoMode          bool    `json:"auto_mode"`
}

// RollSource - источник случайности боевой математики. В бою это
// *rand.Rand забега, в тестах - фиксированная последовательность.
type RollSource interface {
	Float64() float64
}

// Launcher выдает снаряд из пула. nil означает "пул исчерпан,
// пропустить выстрел" - это штатная деградация, не ошибка.
type Launcher interface {
	Acquire() *domain.Projectile
}

// EnemyResolver разыменовывает id врага. Протухшие id (враг умер и
// вернулся в пул) дают nil.
type EnemyResolver interface {
	Enemy(id types.EntityID) *domain.Enemy
}

// HealSink - узкая способность "принять лечение". Дрону не нужен
// весь танк.
type HealSink interface {
	Heal(points int) int
	MaxHealth() int
}

// Deps - внешние зависимости модуля, неизменные на время экипировки.
type Deps struct {
	Bus      *events.Dispatcher
	Launcher Launcher
	Resolver EnemyResolver
	Heal     HealSink
	Rng      RollSource
}

// New создает боевой модуль для предмета. Неизвестный класс - ошибка
// конфигурации: вызывающий логирует и отказывает без мутаций.
func New(def defs.WeaponDef, item *domain.ModuleItem, slotIndex int, dir enums.Direction, origin cp.Vector, mults SlotMults, deps Deps) (Module, error) {
	if item == nil {
		return nil, fmt.Errorf("modules: nil item for slot %d", slotIndex)
	}

	base := newCore(def, item, slotIndex, dir, origin, mults, deps)

	switch item.Class {
	case enums.WeaponMachineGun:
		return newMachineGun(base), nil
	case enums.WeaponMissilePod:
		return newMissilePod(base), nil
	case enums.WeaponRepairDrone:
		return newRepairDrone(base), nil
	case enums.WeaponLaser:
		return newLaser(base), nil
	case enums.WeaponCannon:
		return newCannon(base), nil
	default:
		return nil, fmt.Errorf("modules: unknown weapon class %v", item.Class)
	}
}
