package domain

import (
	"github.com/umutterol/hellcrawler-sub001/internal/events"
)

// Tank - обороняемая машина: пул здоровья, уровень и кошелек.
//
// Подсистемам танк целиком не отдается: ремонтному дрону нужен только
// приемник лечения, менеджеру слотов - только кошелек и уровень.
// Соответствующие узкие интерфейсы объявлены у потребителей.
type Tank struct {
	bus *events.Dispatcher

	health    int
	maxHealth int
	level     int
	gold      int
	xp        int
}

func NewTank(bus *events.Dispatcher, maxHealth int) *Tank {
	return &Tank{
		bus:       bus,
		health:    maxHealth,
		maxHealth: maxHealth,
		level:     1,
	}
}

// --- Здоровье ---

// TakeDamage уменьшает здоровье, не опуская его ниже нуля.
// Смерть танка - конец забега, но решает об этом движок, не Tank.
func (t *Tank) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	t.health -= amount
	if t.health < 0 {
		t.health = 0
	}
	t.bus.Emit(events.EventTankDamaged, events.TankDamaged{
		Damage:          amount,
		RemainingHealth: t.health,
		MaxHealth:       t.maxHealth,
	})
}

// Heal применяет целые очки лечения с клампом по максимуму.
// Возвращает фактически примененное количество.
func (t *Tank) Heal(points int) int {
	if points <= 0 || t.health >= t.maxHealth {
		return 0
	}
	applied := points
	if t.health+applied > t.maxHealth {
		applied = t.maxHealth - t.health
	}
	t.health += applied
	t.bus.Emit(events.EventTankHealed, events.TankHealed{
		Points:          applied,
		RemainingHealth: t.health,
		MaxHealth:       t.maxHealth,
	})
	return applied
}

func (t *Tank) Health() int    { return t.health }
func (t *Tank) MaxHealth() int { return t.maxHealth }
func (t *Tank) IsDestroyed() bool {
	return t.health <= 0
}

// --- Экономика ---

// Spend списывает золото, если его хватает. Никаких долгов.
func (t *Tank) Spend(cost int) bool {
	if cost < 0 || t.gold < cost {
		return false
	}
	t.gold -= cost
	return true
}

func (t *Tank) Earn(amount int) {
	if amount > 0 {
		t.gold += amount
	}
}

func (t *Tank) Gold() int { return t.gold }

// --- Прогрессия ---

// GainXP начисляет опыт и поднимает уровень по порогу Level*XPPerLevel.
func (t *Tank) GainXP(amount int) {
	if amount <= 0 {
		return
	}
	t.xp += amount
	for t.xp >= t.level*XPPerLevel {
		t.xp -= t.level * XPPerLevel
		t.level++
	}
}

func (t *Tank) Level() int { return t.level }
func (t *Tank) XP() int    { return t.xp }

// Restore выставляет сохраненную прогрессию в обход начислений.
// Событий не публикует: загрузка профиля - не бой.
func (t *Tank) Restore(level, xp, gold, health, maxHealth int) {
	if maxHealth > 0 {
		t.maxHealth = maxHealth
	}
	if level < 1 {
		level = 1
	}
	t.level = level

	if xp < 0 {
		xp = 0
	}
	t.xp = xp

	if gold < 0 {
		gold = 0
	}
	t.gold = gold

	if health < 0 {
		health = 0
	}
	if health > t.maxHealth {
		health = t.maxHealth
	}
	t.health = health
}
