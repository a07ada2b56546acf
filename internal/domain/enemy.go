package domain

import (
	"context"
	"math"

	"github.com/jakecoffman/cp/v2"
	"github.com/looplab/fsm"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types"
	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/events"
)

// Состояния жизненного цикла врага.
const (
	EnemyStateInactive = "inactive"
	EnemyStateActive   = "active"
	EnemyStateDying    = "dying"
)

// EnemyConfig - снапшот характеристик врага, уже отмасштабированный
// под act/zone/wave на момент спавна. После Activate не меняется.
type EnemyConfig struct {
	Archetype        string         `json:"archetype"`
	Category         enums.Category `json:"category"`
	MaxHealth        int            `json:"max_health"`
	Damage           int            `json:"damage"`
	Speed            float64        `json:"speed"`
	AttackRange      float64        `json:"attack_range"`
	AttackCooldownMs float64        `json:"attack_cooldown_ms"`
	XPReward         int            `json:"xp_reward"`
	GoldReward       int            `json:"gold_reward"`
	Scale            float64        `json:"scale"`
}

// Enemy - пулируемая боевая цель.
//
// Создается один раз при инициализации пула и дальше только
// переиспользуется: Activate сбрасывает всё изменяемое состояние.
// Жизненный цикл: inactive -> active -> dying -> inactive.
type Enemy struct {
	id  types.EntityID
	fsm *fsm.FSM
	bus *events.Dispatcher

	Pos  cp.Vector
	Side enums.Side

	cfg       EnemyConfig
	health    int
	maxHealth int

	lastAttackAt float64

	slowFactors []float64
}

// NewEnemy - фабрика для пула. Сущность рождается неактивной.
func NewEnemy(bus *events.Dispatcher) *Enemy {
	return &Enemy{
		bus: bus,
		fsm: fsm.NewFSM(
			EnemyStateInactive,
			fsm.Events{
				{Name: "activate", Src: []string{EnemyStateInactive}, Dst: EnemyStateActive},
				{Name: "kill", Src: []string{EnemyStateActive}, Dst: EnemyStateDying},
				{Name: "settle", Src: []string{EnemyStateActive, EnemyStateDying}, Dst: EnemyStateInactive},
			},
			fsm.Callbacks{},
		),
	}
}

// --- Poolable ---

func (e *Enemy) Bind(id types.EntityID) { e.id = id }
func (e *Enemy) ID() types.EntityID     { return e.id }

// OnRelease - хук арены при возврате в пул.
func (e *Enemy) OnRelease() {
	if e.fsm.Current() != EnemyStateInactive {
		_ = e.fsm.Event(context.Background(), "settle")
	}
	e.slowFactors = nil
}

// --- Жизненный цикл ---

// Activate сбрасывает все изменяемые поля и вводит врага в бой.
func (e *Enemy) Activate(pos cp.Vector, cfg EnemyConfig, side enums.Side) error {
	if err := e.fsm.Event(context.Background(), "activate"); err != nil {
		return err
	}

	e.Pos = pos
	e.Side = side
	e.cfg = cfg
	e.health = cfg.MaxHealth
	e.maxHealth = cfg.MaxHealth
	// Первая атака проходит сразу, дальше гейт по кулдауну.
	e.lastAttackAt = math.Inf(-1)
	e.slowFactors = e.slowFactors[:0]
	return nil
}

// Alive: враг активен и может получать урон и атаковать.
func (e *Enemy) Alive() bool {
	return e.fsm.Current() == EnemyStateActive
}

// IsDying: смерть уже состоялась, ждем возврата в пул.
func (e *Enemy) IsDying() bool {
	return e.fsm.Current() == EnemyStateDying
}

// State - текущее состояние FSM (для дебаг-дампов).
func (e *Enemy) State() string {
	return e.fsm.Current()
}

// --- Бой ---

// TakeDamage мутирует здоровье и публикует DAMAGE_DEALT.
// Переход в dying происходит ровно один раз: повторные вызовы на
// умирающем враге - no-op. Возвращает true, если этот вызов убил.
func (e *Enemy) TakeDamage(amount int, isCrit bool) bool {
	if !e.Alive() {
		return false
	}
	if amount < 0 {
		amount = 0
	}

	e.health -= amount
	if e.health < 0 {
		e.health = 0
	}

	e.bus.Emit(events.EventDamageDealt, events.DamageDealt{
		TargetID:        e.id,
		Damage:          amount,
		IsCrit:          isCrit,
		RemainingHealth: e.health,
		MaxHealth:       e.maxHealth,
	})

	if e.health == 0 {
		e.die()
		return true
	}
	return false
}

// die публикует ENEMY_DIED синхронно, до любых презентационных задержек.
// Возврат в пул - забота владельца (отложенный таймер).
func (e *Enemy) die() {
	_ = e.fsm.Event(context.Background(), "kill")

	e.bus.Emit(events.EventEnemyDied, events.EnemyDied{
		EnemyID:     e.id,
		EnemyType:   e.cfg.Archetype,
		XPAwarded:   e.cfg.XPReward,
		GoldAwarded: e.cfg.GoldReward,
	})
}

// Attack возвращает урон по танку, если кулдаун атаки истек, иначе 0
// без побочных эффектов. Это единственный гейт от серии атак внутри
// окна кулдауна.
func (e *Enemy) Attack(now float64) int {
	if !e.Alive() {
		return 0
	}
	if now-e.lastAttackAt < e.cfg.AttackCooldownMs {
		return 0
	}
	e.lastAttackAt = now
	return e.cfg.Damage
}

// --- Статус-эффекты ---

// ApplySlow добавляет множитель скорости (<1). Снимается парным
// RemoveSlow при завершении скилла, наложившего эффект.
func (e *Enemy) ApplySlow(factor float64) {
	if factor <= 0 || factor >= 1 {
		return
	}
	e.slowFactors = append(e.slowFactors, factor)
}

// RemoveSlow убирает один экземпляр ранее наложенного множителя.
func (e *Enemy) RemoveSlow(factor float64) {
	for i, f := range e.slowFactors {
		if f == factor {
			e.slowFactors = append(e.slowFactors[:i], e.slowFactors[i+1:]...)
			return
		}
	}
}

// EffectiveSpeed - скорость с учетом всех активных замедлений.
func (e *Enemy) EffectiveSpeed() float64 {
	speed := e.cfg.Speed
	for _, f := range e.slowFactors {
		speed *= f
	}
	return speed
}

// --- Доступ для презентации и систем ---

func (e *Enemy) Health() int          { return e.health }
func (e *Enemy) MaxHealth() int       { return e.maxHealth }
func (e *Enemy) Config() EnemyConfig  { return e.cfg }
func (e *Enemy) Archetype() string    { return e.cfg.Archetype }
func (e *Enemy) Category() enums.Category { return e.cfg.Category }
