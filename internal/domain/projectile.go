package domain

import (
	"context"

	"github.com/jakecoffman/cp/v2"
	"github.com/looplab/fsm"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types"
	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
)

// Состояния жизненного цикла снаряда.
const (
	ProjectileStateInactive = "inactive"
	ProjectileStateFlying   = "flying"
	ProjectileStateHit      = "hit"
	ProjectileStateExpired  = "expired"
)

// LaunchParams - полная настройка снаряда на один вылет.
type LaunchParams struct {
	Kind      enums.ProjectileKind
	From      cp.Vector
	Velocity  cp.Vector
	Damage    int
	IsCrit    bool
	Piercing  bool
	AoERadius float64 // 0 = одиночная цель
	Homing    types.EntityID
	Arcing    bool // навесная траектория: гравитация, резолв при падении
	Lifetime  float64
	SlotIndex int
}

// Projectile - пулируемый снаряд.
//
// Жизненный цикл: inactive -> flying -> (hit | expired) -> inactive.
// Истечение по времени или выход за границы поля урона не наносит.
// Непробивающий снаряд резолвится максимум один раз; пробивающий ведет
// набор уже задетых врагов и каждого бьет не более одного раза.
type Projectile struct {
	id  types.EntityID
	fsm *fsm.FSM

	Kind      enums.ProjectileKind
	Pos       cp.Vector
	Vel       cp.Vector
	Damage    int
	IsCrit    bool
	Piercing  bool
	AoERadius float64
	Homing    types.EntityID
	Arcing    bool
	SlotIndex int

	lifetimeMs float64
	hitSet     map[types.EntityID]struct{}
}

// NewProjectile - фабрика для пула.
func NewProjectile() *Projectile {
	return &Projectile{
		fsm: fsm.NewFSM(
			ProjectileStateInactive,
			fsm.Events{
				{Name: "launch", Src: []string{ProjectileStateInactive}, Dst: ProjectileStateFlying},
				{Name: "hit", Src: []string{ProjectileStateFlying}, Dst: ProjectileStateHit},
				{Name: "expire", Src: []string{ProjectileStateFlying}, Dst: ProjectileStateExpired},
				{Name: "settle", Src: []string{ProjectileStateFlying, ProjectileStateHit, ProjectileStateExpired}, Dst: ProjectileStateInactive},
			},
			fsm.Callbacks{},
		),
	}
}

// --- Poolable ---

func (p *Projectile) Bind(id types.EntityID) { p.id = id }
func (p *Projectile) ID() types.EntityID     { return p.id }

func (p *Projectile) OnRelease() {
	if p.fsm.Current() != ProjectileStateInactive {
		_ = p.fsm.Event(context.Background(), "settle")
	}
	p.hitSet = nil
	p.Homing = types.NilEntityID
}

// --- Жизненный цикл ---

func (p *Projectile) Launch(params LaunchParams) error {
	if err := p.fsm.Event(context.Background(), "launch"); err != nil {
		return err
	}

	p.Kind = params.Kind
	p.Pos = params.From
	p.Vel = params.Velocity
	p.Damage = params.Damage
	p.IsCrit = params.IsCrit
	p.Piercing = params.Piercing
	p.AoERadius = params.AoERadius
	p.Homing = params.Homing
	p.Arcing = params.Arcing
	p.SlotIndex = params.SlotIndex
	p.lifetimeMs = params.Lifetime

	if params.Piercing {
		p.hitSet = make(map[types.EntityID]struct{})
	} else {
		p.hitSet = nil
	}
	return nil
}

func (p *Projectile) InFlight() bool {
	return p.fsm.Current() == ProjectileStateFlying
}

func (p *Projectile) State() string {
	return p.fsm.Current()
}

// Advance интегрирует позицию и срок жизни. Возвращает true, пока
// снаряд еще жив по времени; false - пора гасить без урона.
func (p *Projectile) Advance(deltaMs float64) bool {
	if !p.InFlight() {
		return false
	}

	dt := deltaMs / 1000.0
	if p.Arcing {
		p.Vel.Y -= ArcGravity * dt
	}
	p.Pos = p.Pos.Add(p.Vel.Mult(dt))

	p.lifetimeMs -= deltaMs
	return p.lifetimeMs > 0
}

// ResolveHit переводит снаряд в hit. Для непробивающих это конец полета.
func (p *Projectile) ResolveHit() {
	_ = p.fsm.Event(context.Background(), "hit")
}

// Expire гасит снаряд без урона (время вышло или вылетел за поле).
func (p *Projectile) Expire() {
	_ = p.fsm.Event(context.Background(), "expire")
}

// --- Пробитие ---

// HasHit: этот враг уже задет данным снарядом.
func (p *Projectile) HasHit(id types.EntityID) bool {
	if p.hitSet == nil {
		return false
	}
	_, ok := p.hitSet[id]
	return ok
}

// MarkHit фиксирует врага в наборе задетых.
func (p *Projectile) MarkHit(id types.EntityID) {
	if p.hitSet == nil {
		p.hitSet = make(map[types.EntityID]struct{})
	}
	p.hitSet[id] = struct{}{}
}

// HitGround: навесной снаряд достиг земли - точка резолва AoE.
func (p *Projectile) HitGround() bool {
	return p.Arcing && p.Pos.Y <= GroundY && p.Vel.Y < 0
}
