package modules

import (
	"math"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
	"github.com/umutterol/hellcrawler-sub001/internal/systems"
)

// Laser - мгновенный пробивающий луч. Урон резолвится в кадре выстрела
// всем живым кандидатам в пределах дальности, каждому один раз. Снаряд
// всё равно берется из пула: реплей и счетчики видят луч как обычный
// выстрел с моментальным погасанием.
//
// Скилл 0 "Overcharge": урон ×Magnitude на время действия.
// Скилл 1 "Focus Lens": +Magnitude к шансу крита на время действия.
type Laser struct {
	*core
}

func newLaser(base *core) *Laser {
	l := &Laser{core: base}
	base.self = l
	return l
}

func (l *Laser) Update(now, delta float64, candidates []*domain.Enemy) {
	l.updateSkills(now, delta, candidates)
}

func (l *Laser) Fire(now float64, candidates []*domain.Enemy) bool {
	if !l.canFire(now) {
		return false
	}
	targets := l.inBeam(candidates)
	if len(targets) == 0 {
		return false
	}

	proj := l.deps.Launcher.Acquire()
	if proj == nil {
		return false
	}

	// Один бросок урона и крита на весь луч: задетые получают поровну.
	damage, isCrit := l.calculateDamage(false)
	err := proj.Launch(domain.LaunchParams{
		Kind:      enums.ProjectileBeam,
		From:      l.origin,
		Velocity:  l.straightVelocity(targets[0].Pos),
		Damage:    damage,
		IsCrit:    isCrit,
		Piercing:  true,
		Lifetime:  l.def.ProjectileLifeMs,
		SlotIndex: l.slotIndex,
	})
	if err != nil {
		return false
	}

	for _, e := range targets {
		proj.MarkHit(e.ID())
		systems.ApplyDamage(e, damage, isCrit)
	}
	proj.Expire()

	l.lastFireAt = now
	return true
}

// inBeam - живые кандидаты в пределах дальности по горизонтали.
// Направление уже отфильтровано менеджером слотов.
func (l *Laser) inBeam(candidates []*domain.Enemy) []*domain.Enemy {
	out := candidates[:0:0]
	for _, e := range candidates {
		if !e.Alive() {
			continue
		}
		if math.Abs(e.Pos.X-l.origin.X) <= l.def.Range {
			out = append(out, e)
		}
	}
	return out
}

func (l *Laser) onSkillActivate(idx int, _ float64, _ []*domain.Enemy, _ bool) {
	switch idx {
	case 0: // Overcharge
		l.damageMult = l.skills[idx].def.Magnitude
	case 1: // Focus Lens
		l.critChanceAdd = l.skills[idx].def.Magnitude
	}
}

func (l *Laser) onSkillEnd(idx int, _ []*domain.Enemy) {
	switch idx {
	case 0:
		l.damageMult = 1
	case 1:
		l.critChanceAdd = 0
	}
}

func (l *Laser) Detach() {
	l.damageMult = 1
	l.critChanceAdd = 0
}
