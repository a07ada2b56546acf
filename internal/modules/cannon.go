package modules

import (
	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
)

// Cannon - медленный тяжелый снаряд по навесной траектории,
// большой радиус взрыва.
//
// Скилл 0 "Siege Mode": урон ×Magnitude на время действия.
// Скилл 1 "Shrapnel Shell": радиус взрыва ×Magnitude на время действия.
type Cannon struct {
	*core
}

func newCannon(base *core) *Cannon {
	g := &Cannon{core: base}
	base.self = g
	return g
}

func (g *Cannon) Update(now, delta float64, candidates []*domain.Enemy) {
	g.updateSkills(now, delta, candidates)
}

func (g *Cannon) Fire(now float64, candidates []*domain.Enemy) bool {
	target := g.pickTarget(now, candidates)
	if target == nil {
		return false
	}

	ok := g.launchShot(shot{
		kind:     enums.ProjectileCannonShell,
		velocity: g.arcVelocity(target.Pos),
		piercing: g.def.Piercing,
		aoe:      g.def.AoERadius,
		arcing:   true,
	})
	if ok {
		g.lastFireAt = now
	}
	return ok
}

func (g *Cannon) onSkillActivate(idx int, _ float64, _ []*domain.Enemy, _ bool) {
	switch idx {
	case 0: // Siege Mode
		g.damageMult = g.skills[idx].def.Magnitude
	case 1: // Shrapnel Shell
		g.aoeMult = g.skills[idx].def.Magnitude
	}
}

func (g *Cannon) onSkillEnd(idx int, _ []*domain.Enemy) {
	switch idx {
	case 0:
		g.damageMult = 1
	case 1:
		g.aoeMult = 1
	}
}

func (g *Cannon) Detach() {
	g.damageMult = 1
	g.aoeMult = 1
}
