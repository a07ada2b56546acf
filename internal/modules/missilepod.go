package modules

import (
	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
	"github.com/umutterol/hellcrawler-sub001/internal/systems"
)

// MissilePod - навесные ракеты со сплеш-уроном.
//
// Скилл 0 "Barrage": очередь из Shots ракет с шагом IntervalMs,
// пока очередь не исчерпана, обычный ритм стрельбы не действует.
// Скилл 1 "Homing Swarm": ракеты летят прямо в цель без баллистики.
type MissilePod struct {
	*core

	burstLeft    int     // сколько ракет очереди осталось
	burstNextAt  float64 // время следующей ракеты очереди
	burstAuto    bool    // очередь запущена авторежимом
	homingActive bool
}

func newMissilePod(base *core) *MissilePod {
	p := &MissilePod{core: base}
	base.self = p
	return p
}

func (p *MissilePod) Update(now, delta float64, candidates []*domain.Enemy) {
	p.updateSkills(now, delta, candidates)
}

func (p *MissilePod) Fire(now float64, candidates []*domain.Enemy) bool {
	if p.burstLeft > 0 {
		return p.fireBurst(now, candidates)
	}

	target := p.pickTarget(now, candidates)
	if target == nil {
		return false
	}
	if !p.launchMissile(target, false) {
		return false
	}
	p.lastFireAt = now
	return true
}

// fireBurst выпускает очередную ракету Barrage. Без целей очередь
// не тратится: ракеты ждут, пока кто-то появится в зоне.
func (p *MissilePod) fireBurst(now float64, candidates []*domain.Enemy) bool {
	if now < p.burstNextAt {
		return false
	}
	target := systems.Closest(p.origin, candidates, p.def.Range)
	if target == nil {
		return false
	}
	if !p.launchMissile(target, p.burstAuto) {
		return false
	}
	p.burstLeft--
	p.burstNextAt = now + p.skills[0].def.IntervalMs
	p.lastFireAt = now
	return true
}

func (p *MissilePod) launchMissile(target *domain.Enemy, auto bool) bool {
	s := shot{
		kind:     enums.ProjectileMissile,
		velocity: p.arcVelocity(target.Pos),
		piercing: p.def.Piercing,
		aoe:      p.def.AoERadius,
		arcing:   true,
		auto:     auto,
	}
	if p.homingActive {
		// Самонаведение ведет ракету по прямой, дуга не нужна.
		s.velocity = p.straightVelocity(target.Pos)
		s.arcing = false
		s.homing = target.ID()
	}
	return p.launchShot(s)
}

func (p *MissilePod) onSkillActivate(idx int, now float64, _ []*domain.Enemy, auto bool) {
	switch idx {
	case 0: // Barrage
		p.burstLeft = p.skills[idx].def.Shots
		p.burstNextAt = now
		p.burstAuto = auto
	case 1: // Homing Swarm
		p.homingActive = true
	}
}

func (p *MissilePod) onSkillEnd(idx int, _ []*domain.Enemy) {
	if idx == 1 {
		p.homingActive = false
	}
}

func (p *MissilePod) Detach() {
	p.burstLeft = 0
	p.homingActive = false
}
