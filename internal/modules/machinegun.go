package modules

import (
	"github.com/jakecoffman/cp/v2"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types"
	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
	"github.com/umutterol/hellcrawler-sub001/internal/systems"
)

// Раствор конуса подавления, косинус половинного угла (~60 градусов).
const suppressionConeCos = 0.866

// MachineGun - высокий темп, низкий разовый урон.
//
// Скилл 0 "Overdrive": темп стрельбы ×Magnitude на время действия.
// Скилл 1 "Suppressing Fire": замедление до доли Magnitude всем врагам
// в переднем конусе, скорость возвращается по окончании.
type MachineGun struct {
	*core

	slowed []types.EntityID // кого замедлили, чтобы потом вернуть
}

func newMachineGun(base *core) *MachineGun {
	m := &MachineGun{core: base}
	base.self = m
	return m
}

func (m *MachineGun) Update(now, delta float64, candidates []*domain.Enemy) {
	m.updateSkills(now, delta, candidates)
}

func (m *MachineGun) Fire(now float64, candidates []*domain.Enemy) bool {
	target := m.pickTarget(now, candidates)
	if target == nil {
		return false
	}

	ok := m.launchShot(shot{
		kind:     enums.ProjectileBullet,
		velocity: m.straightVelocity(target.Pos),
		piercing: m.def.Piercing,
	})
	if ok {
		m.lastFireAt = now
	}
	return ok
}

func (m *MachineGun) onSkillActivate(idx int, now float64, candidates []*domain.Enemy, auto bool) {
	switch idx {
	case 0: // Overdrive
		m.fireRateMult = m.skills[idx].def.Magnitude
	case 1: // Suppressing Fire
		m.suppress(candidates)
	}
}

func (m *MachineGun) onSkillEnd(idx int, _ []*domain.Enemy) {
	switch idx {
	case 0:
		m.fireRateMult = 1
	case 1:
		m.releaseSuppressed()
	}
}

// suppress замедляет всех в конусе и запоминает их id.
// Кандидаты уже отфильтрованы по направлению слота.
func (m *MachineGun) suppress(candidates []*domain.Enemy) {
	def := m.skills[1].def
	for _, axis := range m.coneAxes() {
		for _, e := range systems.EnemiesInCone(m.origin, axis, def.Radius, suppressionConeCos, candidates) {
			e.ApplySlow(def.Magnitude)
			m.slowed = append(m.slowed, e.ID())
		}
	}
}

// releaseSuppressed возвращает скорость выжившим. Протухшие id
// (враг умер и ушел в пул) резолвятся в nil и пропускаются.
func (m *MachineGun) releaseSuppressed() {
	factor := m.skills[1].def.Magnitude
	for _, id := range m.slowed {
		if e := m.deps.Resolver.Enemy(id); e != nil {
			e.RemoveSlow(factor)
		}
	}
	m.slowed = m.slowed[:0]
}

// coneAxes - оси конуса по направлению слота. Both кроет оба фронта.
func (m *MachineGun) coneAxes() []cp.Vector {
	switch m.dir {
	case enums.DirectionFront:
		return []cp.Vector{{X: 1}}
	case enums.DirectionBack:
		return []cp.Vector{{X: -1}}
	default:
		return []cp.Vector{{X: 1}, {X: -1}}
	}
}

// Detach снимает подавление: снятый модуль не оставляет вечных дебафов.
func (m *MachineGun) Detach() {
	m.releaseSuppressed()
	m.fireRateMult = 1
}
