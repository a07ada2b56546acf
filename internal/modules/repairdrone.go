package modules

import (
	"math"

	"github.com/umutterol/hellcrawler-sub001/internal/domain"
)

// RepairDrone - не стреляет, пассивно чинит танк.
//
// Скилл 0 "Emergency Repair": мгновенный ремонт на долю Magnitude
// от максимума корпуса.
// Скилл 1 "Regeneration Field": пассивная починка ×Magnitude
// на время действия.
type RepairDrone struct {
	*core

	healRateMult float64
	accumulator  float64 // дробный остаток починки между кадрами
}

func newRepairDrone(base *core) *RepairDrone {
	d := &RepairDrone{core: base, healRateMult: 1}
	base.self = d
	return d
}

func (d *RepairDrone) Update(now, delta float64, candidates []*domain.Enemy) {
	d.updateSkills(now, delta, candidates)

	// Целые очки уходят танку, дробный хвост копится дальше.
	// Накопленное тратится даже при полном корпусе, иначе дрон
	// запасал бы "взрыв" починки на первый пропущенный удар.
	d.accumulator += d.def.HealPerSec * d.mults.Damage * d.healRateMult * delta / 1000.0
	if d.accumulator >= 1 {
		whole := math.Floor(d.accumulator)
		d.accumulator -= whole
		d.deps.Heal.Heal(int(whole))
	}
}

// Fire у дрона отсутствует: весь вклад идет через Update.
func (d *RepairDrone) Fire(float64, []*domain.Enemy) bool { return false }

func (d *RepairDrone) onSkillActivate(idx int, _ float64, _ []*domain.Enemy, _ bool) {
	switch idx {
	case 0: // Emergency Repair
		points := int(math.Round(float64(d.deps.Heal.MaxHealth()) * d.skills[idx].def.Magnitude))
		d.deps.Heal.Heal(points)
	case 1: // Regeneration Field
		d.healRateMult = d.skills[idx].def.Magnitude
	}
}

func (d *RepairDrone) onSkillEnd(idx int, _ []*domain.Enemy) {
	if idx == 1 {
		d.healRateMult = 1
	}
}

func (d *RepairDrone) Detach() {
	d.healRateMult = 1
	d.accumulator = 0
}
