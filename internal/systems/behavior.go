package systems

import (
	"github.com/jakecoffman/cp/v2"

	"github.com/umutterol/hellcrawler-sub001/internal/domain"
)

// BehaviorResult - решение врага на кадр.
type BehaviorResult struct {
	Attacked bool
	Damage   int
}

// Advance выполняет кадр поведения одного врага: шаг к танку и атака
// по готовности кулдауна. Порядок фиксирован: сначала движение,
// потом попытка атаки, обе в этом же кадре.
func Advance(e *domain.Enemy, tank *domain.Tank, tankPos cp.Vector, now, deltaMs float64) BehaviorResult {
	var res BehaviorResult
	if !e.Alive() {
		return res
	}

	step := CalculateStep(e, tankPos, deltaMs)
	e.Pos = step.NewPos

	if !step.Arrived {
		return res
	}

	dmg := e.Attack(now)
	if dmg > 0 {
		tank.TakeDamage(dmg)
		res.Attacked = true
		res.Damage = dmg
	}
	return res
}
