package systems

import (
	"math"

	"github.com/jakecoffman/cp/v2"

	"github.com/umutterol/hellcrawler-sub001/internal/domain"
)

// MovementResult - результат вычисления шага врага.
type MovementResult struct {
	NewPos  cp.Vector
	Arrived bool // дошел до дистанции атаки
}

// CalculateStep вычисляет позицию врага после deltaMs движения к танку.
// Не меняет состояние мира. Враг идет по земле строго по X и
// останавливается, войдя в радиус атаки: сквозь танк не проходит.
func CalculateStep(e *domain.Enemy, tankPos cp.Vector, deltaMs float64) MovementResult {
	res := MovementResult{NewPos: e.Pos}

	gap := tankPos.X - e.Pos.X
	reach := e.Config().AttackRange
	if math.Abs(gap) <= reach {
		res.Arrived = true
		return res
	}

	step := e.EffectiveSpeed() * deltaMs / 1000.0
	if step <= 0 {
		return res
	}

	// Не перешагиваем границу радиуса атаки.
	limit := math.Abs(gap) - reach
	if step > limit {
		step = limit
		res.Arrived = true
	}
	if gap < 0 {
		step = -step
	}

	res.NewPos.X += step
	return res
}
