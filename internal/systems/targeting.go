package systems

import (
	"github.com/jakecoffman/cp/v2"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
)

// Запросы по целям. Все функции чистые: берут срез активных врагов
// на кадр и ничего не мутируют. Мертвые и умирающие отсеиваются.

// FilterBySide оставляет врагов на сторонах, которые кроет направление
// слота: фронт бьет по правому краю, тыл по левому, Both по обоим.
func FilterBySide(enemies []*domain.Enemy, dir enums.Direction) []*domain.Enemy {
	out := enemies[:0:0]
	for _, e := range enemies {
		if e.Alive() && dir.Covers(e.Side) {
			out = append(out, e)
		}
	}
	return out
}

// Closest возвращает ближайшего живого врага к точке.
// maxRange <= 0 означает без ограничения дальности.
func Closest(origin cp.Vector, enemies []*domain.Enemy, maxRange float64) *domain.Enemy {
	var best *domain.Enemy
	var bestSq float64
	limitSq := maxRange * maxRange

	for _, e := range enemies {
		if !e.Alive() {
			continue
		}
		distSq := e.Pos.Sub(origin).LengthSq()
		if maxRange > 0 && distSq > limitSq {
			continue
		}
		if best == nil || distSq < bestSq {
			best = e
			bestSq = distSq
		}
	}
	return best
}

// EnemiesInRadius - все живые враги в круге. Граница включается:
// враг на дистанции ровно radius тоже получает свое.
func EnemiesInRadius(center cp.Vector, enemies []*domain.Enemy, radius float64) []*domain.Enemy {
	if radius <= 0 {
		return nil
	}
	radiusSq := radius * radius

	var out []*domain.Enemy
	for _, e := range enemies {
		if !e.Alive() {
			continue
		}
		if e.Pos.Sub(center).LengthSq() <= radiusSq {
			out = append(out, e)
		}
	}
	return out
}

// EnemiesInCone - живые враги в секторе: от origin вдоль axis,
// не дальше rangeLimit, с раствором 2*halfAngleCos по косинусу.
// Используется Suppressing Fire пулемета.
func EnemiesInCone(origin cp.Vector, axis cp.Vector, rangeLimit, halfAngleCos float64, enemies []*domain.Enemy) []*domain.Enemy {
	if rangeLimit <= 0 || axis.LengthSq() == 0 {
		return nil
	}
	axis = axis.Normalize()
	rangeSq := rangeLimit * rangeLimit

	var out []*domain.Enemy
	for _, e := range enemies {
		if !e.Alive() {
			continue
		}
		to := e.Pos.Sub(origin)
		distSq := to.LengthSq()
		if distSq > rangeSq {
			continue
		}
		if distSq == 0 {
			out = append(out, e)
			continue
		}
		if to.Normalize().Dot(axis) >= halfAngleCos {
			out = append(out, e)
		}
	}
	return out
}
