package domain

import (
	"github.com/jakecoffman/cp/v2"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
)

// Playfield - геометрия боевой сцены.
// Танк стоит в центре (x=0), враги заходят с краёв.
type Playfield struct {
	bounds cp.BB
}

// NewPlayfield создает поле со стандартными границами из constants.go.
func NewPlayfield() *Playfield {
	return &Playfield{
		bounds: cp.NewBB(-PlayfieldHalfWidth, GroundY, PlayfieldHalfWidth, PlayfieldCeiling),
	}
}

// Bounds возвращает границы поля.
func (p *Playfield) Bounds() cp.BB {
	return p.bounds
}

// Contains проверяет, что точка внутри поля (снаряды за краем истекают).
func (p *Playfield) Contains(pos cp.Vector) bool {
	return p.bounds.ContainsVect(pos)
}

// SpawnPos возвращает точку появления врага у соответствующего края.
func (p *Playfield) SpawnPos(side enums.Side) cp.Vector {
	x := p.bounds.R
	if side == enums.SideLeft {
		x = p.bounds.L
	}
	return cp.Vector{X: x, Y: GroundY}
}

// SideOf определяет, с какой стороны от танка находится точка.
func SideOf(pos cp.Vector) enums.Side {
	if pos.X < TankX {
		return enums.SideLeft
	}
	return enums.SideRight
}
