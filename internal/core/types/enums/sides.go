package enums

import "strings"

// Side - сторона экрана, с которой заспавнился враг.
// Правая сторона считается "фронтом" танка.
type Side uint8

const (
	SideUnknown Side = iota
	SideLeft
	SideRight
)

var sideToString = map[Side]string{
	SideLeft:  "LEFT",
	SideRight: "RIGHT",
}

func (s Side) String() string {
	if val, ok := sideToString[s]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseSide(v string) Side {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "LEFT":
		return SideLeft
	case "RIGHT":
		return SideRight
	}
	return SideUnknown
}

// Direction - фиксированное направление стрельбы слота.
// Определяется индексом слота и не меняется апгрейдами.
type Direction uint8

const (
	DirectionFront Direction = iota // только враги справа
	DirectionBack                   // только враги слева
	DirectionBoth                   // все враги
)

var directionToString = map[Direction]string{
	DirectionFront: "FRONT",
	DirectionBack:  "BACK",
	DirectionBoth:  "BOTH",
}

func (d Direction) String() string {
	if val, ok := directionToString[d]; ok {
		return val
	}
	return "FRONT"
}

// Covers сообщает, попадает ли враг с данной стороны спавна
// в зону ответственности направления.
func (d Direction) Covers(side Side) bool {
	switch d {
	case DirectionFront:
		return side == SideRight
	case DirectionBack:
		return side == SideLeft
	case DirectionBoth:
		return side == SideLeft || side == SideRight
	}
	return false
}
