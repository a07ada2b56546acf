package enums

import "strings"

// Kind - тип пулируемой сущности, зашиваемый в EntityID.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindEnemy
	KindProjectile
	KindTank
)

var kindToString = map[Kind]string{
	KindEnemy:      "ENEMY",
	KindProjectile: "PROJECTILE",
	KindTank:       "TANK",
}

var kindStringToKind = map[string]Kind{
	"ENEMY":      KindEnemy,
	"PROJECTILE": KindProjectile,
	"TANK":       KindTank,
}

// String возвращает строковое представление (для логов и дебага)
func (k Kind) String() string {
	if val, ok := kindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseKind конвертирует строку в Enum (нужно для загрузки конфигов)
func ParseKind(s string) Kind {
	upper := strings.ToUpper(s)
	if val, ok := kindStringToKind[upper]; ok {
		return val
	}
	return KindUnknown
}
