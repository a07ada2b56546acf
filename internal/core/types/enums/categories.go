package enums

import "strings"

// Category - весовая категория врага. Влияет на базовые статы,
// масштаб модели и шансы дропа.
type Category uint8

const (
	CategoryUnknown Category = iota
	CategoryFodder
	CategoryElite
	CategorySuperElite
	CategoryBoss
)

var categoryToString = map[Category]string{
	CategoryFodder:     "FODDER",
	CategoryElite:      "ELITE",
	CategorySuperElite: "SUPER_ELITE",
	CategoryBoss:       "BOSS",
}

var categoryStringToCategory = map[string]Category{
	"FODDER":      CategoryFodder,
	"ELITE":       CategoryElite,
	"SUPER_ELITE": CategorySuperElite,
	"BOSS":        CategoryBoss,
}

func (c Category) String() string {
	if val, ok := categoryToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseCategory конвертирует строку из YAML-конфигов в Enum.
func ParseCategory(s string) Category {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := categoryStringToCategory[upper]; ok {
		return val
	}
	return CategoryUnknown
}
