package enums

import "strings"

// Rarity - редкость предмета-модуля.
// Common в дропе не участвует и нужен только как нулевое значение.
type Rarity uint8

const (
	RarityCommon Rarity = iota // 0, не выпадает
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

var rarityToString = map[Rarity]string{
	RarityCommon:    "COMMON",
	RarityUncommon:  "UNCOMMON",
	RarityRare:      "RARE",
	RarityEpic:      "EPIC",
	RarityLegendary: "LEGENDARY",
}

var rarityStringToRarity = map[string]Rarity{
	"COMMON":    RarityCommon,
	"UNCOMMON":  RarityUncommon,
	"RARE":      RarityRare,
	"EPIC":      RarityEpic,
	"LEGENDARY": RarityLegendary,
}

func (r Rarity) String() string {
	if val, ok := rarityToString[r]; ok {
		return val
	}
	return "COMMON"
}

func ParseRarity(s string) Rarity {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := rarityStringToRarity[upper]; ok {
		return val
	}
	return RarityCommon
}

// Droppable сообщает, может ли предмет такой редкости выпасть с врага.
func (r Rarity) Droppable() bool {
	return r >= RarityUncommon && r <= RarityLegendary
}
