package forge

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/defs"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
)

// Генерация предметов. Весь рандом идет через переданный rng,
// чтобы забег с одним сидом давал одинаковый лут (реплеи).

// Пул бонусов, из которого роллятся аффиксы предмета.
var bonusPool = []enums.BonusType{
	enums.BonusDamage,
	enums.BonusAttackSpeed,
	enums.BonusCritChance,
	enums.BonusCritDamage,
	enums.BonusCooldownReduction,
}

// Классы, доступные к дропу.
var dropClasses = []enums.WeaponClass{
	enums.WeaponMachineGun,
	enums.WeaponMissilePod,
	enums.WeaponRepairDrone,
	enums.WeaponLaser,
	enums.WeaponCannon,
}

// RollRarity выбирает редкость по весам из таблицы.
// Обход по возрастанию редкости: порядок map-а недетерминирован.
func RollRarity(lib *defs.Library, rng *rand.Rand) enums.Rarity {
	total := 0
	for r := enums.RarityUncommon; r <= enums.RarityLegendary; r++ {
		if def, ok := lib.Rarities[r]; ok {
			total += def.Weight
		}
	}
	if total <= 0 {
		return enums.RarityUncommon
	}

	roll := rng.Intn(total)
	for r := enums.RarityUncommon; r <= enums.RarityLegendary; r++ {
		def, ok := lib.Rarities[r]
		if !ok {
			continue
		}
		if roll < def.Weight {
			return r
		}
		roll -= def.Weight
	}
	return enums.RarityUncommon
}

// RollItem создает предмет заданного класса и редкости со случайными
// бонусами. Типы бонусов в пределах предмета не повторяются.
func RollItem(lib *defs.Library, rng *rand.Rand, class enums.WeaponClass, rarity enums.Rarity) (*domain.ModuleItem, error) {
	if _, err := lib.Weapon(class); err != nil {
		return nil, err
	}
	rdef, err := lib.Rarity(rarity)
	if err != nil {
		return nil, err
	}

	count := rdef.BonusCount
	if count > len(bonusPool) {
		count = len(bonusPool)
	}

	// Выбор без повторов: тасуем копию пула и берем первые count.
	pool := make([]enums.BonusType, len(bonusPool))
	copy(pool, bonusPool)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	bonuses := make([]domain.StatBonus, 0, count)
	for _, bt := range pool[:count] {
		value := rdef.BonusMin + rng.Float64()*(rdef.BonusMax-rdef.BonusMin)
		bonuses = append(bonuses, domain.StatBonus{Type: bt, Value: value})
	}

	return &domain.ModuleItem{
		ID:      newItemID(rng),
		Class:   class,
		Rarity:  rarity,
		Bonuses: bonuses,
	}, nil
}

// RollDrop решает, выпадает ли с убитого врага предмет, и какой.
// Возвращает nil, если дропа нет.
func RollDrop(lib *defs.Library, rng *rand.Rand, category enums.Category) (*domain.ModuleItem, error) {
	chance := lib.DropChance(category)
	if chance <= 0 || rng.Float64() >= chance {
		return nil, nil
	}

	class := dropClasses[rng.Intn(len(dropClasses))]
	return RollItem(lib, rng, class, RollRarity(lib, rng))
}

// newItemID - UUID из потока rng, а не из crypto/rand,
// иначе реплей соберет предметы с другими ID.
func newItemID(rng *rand.Rand) uuid.UUID {
	var raw [16]byte
	// math/rand.Read не возвращает ошибок.
	rng.Read(raw[:])
	id, err := uuid.FromBytes(raw[:])
	if err != nil {
		panic(fmt.Sprintf("forge: uuid from 16 bytes: %v", err))
	}
	// Версия 4, вариант RFC 4122, чтобы ID не отличались от обычных.
	id[6] = (id[6] & 0x0f) | 0x40
	id[8] = (id[8] & 0x3f) | 0x80
	return id
}

// archetypesByCategory - отсортированные id архетипов категории.
func archetypesByCategory(lib *defs.Library, category enums.Category) []string {
	var ids []string
	for id, def := range lib.Enemies {
		if enums.ParseCategory(def.Category) == category {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
