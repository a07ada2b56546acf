package defs

import (
	"fmt"
	"math"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
)

// Library - собранный и провалидированный набор определений.
// После сборки только читается; горячая замена идет целым объектом
// через канал Watcher-а, внутри цикла симуляции.
type Library struct {
	Enemies     map[string]EnemyDef
	Weapons     map[enums.WeaponClass]WeaponDef
	Rarities    map[enums.Rarity]RarityDef
	Progression ProgressionDef
}

// buildLibrary индексирует сырые списки и валидирует ссылки на enum-ы.
func buildLibrary(enemies []EnemyDef, weapons []WeaponDef, rarities []RarityDef, prog ProgressionDef) (*Library, error) {
	lib := &Library{
		Enemies:     make(map[string]EnemyDef, len(enemies)),
		Weapons:     make(map[enums.WeaponClass]WeaponDef, len(weapons)),
		Rarities:    make(map[enums.Rarity]RarityDef, len(rarities)),
		Progression: prog,
	}

	for _, def := range enemies {
		if def.ID == "" {
			return nil, fmt.Errorf("enemy def without id (name %q)", def.Name)
		}
		if enums.ParseCategory(def.Category) == enums.CategoryUnknown {
			return nil, fmt.Errorf("enemy %q: unknown category %q", def.ID, def.Category)
		}
		if def.MaxHealth <= 0 {
			return nil, fmt.Errorf("enemy %q: max_health must be positive", def.ID)
		}
		if _, dup := lib.Enemies[def.ID]; dup {
			return nil, fmt.Errorf("duplicate enemy id %q", def.ID)
		}
		lib.Enemies[def.ID] = def
	}

	for _, def := range weapons {
		class := enums.ParseWeaponClass(def.Class)
		if class == enums.WeaponUnknown {
			return nil, fmt.Errorf("weapon def: unknown class %q", def.Class)
		}
		if len(def.Skills) != 2 {
			return nil, fmt.Errorf("weapon %q: want exactly 2 skills, got %d", def.Class, len(def.Skills))
		}
		if _, dup := lib.Weapons[class]; dup {
			return nil, fmt.Errorf("duplicate weapon class %q", def.Class)
		}
		lib.Weapons[class] = def
	}

	for _, def := range rarities {
		r := enums.ParseRarity(def.Rarity)
		if !r.Droppable() {
			return nil, fmt.Errorf("rarity def %q: not a droppable rarity", def.Rarity)
		}
		if def.BonusCount <= 0 || def.BonusMax < def.BonusMin {
			return nil, fmt.Errorf("rarity def %q: bad roll ranges", def.Rarity)
		}
		lib.Rarities[r] = def
	}

	if err := lib.validate(); err != nil {
		return nil, err
	}
	return lib, nil
}

// validate проверяет целостность собранной библиотеки.
func (l *Library) validate() error {
	if len(l.Progression.SlotCosts) != domain.SlotCount {
		return fmt.Errorf("progression: want %d slot_costs, got %d", domain.SlotCount, len(l.Progression.SlotCosts))
	}
	if len(l.Progression.SlotActGate) != domain.SlotCount {
		return fmt.Errorf("progression: want %d slot_act_gate entries, got %d", domain.SlotCount, len(l.Progression.SlotActGate))
	}
	for r := enums.RarityUncommon; r <= enums.RarityLegendary; r++ {
		if _, ok := l.Rarities[r]; !ok {
			return fmt.Errorf("rarity table: missing %v", r)
		}
	}
	return nil
}

// Enemy возвращает архетип по id.
func (l *Library) Enemy(id string) (EnemyDef, error) {
	def, ok := l.Enemies[id]
	if !ok {
		return EnemyDef{}, fmt.Errorf("unknown enemy archetype %q", id)
	}
	return def, nil
}

// Weapon возвращает описание класса оружия.
func (l *Library) Weapon(class enums.WeaponClass) (WeaponDef, error) {
	def, ok := l.Weapons[class]
	if !ok {
		return WeaponDef{}, fmt.Errorf("unknown weapon class %v", class)
	}
	return def, nil
}

// Rarity возвращает параметры редкости.
func (l *Library) Rarity(r enums.Rarity) (RarityDef, error) {
	def, ok := l.Rarities[r]
	if !ok {
		return RarityDef{}, fmt.Errorf("unknown rarity %v", r)
	}
	return def, nil
}

// EnemyConfig - снапшот характеристик врага, отмасштабированный под
// точку прогрессии. act/zone/wave считаются с единицы: (1,1,1) дает
// характеристики из таблицы без изменений.
func (l *Library) EnemyConfig(id string, act, zone, wave int) (domain.EnemyConfig, error) {
	def, err := l.Enemy(id)
	if err != nil {
		return domain.EnemyConfig{}, err
	}
	if act < 1 {
		act = 1
	}
	if zone < 1 {
		zone = 1
	}
	if wave < 1 {
		wave = 1
	}

	p := l.Progression
	healthMult := math.Pow(p.ActHealthMult, float64(act-1)) *
		math.Pow(p.ZoneHealthMult, float64(zone-1)) *
		(1 + p.WaveHealthStep*float64(wave-1))
	damageMult := math.Pow(p.ActDamageMult, float64(act-1)) *
		math.Pow(p.ZoneDamageMult, float64(zone-1)) *
		(1 + p.WaveDamageStep*float64(wave-1))

	scale := def.Scale
	if scale == 0 {
		scale = 1.0
	}

	return domain.EnemyConfig{
		Archetype:        def.ID,
		Category:         enums.ParseCategory(def.Category),
		MaxHealth:        int(math.Round(float64(def.MaxHealth) * healthMult)),
		Damage:           int(math.Round(float64(def.Damage) * damageMult)),
		Speed:            def.Speed,
		AttackRange:      def.AttackRange,
		AttackCooldownMs: def.AttackCooldownMs,
		XPReward:         def.XPReward,
		GoldReward:       def.GoldReward,
		Scale:            scale,
	}, nil
}

// SlotCost - цена разблокировки слота. Вне диапазона - -1 (нельзя купить).
func (l *Library) SlotCost(index int) int {
	if index < 0 || index >= len(l.Progression.SlotCosts) {
		return -1
	}
	return l.Progression.SlotCosts[index]
}

// SlotActGate - минимальный акт, с которого слот доступен к покупке.
func (l *Library) SlotActGate(index int) int {
	if index < 0 || index >= len(l.Progression.SlotActGate) {
		return 1
	}
	return l.Progression.SlotActGate[index]
}

// DropChance - шанс дропа предмета для категории врага.
func (l *Library) DropChance(c enums.Category) float64 {
	return l.Progression.DropChance[c.String()]
}
