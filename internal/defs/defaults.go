package defs

// Встроенные таблицы контента. Используются, когда каталог определений
// не задан или в нем нет соответствующего файла: движок должен уметь
// подняться без внешних данных, с тем же балансом, что в data/defs/.

func defaultEnemies() []EnemyDef {
	return []EnemyDef{
		{
			ID:               "imp",
			Name:             "Имп",
			Category:         "FODDER",
			MaxHealth:        50,
			Damage:           5,
			Speed:            120,
			AttackRange:      40,
			AttackCooldownMs: 1000,
			XPReward:         5,
			GoldReward:       2,
			Scale:            1.0,
		},
		{
			ID:               "hellhound",
			Name:             "Адская гончая",
			Category:         "FODDER",
			MaxHealth:        80,
			Damage:           8,
			Speed:            190,
			AttackRange:      50,
			AttackCooldownMs: 900,
			XPReward:         8,
			GoldReward:       3,
			Scale:            1.0,
		},
		{
			ID:               "brute",
			Name:             "Громила",
			Category:         "ELITE",
			MaxHealth:        400,
			Damage:           25,
			Speed:            70,
			AttackRange:      60,
			AttackCooldownMs: 1500,
			XPReward:         40,
			GoldReward:       18,
			Scale:            1.4,
		},
		{
			ID:               "chaos_knight",
			Name:             "Рыцарь Хаоса",
			Category:         "SUPER_ELITE",
			MaxHealth:        1500,
			Damage:           60,
			Speed:            60,
			AttackRange:      70,
			AttackCooldownMs: 1800,
			XPReward:         150,
			GoldReward:       75,
			Scale:            1.7,
		},
		{
			ID:               "abyss_lord",
			Name:             "Владыка Бездны",
			Category:         "BOSS",
			MaxHealth:        8000,
			Damage:           120,
			Speed:            45,
			AttackRange:      90,
			AttackCooldownMs: 2200,
			XPReward:         1000,
			GoldReward:       500,
			Scale:            2.5,
		},
	}
}

func defaultWeapons() []WeaponDef {
	return []WeaponDef{
		{
			Class:            "MACHINE_GUN",
			Name:             "Пулемет",
			BaseDamage:       12,
			FireIntervalMs:   200,
			CritChance:       0.05,
			Range:            700,
			ProjectileKind:   "BULLET",
			ProjectileSpeed:  900,
			ProjectileLifeMs: 1500,
			Skills: []SkillDef{
				{Name: "Overdrive", CooldownSec: 20, DurationMs: 5000, Magnitude: 1.5},
				// Magnitude - множитель скорости врага (0.7 = замедление на 30%).
				{Name: "Suppressing Fire", CooldownSec: 15, DurationMs: 3000, Magnitude: 0.7, Radius: 500},
			},
		},
		{
			Class:            "MISSILE_POD",
			Name:             "Ракетная батарея",
			BaseDamage:       45,
			FireIntervalMs:   1200,
			CritChance:       0.05,
			Range:            800,
			ProjectileKind:   "MISSILE",
			ProjectileSpeed:  420,
			ProjectileLifeMs: 4000,
			Arcing:           true,
			AoERadius:        100,
			Skills: []SkillDef{
				{Name: "Barrage", CooldownSec: 18, Shots: 5, IntervalMs: 120},
				{Name: "Homing Swarm", CooldownSec: 25, DurationMs: 4000},
			},
		},
		{
			Class:      "REPAIR_DRONE",
			Name:       "Ремонтный дрон",
			HealPerSec: 6,
			Skills: []SkillDef{
				// Magnitude - доля максимального здоровья за раз.
				{Name: "Emergency Repair", CooldownSec: 30, Magnitude: 0.15},
				// Magnitude - множитель темпа лечения.
				{Name: "Regeneration Field", CooldownSec: 20, DurationMs: 5000, Magnitude: 2.0},
			},
		},
		{
			Class:            "LASER",
			Name:             "Лазер",
			BaseDamage:       30,
			FireIntervalMs:   800,
			CritChance:       0.10,
			Range:            900,
			ProjectileKind:   "BEAM",
			ProjectileSpeed:  2400,
			ProjectileLifeMs: 400,
			Piercing:         true,
			Skills: []SkillDef{
				{Name: "Overcharge", CooldownSec: 22, DurationMs: 4000, Magnitude: 1.75},
				// Magnitude - прибавка к шансу крита.
				{Name: "Focus Lens", CooldownSec: 16, DurationMs: 5000, Magnitude: 0.25},
			},
		},
		{
			Class:            "CANNON",
			Name:             "Осадная пушка",
			BaseDamage:       150,
			FireIntervalMs:   2500,
			CritChance:       0.05,
			Range:            850,
			ProjectileKind:   "CANNON_SHELL",
			ProjectileSpeed:  380,
			ProjectileLifeMs: 5000,
			Arcing:           true,
			AoERadius:        140,
			Skills: []SkillDef{
				{Name: "Siege Mode", CooldownSec: 25, DurationMs: 6000, Magnitude: 1.5},
				// Magnitude - множитель радиуса взрыва.
				{Name: "Shrapnel Shell", CooldownSec: 20, DurationMs: 6000, Magnitude: 1.5},
			},
		},
	}
}

func defaultRarities() []RarityDef {
	return []RarityDef{
		{Rarity: "UNCOMMON", Weight: 60, BonusCount: 1, BonusMin: 0.05, BonusMax: 0.10, SellGold: 25},
		{Rarity: "RARE", Weight: 30, BonusCount: 2, BonusMin: 0.08, BonusMax: 0.15, SellGold: 75},
		{Rarity: "EPIC", Weight: 9, BonusCount: 3, BonusMin: 0.12, BonusMax: 0.20, SellGold: 200},
		{Rarity: "LEGENDARY", Weight: 1, BonusCount: 4, BonusMin: 0.18, BonusMax: 0.30, SellGold: 500},
	}
}

func defaultProgression() ProgressionDef {
	return ProgressionDef{
		SlotCosts:     []int{0, 0, 1000, 5000, 20000},
		SlotActGate:   []int{1, 1, 1, 1, 3},
		TankMaxHealth: 5000,
		DeathDelayMs:  1000,
		DropChance: map[string]float64{
			"FODDER":      0.03,
			"ELITE":       0.15,
			"SUPER_ELITE": 0.50,
			"BOSS":        1.00,
		},
		ActHealthMult:  1.50,
		ActDamageMult:  1.35,
		ZoneHealthMult: 1.12,
		ZoneDamageMult: 1.08,
		WaveHealthStep: 0.08,
		WaveDamageStep: 0.05,
	}
}

// DefaultLibrary собирает библиотеку из встроенных таблиц.
// Паникует только при ошибке в самих таблицах, то есть на старте.
func DefaultLibrary() *Library {
	lib, err := buildLibrary(defaultEnemies(), defaultWeapons(), defaultRarities(), defaultProgression())
	if err != nil {
		panic("defs: built-in tables are broken: " + err.Error())
	}
	return lib
}
