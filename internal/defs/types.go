package defs

// Описания контента в YAML-таблицах. Все enum-поля здесь - строки,
// парсинг в типизированные значения происходит при сборке Library,
// чтобы ошибка в данных падала на старте, а не посреди боя.

// EnemyDef - архетип врага до масштабирования по прогрессии.
type EnemyDef struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	Category         string  `yaml:"category"`
	MaxHealth        int     `yaml:"max_health"`
	Damage           int     `yaml:"damage"`
	Speed            float64 `yaml:"speed"`
	AttackRange      float64 `yaml:"attack_range"`
	AttackCooldownMs float64 `yaml:"attack_cooldown_ms"`
	XPReward         int     `yaml:"xp_reward"`
	GoldReward       int     `yaml:"gold_reward"`
	Scale            float64 `yaml:"scale"`
}

// SkillDef - тюнинг одного скилла. Смысл Magnitude зависит от скилла:
// множитель скорострельности, доля замедления, процент лечения и т.д.
type SkillDef struct {
	Name        string  `yaml:"name"`
	CooldownSec float64 `yaml:"cooldown_sec"`
	DurationMs  float64 `yaml:"duration_ms"`
	Magnitude   float64 `yaml:"magnitude"`
	Radius      float64 `yaml:"radius,omitempty"`
	Shots       int     `yaml:"shots,omitempty"`
	IntervalMs  float64 `yaml:"interval_ms,omitempty"`
}

// WeaponDef - базовые характеристики класса оружия и его пара скиллов.
type WeaponDef struct {
	Class            string     `yaml:"class"`
	Name             string     `yaml:"name"`
	BaseDamage       int        `yaml:"base_damage"`
	FireIntervalMs   float64    `yaml:"fire_interval_ms"`
	CritChance       float64    `yaml:"crit_chance"`
	Range            float64    `yaml:"range"`
	ProjectileKind   string     `yaml:"projectile_kind"`
	ProjectileSpeed  float64    `yaml:"projectile_speed"`
	ProjectileLifeMs float64    `yaml:"projectile_life_ms"`
	Piercing         bool       `yaml:"piercing"`
	Arcing           bool       `yaml:"arcing"`
	AoERadius        float64    `yaml:"aoe_radius"`
	HealPerSec       float64    `yaml:"heal_per_sec"`
	Skills           []SkillDef `yaml:"skills"`
}

// RarityDef - параметры роллов и экономики для одной редкости.
type RarityDef struct {
	Rarity     string  `yaml:"rarity"`
	Weight     int     `yaml:"weight"`
	BonusCount int     `yaml:"bonus_count"`
	BonusMin   float64 `yaml:"bonus_min"`
	BonusMax   float64 `yaml:"bonus_max"`
	SellGold   int     `yaml:"sell_gold"`
}

// ProgressionDef - экономика слотов и масштабирование по act/zone/wave.
type ProgressionDef struct {
	SlotCosts   []int `yaml:"slot_costs"`    // длина 5, 0 = открыт сразу
	SlotActGate []int `yaml:"slot_act_gate"` // минимальный акт для покупки

	TankMaxHealth int     `yaml:"tank_max_health"`
	DeathDelayMs  float64 `yaml:"death_delay_ms"`

	// Шанс дропа предмета по категории врага.
	DropChance map[string]float64 `yaml:"drop_chance"`

	ActHealthMult  float64 `yaml:"act_health_mult"`
	ActDamageMult  float64 `yaml:"act_damage_mult"`
	ZoneHealthMult float64 `yaml:"zone_health_mult"`
	ZoneDamageMult float64 `yaml:"zone_damage_mult"`
	WaveHealthStep float64 `yaml:"wave_health_step"`
	WaveDamageStep float64 `yaml:"wave_damage_step"`
}
