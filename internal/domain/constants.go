package domain

// Геометрия поля боя в мировых единицах. Танк стоит в центре,
// враги заходят с обоих краёв и движутся к нему по земле.
const (
	PlayfieldHalfWidth = 960.0
	PlayfieldCeiling   = 640.0
	GroundY            = 0.0
	TankX              = 0.0
)

// Радиус засчитывания попадания снаряда по врагу.
const ProjectileHitRadius = 16.0

// Гравитация для навесных снарядов (ед/с^2, тянет к земле).
const ArcGravity = 900.0

// Константы формулы урона.
const (
	// Штраф к урону при автоактивации скилла.
	AutoModePenalty = 0.9

	// Равномерный разброс урона на выстрел.
	DamageVarianceMin = 0.9
	DamageVarianceMax = 1.1

	// Базовый крит-мультипликатор до бонусов предмета.
	BaseCritMultiplier = 2.0
)

// Слоты и инвентарь.
const (
	SlotCount    = 5
	InventoryCap = 50
)

// Прокачка статов слота: апгрейд с уровня L стоит (L+1) * UpgradeCostBase.
const UpgradeCostBase = 50

// Прокачка танка: до следующего уровня нужно Level * XPPerLevel опыта.
const XPPerLevel = 100
