package enums

import "strings"

// WeaponClass - класс модуля-оружия. Закрытый набор: каждому классу
// соответствует своя реализация боевого модуля и пара скиллов.
type WeaponClass uint8

const (
	WeaponUnknown WeaponClass = iota
	WeaponMachineGun
	WeaponMissilePod
	WeaponRepairDrone
	WeaponLaser
	WeaponCannon
)

var weaponToString = map[WeaponClass]string{
	WeaponMachineGun:  "MACHINE_GUN",
	WeaponMissilePod:  "MISSILE_POD",
	WeaponRepairDrone: "REPAIR_DRONE",
	WeaponLaser:       "LASER",
	WeaponCannon:      "CANNON",
}

var weaponStringToClass = map[string]WeaponClass{
	"MACHINE_GUN":  WeaponMachineGun,
	"MISSILE_POD":  WeaponMissilePod,
	"REPAIR_DRONE": WeaponRepairDrone,
	"LASER":        WeaponLaser,
	"CANNON":       WeaponCannon,
}

func (w WeaponClass) String() string {
	if val, ok := weaponToString[w]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseWeaponClass(s string) WeaponClass {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := weaponStringToClass[upper]; ok {
		return val
	}
	return WeaponUnknown
}

// ProjectileKind - вид снаряда, который выпускает модуль.
type ProjectileKind uint8

const (
	ProjectileBullet ProjectileKind = iota
	ProjectileMissile
	ProjectileBeam
	ProjectileCannonShell
)

var projectileKindToString = map[ProjectileKind]string{
	ProjectileBullet:      "BULLET",
	ProjectileMissile:     "MISSILE",
	ProjectileBeam:        "BEAM",
	ProjectileCannonShell: "CANNON_SHELL",
}

var projectileKindStringToKind = map[string]ProjectileKind{
	"BULLET":       ProjectileBullet,
	"MISSILE":      ProjectileMissile,
	"BEAM":         ProjectileBeam,
	"CANNON_SHELL": ProjectileCannonShell,
}

func (p ProjectileKind) String() string {
	if val, ok := projectileKindToString[p]; ok {
		return val
	}
	return "BULLET"
}

func ParseProjectileKind(s string) ProjectileKind {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := projectileKindStringToKind[upper]; ok {
		return val
	}
	return ProjectileBullet
}
