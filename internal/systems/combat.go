package systems

import (
	"github.com/jakecoffman/cp/v2"
	"github.com/sirupsen/logrus"

	"github.com/umutterol/hellcrawler-sub001/internal/domain"
	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

// ApplyDamage бьет одну цель и логирует исход. Возвращает true,
// если этот удар убил. Урон по умирающим глушится в Enemy.
func ApplyDamage(target *domain.Enemy, damage int, isCrit bool) bool {
	if !target.Alive() {
		return false
	}

	hpBefore := target.Health()
	died := target.TakeDamage(damage, isCrit)

	logger.Log.WithFields(logrus.Fields{
		"component": "combat_system",
		"target_id": target.ID(),
		"archetype": target.Archetype(),
		"damage":    damage,
		"is_crit":   isCrit,
		"hp_before": hpBefore,
		"hp_after":  target.Health(),
		"died":      died,
	}).Debug("Damage resolved.")

	return died
}

// ApplyAoE раздает полный урон всем живым в круге, включая врагов
// на дистанции ровно radius. Возвращает число задетых.
func ApplyAoE(center cp.Vector, radius float64, enemies []*domain.Enemy, damage int, isCrit bool) int {
	hit := EnemiesInRadius(center, enemies, radius)
	for _, e := range hit {
		ApplyDamage(e, damage, isCrit)
	}
	return len(hit)
}
