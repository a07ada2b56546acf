package engine

import (
	"github.com/umutterol/hellcrawler-sub001/internal/arena"
	"github.com/umutterol/hellcrawler-sub001/internal/core/types"
	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
	"github.com/umutterol/hellcrawler-sub001/internal/events"
)

// Пулы инстанса. Размеры - верхняя граница одновременно живых
// сущностей; исчерпание не ошибка, а причина отложить спавн или
// пропустить выстрел.
const (
	poolEnemies     arena.PoolKey = "enemies"
	poolProjectiles arena.PoolKey = "projectiles"

	enemyPoolSize      = 64
	projectilePoolSize = 128
)

// buildArena поднимает пулы врагов и снарядов с предвыделением.
// Все враги делят одну шину событий инстанса.
func buildArena(shard uint8, bus *events.Dispatcher) (*arena.Manager, error) {
	mgr := arena.NewManager(shard)

	err := mgr.CreatePool(poolEnemies, enums.KindEnemy, enemyPoolSize, func() arena.Poolable {
		return domain.NewEnemy(bus)
	})
	if err != nil {
		return nil, err
	}

	err = mgr.CreatePool(poolProjectiles, enums.KindProjectile, projectilePoolSize, func() arena.Poolable {
		return domain.NewProjectile()
	})
	if err != nil {
		mgr.Destroy()
		return nil, err
	}

	return mgr, nil
}

// projectileLauncher - адаптер пула снарядов под modules.Launcher.
type projectileLauncher struct {
	pool *arena.Pool
}

func (l *projectileLauncher) Acquire() *domain.Projectile {
	obj, err := l.pool.Get()
	if err != nil {
		return nil // пул исчерпан - модуль пропустит выстрел
	}
	return obj.(*domain.Projectile)
}

// enemyResolver - адаптер пула врагов под modules.EnemyResolver.
// Протухшее поколение id дает nil, живой и умирающий враг - указатель.
type enemyResolver struct {
	pool *arena.Pool
}

func (r *enemyResolver) Enemy(id types.EntityID) *domain.Enemy {
	obj := r.pool.Resolve(id)
	if obj == nil {
		return nil
	}
	return obj.(*domain.Enemy)
}
