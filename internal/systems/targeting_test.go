package systems

import (
	"testing"

	"github.com/jakecoffman/cp/v2"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types"
	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
	"github.com/umutterol/hellcrawler-sub001/internal/events"
)

// spawnAt поднимает врага в заданной точке для запросов таргетинга.
func spawnAt(t *testing.T, bus *events.Dispatcher, x, y float64, index uint32) *domain.Enemy {
	t.Helper()

	side := enums.SideRight
	if x < domain.TankX {
		side = enums.SideLeft
	}

	e := domain.NewEnemy(bus)
	e.Bind(types.PackEntityID(0, enums.KindEnemy, 1, index))
	cfg := domain.EnemyConfig{
		Archetype:        "imp",
		Category:         enums.CategoryFodder,
		MaxHealth:        50,
		Damage:           5,
		Speed:            120,
		AttackRange:      40,
		AttackCooldownMs: 1000,
		XPReward:         5,
		GoldReward:       2,
		Scale:            1,
	}
	if err := e.Activate(cp.Vector{X: x, Y: y}, cfg, side); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	return e
}

func TestFilterBySide(t *testing.T) {
	bus := events.NewDispatcher()
	left := spawnAt(t, bus, -300, 0, 1)
	right := spawnAt(t, bus, 400, 0, 2)
	dead := spawnAt(t, bus, 500, 0, 3)
	dead.TakeDamage(50, false)

	all := []*domain.Enemy{left, right, dead}

	tests := []struct {
		dir  enums.Direction
		want []*domain.Enemy
	}{
		{enums.DirectionFront, []*domain.Enemy{right}},
		{enums.DirectionBack, []*domain.Enemy{left}},
		{enums.DirectionBoth, []*domain.Enemy{left, right}},
	}

	for _, tt := range tests {
		got := FilterBySide(all, tt.dir)
		if len(got) != len(tt.want) {
			t.Errorf("FilterBySide(%v): got %d enemies, want %d", tt.dir, len(got), len(tt.want))
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("FilterBySide(%v)[%d] = %v, want %v", tt.dir, i, got[i].ID(), tt.want[i].ID())
			}
		}
	}
}

func TestClosest(t *testing.T) {
	bus := events.NewDispatcher()
	near := spawnAt(t, bus, 100, 0, 1)
	far := spawnAt(t, bus, 700, 0, 2)
	corpse := spawnAt(t, bus, 50, 0, 3)
	corpse.TakeDamage(50, false)

	all := []*domain.Enemy{far, near, corpse}
	origin := cp.Vector{X: 0, Y: 0}

	// Труп ближе всех, но мертвые не цели.
	if got := Closest(origin, all, 0); got != near {
		t.Errorf("Closest = %v, want the near enemy", got.ID())
	}

	// Ограничение дальности отрезает дальнего.
	if got := Closest(origin, []*domain.Enemy{far}, 500); got != nil {
		t.Errorf("Closest with range 500 = %v, want nil", got.ID())
	}

	// Пустой срез - нет цели, не паника.
	if got := Closest(origin, nil, 0); got != nil {
		t.Error("Closest(nil) must return nil")
	}
}

// Враг на дистанции ровно radius обязан попасть под раздачу.
func TestEnemiesInRadius_BoundaryInclusive(t *testing.T) {
	bus := events.NewDispatcher()
	center := cp.Vector{X: 0, Y: 0}

	onEdge := spawnAt(t, bus, 100, 0, 1)     // ровно 100
	inside := spawnAt(t, bus, 60, 0, 2)      // внутри
	outside := spawnAt(t, bus, 100.01, 0, 3) // чуть дальше

	got := EnemiesInRadius(center, []*domain.Enemy{onEdge, inside, outside}, 100)
	if len(got) != 2 {
		t.Fatalf("got %d enemies in radius, want 2", len(got))
	}
	for _, e := range got {
		if e == outside {
			t.Error("enemy outside the radius was included")
		}
	}

	if got := EnemiesInRadius(center, []*domain.Enemy{inside}, 0); got != nil {
		t.Error("zero radius must select nothing")
	}
}

func TestEnemiesInCone(t *testing.T) {
	bus := events.NewDispatcher()

	ahead := spawnAt(t, bus, 300, 0, 1)
	high := spawnAt(t, bus, 100, 400, 2)  // почти вертикально
	behind := spawnAt(t, bus, -200, 0, 3) // за спиной
	farAway := spawnAt(t, bus, 900, 0, 4) // по оси, вне дальности

	all := []*domain.Enemy{ahead, high, behind, farAway}

	// Сектор вперед: раствор ~60 градусов (cos 30 ~= 0.866).
	got := EnemiesInCone(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 1, Y: 0}, 500, 0.866, all)
	if len(got) != 1 || got[0] != ahead {
		t.Errorf("cone selected %d enemies, want only the one ahead", len(got))
	}
}
