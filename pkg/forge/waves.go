package forge

import (
	"math/rand"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/defs"
)

// Константы компоновки волн.
const (
	waveBaseCount    = 4   // рядовых врагов в первой волне
	waveMaxCount     = 12  // потолок рядовых в волне
	spawnGapMinMs    = 500 // минимальная пауза между спавнами
	spawnGapSpreadMs = 300
)

// SpawnOrder - один отложенный спавн внутри волны.
type SpawnOrder struct {
	Archetype string
	Side      enums.Side
	DelayMs   float64
}

// ComposeWave собирает план волны для точки прогрессии.
// Ритм: рядовые с обеих сторон, элита каждую третью волну,
// суперэлита каждую пятую, босс закрывает каждую десятую.
func ComposeWave(lib *defs.Library, rng *rand.Rand, act, zone, wave int) []SpawnOrder {
	if wave < 1 {
		wave = 1
	}

	count := waveBaseCount + wave
	if count > waveMaxCount {
		count = waveMaxCount
	}

	orders := make([]SpawnOrder, 0, count+3)
	delay := 0.0

	fodder := archetypesByCategory(lib, enums.CategoryFodder)
	for i := 0; i < count && len(fodder) > 0; i++ {
		orders = append(orders, SpawnOrder{
			Archetype: fodder[rng.Intn(len(fodder))],
			Side:      rollSide(rng),
			DelayMs:   delay,
		})
		delay += spawnGapMinMs + rng.Float64()*spawnGapSpreadMs
	}

	if wave%3 == 0 {
		orders = appendCategory(orders, lib, rng, enums.CategoryElite, delay)
		delay += spawnGapMinMs
	}
	if wave%5 == 0 {
		orders = appendCategory(orders, lib, rng, enums.CategorySuperElite, delay)
		delay += spawnGapMinMs
	}
	if wave%10 == 0 {
		orders = appendCategory(orders, lib, rng, enums.CategoryBoss, delay)
	}

	return orders
}

func appendCategory(orders []SpawnOrder, lib *defs.Library, rng *rand.Rand, category enums.Category, delay float64) []SpawnOrder {
	ids := archetypesByCategory(lib, category)
	if len(ids) == 0 {
		return orders
	}
	return append(orders, SpawnOrder{
		Archetype: ids[rng.Intn(len(ids))],
		Side:      rollSide(rng),
		DelayMs:   delay,
	})
}

func rollSide(rng *rand.Rand) enums.Side {
	if rng.Intn(2) == 0 {
		return enums.SideLeft
	}
	return enums.SideRight
}
