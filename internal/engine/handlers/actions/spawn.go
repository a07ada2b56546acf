package actions

import (
	"fmt"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/engine/handlers"
	"github.com/umutterol/hellcrawler-sub001/pkg/api"
)

// HandleSpawnEnemy обрабатывает команду SPAWN_ENEMY - ручной спавн врагов
// по архетипу. Сторона не указана - бросаем монетку за каждого.
func HandleSpawnEnemy(ctx handlers.Context, p api.SpawnEnemyPayload) (handlers.Result, error) {
	count := p.Count
	if count <= 0 {
		count = 1
	}

	spawned := 0
	for i := 0; i < count; i++ {
		side := enums.ParseSide(p.Side)
		if side == enums.SideUnknown {
			side = enums.SideLeft
			if ctx.Run.Rand().Intn(2) == 0 {
				side = enums.SideRight
			}
		}
		if err := ctx.Run.SpawnEnemy(p.Archetype, side); err != nil {
			if spawned == 0 {
				return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
			}
			break // пул кончился - отдаём сколько успели
		}
		spawned++
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("Заспавнено врагов: %d (%s).", spawned, p.Archetype),
		MsgType: "INFO",
	}, nil
}

// HandleSpawnWave обрабатывает команду SPAWN_WAVE - запуск волны.
// Нулевые координаты волны означают "текущий прогресс".
func HandleSpawnWave(ctx handlers.Context, p api.SpawnWavePayload) (handlers.Result, error) {
	act, zone, wave := p.Act, p.Zone, p.Wave
	if act == 0 && zone == 0 && wave == 0 {
		act, zone, wave = ctx.Run.Progress()
	}

	total, err := ctx.Run.SpawnWave(act, zone, wave)
	if err != nil {
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("Волна %d-%d-%d: в очереди %d врагов.", act, zone, wave, total),
		MsgType: "INFO",
	}, nil
}
