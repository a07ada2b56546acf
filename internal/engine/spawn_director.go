package engine

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/umutterol/hellcrawler-sub001/internal/arena"
	"github.com/umutterol/hellcrawler-sub001/internal/events"
	"github.com/umutterol/hellcrawler-sub001/pkg/forge"
	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

// Компоновка прогрессии и ритм волн.
const (
	wavesPerZone = 10
	zonesPerAct  = 3

	interWaveDelayMs = 3000.0 // пауза между зачисткой и следующей волной
	spawnRetryMs     = 500.0  // перенос спавна при исчерпанном пуле
)

// SpawnDirector ведет бухгалтерию волны: сколько спавнов еще в очереди
// таймеров, сколько врагов на поле, когда волна считается зачищенной
// и что запускается следом. Сам спавн делает инстанс, директор только
// планирует и считает.
type SpawnDirector struct {
	inst *Instance

	pendingSpawns int // запланированные, но еще не выполненные спавны
	aliveCount    int // активированные и еще не умершие враги
	waveActive    bool
}

func NewSpawnDirector(inst *Instance) *SpawnDirector {
	d := &SpawnDirector{inst: inst}
	inst.Bus.SubscribeFunc(events.EventEnemyDied, d.onEnemyDied)
	return d
}

// BeginWave раскладывает спавны волны по очереди таймеров.
// Повторный вызов до зачистки докидывает врагов в текущую волну.
func (d *SpawnDirector) BeginWave(orders []forge.SpawnOrder) {
	i := d.inst
	d.waveActive = true
	d.pendingSpawns += len(orders)

	for _, order := range orders {
		o := order
		i.Timers.Schedule(i.nowMs+o.DelayMs, "wave_spawn", func(float64) {
			d.executeSpawn(o)
		})
	}

	act, zone, wave := i.act, i.zone, i.wave
	i.AddLog(fmt.Sprintf("Волна %d-%d-%d: идут %d врагов.", act, zone, wave, len(orders)), "WAVE")
	logger.Log.WithFields(logrus.Fields{
		"component": "spawn_director",
		"instance":  i.ID,
		"act":       act,
		"zone":      zone,
		"wave":      wave,
		"count":     len(orders),
	}).Info("Wave scheduled")
}

// NoteSpawned вызывается инстансом на каждый успешный спавн,
// и плановый, и ручной. Ручные враги тоже держат волну открытой:
// зачистка означает пустое поле, а не только штатный состав.
func (d *SpawnDirector) NoteSpawned() {
	d.aliveCount++
}

// Pending/Alive/WaveActive - снимок бухгалтерии для дебаг-ручек.
func (d *SpawnDirector) Pending() int      { return d.pendingSpawns }
func (d *SpawnDirector) Alive() int        { return d.aliveCount }
func (d *SpawnDirector) WaveActive() bool  { return d.waveActive }

// executeSpawn выполняет один плановый спавн. Исчерпанный пул - перенос
// на spawnRetryMs: волна не имеет права молча потерять врага. Любая
// другая ошибка (архетип пропал при замене контента) спавн списывает.
func (d *SpawnDirector) executeSpawn(o forge.SpawnOrder) {
	i := d.inst

	err := i.SpawnEnemy(o.Archetype, o.Side)
	if err == nil {
		d.pendingSpawns--
		return
	}

	if errors.Is(err, arena.ErrPoolExhausted) {
		i.Timers.Schedule(i.nowMs+spawnRetryMs, "wave_spawn_retry", func(float64) {
			d.executeSpawn(o)
		})
		return
	}

	logger.Log.WithError(err).WithFields(logrus.Fields{
		"component": "spawn_director",
		"archetype": o.Archetype,
	}).Error("Spawn dropped")
	d.pendingSpawns--
	d.maybeCleared()
}

// onEnemyDied списывает врага и проверяет зачистку. Срабатывает в
// момент смерти, до возврата трупа в пул: зачистка волны не ждет
// смертельной паузы.
func (d *SpawnDirector) onEnemyDied(ev events.Event) {
	if _, ok := ev.Data.(events.EnemyDied); !ok {
		return
	}
	if d.aliveCount > 0 {
		d.aliveCount--
	}
	d.maybeCleared()
}

func (d *SpawnDirector) maybeCleared() {
	if !d.waveActive || d.pendingSpawns > 0 || d.aliveCount > 0 {
		return
	}
	d.waveActive = false

	i := d.inst
	act, zone, wave := i.act, i.zone, i.wave

	i.Bus.Emit(events.EventWaveCleared, events.WaveCleared{Act: act, Zone: zone, Wave: wave})
	i.AddLog(fmt.Sprintf("Волна %d-%d-%d зачищена.", act, zone, wave), "WAVE")

	if !i.cfg.AutoWaves {
		return
	}

	nextAct, nextZone, nextWave := advanceProgress(act, zone, wave)
	i.Timers.Schedule(i.nowMs+interWaveDelayMs, "next_wave", func(float64) {
		if _, err := i.SpawnWave(nextAct, nextZone, nextWave); err != nil {
			logger.Log.WithError(err).Warn("Auto wave failed to start")
		}
	})
}

// advanceProgress - следующая точка прогрессии: десять волн в зоне,
// три зоны в акте, акты растут без потолка (масштабирование врагов
// задают таблицы контента).
func advanceProgress(act, zone, wave int) (int, int, int) {
	wave++
	if wave > wavesPerZone {
		wave = 1
		zone++
	}
	if zone > zonesPerAct {
		zone = 1
		act++
	}
	return act, zone, wave
}
