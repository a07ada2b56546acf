package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jakecoffman/cp/v2"
	"github.com/sirupsen/logrus"

	"github.com/umutterol/hellcrawler-sub001/internal/arena"
	"github.com/umutterol/hellcrawler-sub001/internal/core/types"
	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/defs"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
	"github.com/umutterol/hellcrawler-sub001/internal/engine/handlers"
	"github.com/umutterol/hellcrawler-sub001/internal/events"
	"github.com/umutterol/hellcrawler-sub001/internal/modules"
	"github.com/umutterol/hellcrawler-sub001/internal/systems"
	"github.com/umutterol/hellcrawler-sub001/pkg/api"
	"github.com/umutterol/hellcrawler-sub001/pkg/forge"
	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
	"github.com/umutterol/hellcrawler-sub001/pkg/utils"
)

// Интервал широковещательной рассылки полного снапшота. События
// уходят клиентам сразу, снапшот - страховка от рассинхрона.
const stateBroadcastMs = 500.0

// Instance - один изолированный запуск симуляции: свои пулы, свое
// время, свой генератор случайностей. Все мутации состояния происходят
// в горутине Run, внешний мир общается с инстансом через каналы.
type Instance struct {
	ID    int
	RunID string
	Seed  int64

	Bus     *events.Dispatcher
	Arena   *arena.Manager
	Tank    *domain.Tank
	Field   *domain.Playfield
	Manager *modules.Manager
	Timers  *TimerQueue

	Rewards  *RewardProcessor
	Director *SpawnDirector

	enemies     *arena.Pool
	projectiles *arena.Pool
	resolver    *enemyResolver

	// Каналы коммуникации
	CommandChan chan domain.InternalCommand // команды от клиентов
	LibChan     chan *defs.Library          // горячая замена контента

	// Ссылка на Service для доступа к Hub и реестру хендлеров
	Service *SimService

	cfg *Config
	lib *defs.Library
	rng *rand.Rand

	nowMs float64

	act, zone, wave int

	Logs   []api.LogEntry
	logSeq int

	Replay *domain.ReplaySession

	// done закрывается при выходе из Run. По нему main ждет остановки
	// цикла перед сбросом реплея на диск.
	done chan struct{}

	// События тика, накопленные ретранслятором шины. Сбрасываются
	// клиентам пачкой в конце Update.
	pendingEvents []api.EventFrame

	// Кадровые буферы, переиспользуются между тиками.
	enemyBuf   []*domain.Enemy
	aliveBuf   []*domain.Enemy
	projBuf    []*domain.Projectile
	releaseBuf []types.EntityID
}

// NewInstance собирает готовый к запуску инстанс: пулы, танк, слоты,
// таймеры и подписчиков шины. Порядок подписки на ENEMY_DIED важен:
// сначала награды, затем учет волны, последним - отложенный возврат
// трупа в пул.
func NewInstance(id int, cfg *Config, lib *defs.Library, service *SimService) (*Instance, error) {
	seed := cfg.Seed + int64(id)*1_000_003
	rng := rand.New(rand.NewSource(seed))

	bus := events.NewDispatcher()
	mgr, err := buildArena(cfg.ShardID, bus)
	if err != nil {
		return nil, fmt.Errorf("build arena: %w", err)
	}

	enemyPool, _ := mgr.Pool(poolEnemies)
	projPool, _ := mgr.Pool(poolProjectiles)
	resolver := &enemyResolver{pool: enemyPool}

	tank := domain.NewTank(bus, lib.Progression.TankMaxHealth)

	manager := modules.NewManager(lib, tank, modules.Deps{
		Bus:      bus,
		Launcher: &projectileLauncher{pool: projPool},
		Resolver: resolver,
		Heal:     tank,
		Rng:      rng,
	})

	inst := &Instance{
		ID:          id,
		RunID:       utils.GenerateRunID(),
		Seed:        seed,
		Bus:         bus,
		Arena:       mgr,
		Tank:        tank,
		Field:       domain.NewPlayfield(),
		Manager:     manager,
		Timers:      NewTimerQueue(),
		enemies:     enemyPool,
		projectiles: projPool,
		resolver:    resolver,
		CommandChan: make(chan domain.InternalCommand, 100),
		LibChan:     make(chan *defs.Library, 1),
		done:        make(chan struct{}),
		Service:     service,
		cfg:         cfg,
		lib:         lib,
		rng:         rng,
		act:         1,
		zone:        1,
		wave:        1,
		Logs:        []api.LogEntry{},
	}

	inst.Rewards = NewRewardProcessor(inst)
	inst.Director = NewSpawnDirector(inst)
	inst.Bus.SubscribeFunc(events.EventEnemyDied, inst.onEnemyDied)

	inst.Replay = &domain.ReplaySession{
		RunID:     inst.RunID,
		Seed:      seed,
		TickRate:  cfg.TickRate,
		Timestamp: time.Now().Unix(),
		Actions:   make([]domain.ReplayAction, 0),
	}
	if keyframe, err := inst.encodeKeyframe(); err == nil {
		inst.Replay.Keyframe = keyframe
	} else {
		logger.Log.WithError(err).Warn("Keyframe capture failed, replay will start from defaults")
	}

	return inst, nil
}

// Run крутит цикл реального времени ЭТОГО инстанса до отмены контекста.
// Команды и замена контента обрабатываются между тиками, внутри той же
// горутины - симуляция однопоточная.
func (i *Instance) Run(ctx context.Context) {
	defer close(i.done)

	log := logger.Log.WithFields(logrus.Fields{
		"component":   "instance",
		"instance_id": i.ID,
		"run_id":      i.RunID,
		"seed":        i.Seed,
	})
	log.Info("Simulation loop started")

	ticker := time.NewTicker(i.cfg.TickInterval())
	defer ticker.Stop()

	tickMs := i.cfg.TickMs()
	sinceBroadcast := 0.0

	for {
		select {
		case <-ctx.Done():
			log.Info("Simulation loop stopped")
			return

		case lib := <-i.LibChan:
			i.swapLibrary(lib)

		case cmd := <-i.CommandChan:
			i.executeCommand(cmd)

		case <-ticker.C:
			i.Update(tickMs)

			sinceBroadcast += tickMs
			if sinceBroadcast >= stateBroadcastMs {
				sinceBroadcast = 0
				i.publishState()
			}
		}
	}
}

// Update - один кадр симуляции. Порядок фаз фиксирован:
// таймеры -> враги -> модули -> снаряды -> отложенные возвраты.
// Вся мутация синхронная, к концу кадра состояние согласовано.
func (i *Instance) Update(deltaMs float64) {
	i.nowMs += deltaMs
	now := i.nowMs

	// 1. Отложенные колбэки: возврат трупов, запланированные спавны,
	// межволновые паузы.
	i.Timers.Advance(now)

	// 2. Враги: шаг к танку и атака по готовности. Умирающие
	// пропускаются внутри Advance, из кандидатов исключаются здесь.
	i.enemyBuf = arena.CollectActive[*domain.Enemy](i.enemies, i.enemyBuf[:0])
	tankPos := cp.Vector{X: domain.TankX, Y: domain.GroundY}

	alive := i.aliveBuf[:0]
	for _, e := range i.enemyBuf {
		if !e.Alive() {
			continue
		}
		systems.Advance(e, i.Tank, tankPos, now, deltaMs)
		alive = append(alive, e)
	}
	i.aliveBuf = alive

	// 3. Модули: кулдауны, авто-скиллы, стрельба. Направленную
	// фильтрацию кандидатов менеджер делает сам по каждому слоту.
	i.Manager.UpdateAll(now, deltaMs, alive)

	// 4. Снаряды: наведение, интеграция, коллизии, AoE.
	i.updateProjectiles(deltaMs, alive)

	// 5. События тика уходят клиентам одной пачкой.
	i.flushEvents()
}

// flushEvents отправляет накопленные события кадра. Слайс отдается
// хабу насовсем: его читают горутины клиентов.
func (i *Instance) flushEvents() {
	if len(i.pendingEvents) == 0 {
		return
	}
	if i.Service == nil || i.Service.Hub.SubscriberCount() == 0 {
		i.pendingEvents = i.pendingEvents[:0]
		return
	}

	i.Service.Hub.Broadcast(api.ServerResponse{
		Type:   api.MsgEvents,
		RunID:  i.RunID,
		TimeMs: i.nowMs,
		Events: i.pendingEvents,
	})
	i.pendingEvents = nil
}

// updateProjectiles прогоняет все снаряды в полете. Возвраты в пул
// копятся в буфере и выполняются после обхода: пул нельзя мутировать
// во время итерации по активным.
func (i *Instance) updateProjectiles(deltaMs float64, alive []*domain.Enemy) {
	i.projBuf = arena.CollectActive[*domain.Projectile](i.projectiles, i.projBuf[:0])
	i.releaseBuf = i.releaseBuf[:0]

	for _, p := range i.projBuf {
		if !p.InFlight() {
			i.releaseBuf = append(i.releaseBuf, p.ID())
			continue
		}

		i.steerHoming(p)

		if !p.Advance(deltaMs) {
			p.Expire()
			i.releaseBuf = append(i.releaseBuf, p.ID())
			continue
		}

		// Навесные резолвятся при касании земли: AoE по точке падения.
		if p.HitGround() {
			systems.ApplyAoE(p.Pos, p.AoERadius, alive, p.Damage, p.IsCrit)
			p.ResolveHit()
			i.releaseBuf = append(i.releaseBuf, p.ID())
			continue
		}

		if i.resolveCollisions(p, alive) {
			i.releaseBuf = append(i.releaseBuf, p.ID())
			continue
		}

		if !i.Field.Contains(p.Pos) {
			p.Expire()
			i.releaseBuf = append(i.releaseBuf, p.ID())
		}
	}

	for _, id := range i.releaseBuf {
		if err := i.projectiles.Release(id); err != nil {
			logger.Log.WithError(err).WithField("projectile_id", id).Warn("Projectile release failed")
		}
	}
}

// resolveCollisions бьет по врагам в радиусе перехвата снаряда.
// Возвращает true, когда полет закончен. Пробивающий снаряд каждого
// врага бьет не больше одного раза и летит дальше.
func (i *Instance) resolveCollisions(p *domain.Projectile, alive []*domain.Enemy) bool {
	for _, e := range alive {
		if !e.Alive() {
			continue // умер раньше в этом же проходе
		}
		if p.HasHit(e.ID()) {
			continue
		}
		if p.Pos.Distance(e.Pos) > domain.ProjectileHitRadius {
			continue
		}

		// AoE бьет всех в радиусе от точки удара, не только цель.
		if p.AoERadius > 0 {
			systems.ApplyAoE(p.Pos, p.AoERadius, alive, p.Damage, p.IsCrit)
			p.ResolveHit()
			return true
		}

		systems.ApplyDamage(e, p.Damage, p.IsCrit)
		if !p.Piercing {
			p.ResolveHit()
			return true
		}
		p.MarkHit(e.ID())
	}
	return false
}

// steerHoming доворачивает самонаводящийся снаряд точно на цель,
// сохраняя модуль скорости. Цель умерла или протухла - снаряд дальше
// летит по прямой.
func (i *Instance) steerHoming(p *domain.Projectile) {
	if p.Homing == types.NilEntityID {
		return
	}
	target := i.resolver.Enemy(p.Homing)
	if target == nil || !target.Alive() {
		p.Homing = types.NilEntityID
		return
	}

	to := target.Pos.Sub(p.Pos)
	if to.LengthSq() == 0 {
		return
	}
	speed := p.Vel.Length()
	if speed == 0 {
		return
	}
	p.Vel = to.Normalize().Mult(speed)
}

// onEnemyDied ставит отложенный возврат трупа в пул: труп висит в
// состоянии dying на время смертельной паузы и в таргетинг не попадает.
func (i *Instance) onEnemyDied(ev events.Event) {
	died, ok := ev.Data.(events.EnemyDied)
	if !ok {
		return
	}

	delay := i.lib.Progression.DeathDelayMs
	if delay <= 0 {
		delay = 1000
	}

	enemyID := died.EnemyID
	i.Timers.Schedule(i.nowMs+delay, "corpse_release", func(float64) {
		if err := i.enemies.Release(enemyID); err != nil {
			logger.Log.WithError(err).WithField("enemy_id", enemyID).Warn("Corpse release failed")
		}
	})
}

// --- Спавн ---

// SpawnEnemy активирует врага из пула на краю поля. Исчерпанный пул -
// ошибка для вызывающего: директор волн по ней перепланирует спавн.
func (i *Instance) SpawnEnemy(archetype string, side enums.Side) error {
	cfg, err := i.lib.EnemyConfig(archetype, i.act, i.zone, i.wave)
	if err != nil {
		return err
	}

	obj, err := i.enemies.Get()
	if err != nil {
		return err
	}
	e := obj.(*domain.Enemy)

	if err := e.Activate(i.Field.SpawnPos(side), cfg, side); err != nil {
		_ = i.enemies.Release(e.ID())
		return err
	}

	i.Director.NoteSpawned()
	return nil
}

// SpawnWave планирует волну по таблицам контента. Возвращает число
// врагов, поставленных в очередь спавна.
func (i *Instance) SpawnWave(act, zone, wave int) (int, error) {
	if err := i.SetProgress(act, zone, wave); err != nil {
		return 0, err
	}

	orders := forge.ComposeWave(i.lib, i.rng, act, zone, wave)
	if len(orders) == 0 {
		return 0, fmt.Errorf("wave %d-%d-%d composed empty: no archetypes in library", act, zone, wave)
	}

	i.Director.BeginWave(orders)
	return len(orders), nil
}

// --- handlers.Runner ---

func (i *Instance) NowMs() float64         { return i.nowMs }
func (i *Instance) Rand() *rand.Rand       { return i.rng }
func (i *Instance) Library() *defs.Library { return i.lib }

func (i *Instance) Progress() (act, zone, wave int) {
	return i.act, i.zone, i.wave
}

// SetProgress перематывает точку прогрессии. Масштабирование врагов
// применяется только к будущим спавнам.
func (i *Instance) SetProgress(act, zone, wave int) error {
	if act < 1 || zone < 1 || wave < 1 {
		return fmt.Errorf("progress %d-%d-%d out of range", act, zone, wave)
	}
	i.act, i.zone, i.wave = act, zone, wave
	return nil
}

// AliveEnemies возвращает срез живых врагов текущего кадра. Срез
// переиспользуется между кадрами, наружу он уходит только внутри
// синхронной обработки команды.
func (i *Instance) AliveEnemies() []*domain.Enemy {
	alive := i.aliveBuf[:0]
	arena.ForEachActive(i.enemies, func(e *domain.Enemy) {
		if e.Alive() {
			alive = append(alive, e)
		}
	})
	i.aliveBuf = alive
	return alive
}

// Snapshot собирает полный DTO-снапшот для клиента.
func (i *Instance) Snapshot() *api.StateView {
	return buildState(i)
}

// Done закрывается после выхода из Run.
func (i *Instance) Done() <-chan struct{} { return i.done }

// DebugPools возвращает счетчики пулов для debug-эндпоинтов.
// Читается из HTTP-горутины без блокировок: цифры могут отставать
// на кадр, для дебага этого достаточно.
func (i *Instance) DebugPools() map[string]interface{} {
	dump := make(map[string]interface{}, 2)
	for name, pool := range map[string]*arena.Pool{
		"enemies":     i.enemies,
		"projectiles": i.projectiles,
	} {
		active, inactive, expansions := pool.Counts()
		dump[name] = map[string]int{
			"active":     active,
			"inactive":   inactive,
			"expansions": expansions,
			"total":      pool.Total(),
		}
	}
	return dump
}

// --- Команды ---

// executeCommand выполняет команду клиента внутри горутины симуляции.
// Ответ уходит адресно отправителю, свежий снапшот прикладывается
// к каждому ответу.
func (i *Instance) executeCommand(cmd domain.InternalCommand) {
	handler, ok := i.Service.actionHandlers[cmd.Action]
	if !ok {
		logger.Log.WithFields(logrus.Fields{
			"instance": i.ID,
			"action":   cmd.Action.String(),
		}).Warn("No handler for action")
		i.replyError(cmd.ClientID, fmt.Sprintf("Неизвестное действие: %s", cmd.Action))
		return
	}

	i.recordAction(cmd)

	ctx := handlers.Context{
		Run:     i,
		Tank:    i.Tank,
		Manager: i.Manager,
	}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"instance": i.ID,
			"action":   cmd.Action.String(),
		}).WithError(err).Warn("Command rejected")
		i.replyError(cmd.ClientID, err.Error())
		return
	}

	if result.Msg != "" {
		i.AddLog(result.Msg, result.MsgType)
	}

	// Снапшот собирается только для живого подписчика: при прокрутке
	// реплея и командах ботов без соединения это пустая работа.
	if !i.Service.Hub.HasSubscriber(cmd.ClientID) {
		return
	}
	state := result.State
	if state == nil {
		state = i.Snapshot()
	}
	i.Service.Hub.SendTo(cmd.ClientID, api.ServerResponse{
		Type:   api.MsgState,
		RunID:  i.RunID,
		TimeMs: i.nowMs,
		State:  state,
		Logs:   i.Logs,
	})
}

// recordAction пишет команду в ленту реплея. STATE не мутирует
// симуляцию и в ленту не попадает.
func (i *Instance) recordAction(cmd domain.InternalCommand) {
	if cmd.Action == domain.ActionState {
		return
	}
	i.Replay.Actions = append(i.Replay.Actions, domain.ReplayAction{
		AtMs:     i.nowMs,
		ClientID: cmd.ClientID,
		Action:   cmd.Action,
		Payload:  cmd.Payload,
	})
}

func (i *Instance) replyError(clientID, msg string) {
	if clientID == "" {
		return
	}
	i.Service.Hub.SendTo(clientID, api.ServerResponse{
		Type:   api.MsgError,
		RunID:  i.RunID,
		TimeMs: i.nowMs,
		Error:  msg,
	})
}

// publishState рассылает снапшот всем подписчикам инстанса.
func (i *Instance) publishState() {
	if i.Service == nil || i.Service.Hub.SubscriberCount() == 0 {
		return
	}
	i.Service.Hub.Broadcast(api.ServerResponse{
		Type:   api.MsgState,
		RunID:  i.RunID,
		TimeMs: i.nowMs,
		State:  i.Snapshot(),
		Logs:   i.Logs,
	})
}

// swapLibrary подменяет библиотеку контента на лету. Экипированные
// модули продолжают жить со старыми дефами до переэкипировки - так
// горячая правка баланса не ломает активные кулдауны.
func (i *Instance) swapLibrary(lib *defs.Library) {
	if lib == nil {
		return
	}
	i.lib = lib
	i.Manager.RefreshLibrary(lib)
	i.Bus.Emit(events.EventDefsReloaded, events.DefsReloaded{Path: i.cfg.DefsDir})
	logger.Log.WithField("instance", i.ID).Info("Content library swapped")
}
