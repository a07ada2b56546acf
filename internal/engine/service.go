package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/umutterol/hellcrawler-sub001/internal/defs"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
	"github.com/umutterol/hellcrawler-sub001/internal/engine/handlers"
	"github.com/umutterol/hellcrawler-sub001/internal/engine/handlers/actions"
	"github.com/umutterol/hellcrawler-sub001/internal/engine/handlers/admin"
	"github.com/umutterol/hellcrawler-sub001/internal/events"
	"github.com/umutterol/hellcrawler-sub001/internal/infrastructure/storage"
	"github.com/umutterol/hellcrawler-sub001/internal/network"
	"github.com/umutterol/hellcrawler-sub001/pkg/api"
	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

// SimService владеет тем, что общее для всех инстансов симуляции:
// реестром хендлеров, хабом рассылки, библиотекой контента и
// хранилищами. Сам он ничего не симулирует - только маршрутизирует
// команды и ретранслирует события.
type SimService struct {
	cfg *Config

	Hub      *network.Broadcaster
	Profiles *storage.ProfileStore

	actionHandlers map[domain.ActionType]handlers.HandlerFunc

	mu        sync.RWMutex
	instances map[int]*Instance
	defaultID int
	nextID    int
	lib       *defs.Library

	watcher *defs.Watcher
}

func NewService(cfg *Config) (*SimService, error) {
	lib, err := defs.LoadLibrary(cfg.DefsDir)
	if err != nil {
		return nil, fmt.Errorf("load content library: %w", err)
	}

	s := &SimService{
		cfg:            cfg,
		Hub:            network.NewBroadcaster(),
		Profiles:       storage.NewProfileStore(cfg.SaveDir),
		actionHandlers: make(map[domain.ActionType]handlers.HandlerFunc),
		instances:      make(map[int]*Instance),
		lib:            lib,
	}
	s.registerHandlers()
	return s, nil
}

func (s *SimService) registerHandlers() {
	s.actionHandlers[domain.ActionState] = handlers.WithEmptyPayload(actions.HandleState)
	s.actionHandlers[domain.ActionSpawnEnemy] = handlers.WithPayload(actions.HandleSpawnEnemy)
	s.actionHandlers[domain.ActionSpawnWave] = handlers.WithPayload(actions.HandleSpawnWave)
	s.actionHandlers[domain.ActionEquip] = handlers.WithPayload(actions.HandleEquip)
	s.actionHandlers[domain.ActionUnequip] = handlers.WithPayload(actions.HandleUnequip)
	s.actionHandlers[domain.ActionUpgradeStat] = handlers.WithPayload(actions.HandleUpgradeStat)
	s.actionHandlers[domain.ActionUnlockSlot] = handlers.WithPayload(actions.HandleUnlockSlot)
	s.actionHandlers[domain.ActionSellItem] = handlers.WithPayload(actions.HandleSellItem)
	s.actionHandlers[domain.ActionActivateSkill] = handlers.WithPayload(actions.HandleActivateSkill)
	s.actionHandlers[domain.ActionToggleAuto] = handlers.WithPayload(actions.HandleToggleAuto)
	s.actionHandlers[domain.ActionSave] = handlers.WithPayload(actions.HandleSave)
	s.actionHandlers[domain.ActionLoad] = handlers.WithPayload(actions.HandleLoad)
	s.actionHandlers[domain.ActionCheat] = handlers.WithPayload(admin.HandleCheat)
}

// Start поднимает дефолтный инстанс и, если настроено, вотчер
// контента. Остановка - через отмену контекста.
func (s *SimService) Start(ctx context.Context) error {
	inst, err := s.CreateInstance(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.defaultID = inst.ID
	s.mu.Unlock()

	if s.cfg.WatchDefs {
		if err := s.startWatcher(ctx); err != nil {
			// Вотчер - удобство разработки, не причина не стартовать.
			logger.Log.WithError(err).Warn("Defs watcher unavailable")
		}
	}

	if s.cfg.AutoWaves {
		// Первая волна запускается как обычная команда: так она
		// попадает в ленту реплея и исполняется в горутине симуляции.
		inst.CommandChan <- domain.InternalCommand{Action: domain.ActionSpawnWave}
	}

	return nil
}

// CreateInstance собирает инстанс, вешает на его шину ретранслятор
// событий и запускает цикл симуляции.
func (s *SimService) CreateInstance(ctx context.Context) (*Instance, error) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	lib := s.lib
	s.mu.Unlock()

	inst, err := NewInstance(id, s.cfg, lib, s)
	if err != nil {
		return nil, err
	}
	s.attachEventRelay(inst)

	s.mu.Lock()
	s.instances[id] = inst
	s.mu.Unlock()

	go inst.Run(ctx)

	logger.Log.WithFields(logrus.Fields{
		"component":   "service",
		"instance_id": id,
		"run_id":      inst.RunID,
	}).Info("Instance created")
	return inst, nil
}

// DefaultInstance - инстанс, в который маршрутизируются команды
// клиентов. Мультиинстансовость оставлена для ботов и бенчмарков.
func (s *SimService) DefaultInstance() *Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.instances[s.defaultID]
}

func (s *SimService) Instance(id int) *Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.instances[id]
}

// ProcessCommand принимает команду из внешнего мира (WebSocket, бот)
// и передает её в горутину симуляции. Неизвестное действие отбивается
// сразу, не занимая канал.
func (s *SimService) ProcessCommand(external api.ClientCommand) {
	actionType := domain.ParseAction(external.Action)
	if actionType == domain.ActionUnknown {
		logger.Log.WithField("action", external.Action).Warn("Unknown action rejected")
		s.Hub.SendTo(external.ClientID, api.ServerResponse{
			Type:  api.MsgError,
			Error: fmt.Sprintf("Неизвестное действие: %s", external.Action),
		})
		return
	}

	inst := s.DefaultInstance()
	if inst == nil {
		s.Hub.SendTo(external.ClientID, api.ServerResponse{
			Type:  api.MsgError,
			Error: "Симуляция не запущена.",
		})
		return
	}

	inst.CommandChan <- domain.InternalCommand{
		Action:   actionType,
		ClientID: external.ClientID,
		Payload:  external.Payload,
	}
}

// attachEventRelay зеркалит всю шину инстанса в кадровый буфер:
// инстанс сбрасывает его клиентам пачкой в конце каждого тика.
// Подписка идет последней, после игровых слушателей - клиент видит
// события уже примененными.
func (s *SimService) attachEventRelay(inst *Instance) {
	relay := func(ev events.Event) {
		inst.pendingEvents = append(inst.pendingEvents, api.EventFrame{
			Type: ev.Type.String(),
			Data: ev.Data,
		})
	}
	for _, t := range events.AllTypes() {
		inst.Bus.SubscribeFunc(t, relay)
	}
}

// startWatcher следит за каталогом контента и раздает свежие
// библиотеки всем инстансам.
func (s *SimService) startWatcher(ctx context.Context) error {
	watcher, err := defs.WatchDir(s.cfg.DefsDir)
	if err != nil {
		return err
	}
	s.watcher = watcher

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return

			case lib, ok := <-watcher.Reloads:
				if !ok {
					return
				}
				s.mu.Lock()
				s.lib = lib
				instances := make([]*Instance, 0, len(s.instances))
				for _, inst := range s.instances {
					instances = append(instances, inst)
				}
				s.mu.Unlock()

				for _, inst := range instances {
					select {
					case inst.LibChan <- lib:
					default:
						// Инстанс еще не проглотил прошлую замену -
						// эта новее, вытесняем.
						select {
						case <-inst.LibChan:
						default:
						}
						inst.LibChan <- lib
					}
				}
				logger.Log.Info("Content library reloaded from disk")

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Log.WithError(err).Warn("Defs watcher error")
			}
		}
	}()
	return nil
}

// DumpReplay пишет ленту действий инстанса на диск. Вызывается после
// остановки цикла симуляции, когда лента больше не мутируется.
func (s *SimService) DumpReplay(inst *Instance, path string) error {
	if inst == nil || inst.Replay == nil {
		return fmt.Errorf("no replay to dump")
	}
	return storage.WriteReplay(path, inst.Replay)
}

// Shutdown дожидается остановки циклов симуляции (контекст уже должен
// быть отменен) и сбрасывает ленты всех инстансов в каталог сохранений.
func (s *SimService) Shutdown() {
	s.mu.RLock()
	instances := make([]*Instance, 0, len(s.instances))
	for _, inst := range s.instances {
		instances = append(instances, inst)
	}
	s.mu.RUnlock()

	store := storage.NewReplayStore(s.cfg.SaveDir)
	for _, inst := range instances {
		<-inst.Done()

		path, err := store.Save(inst.Replay)
		if err != nil {
			logger.Log.WithFields(logrus.Fields{
				"component":   "service",
				"instance_id": inst.ID,
			}).WithError(err).Error("Failed to dump replay")
			continue
		}
		logger.Log.WithFields(logrus.Fields{
			"component":   "service",
			"instance_id": inst.ID,
			"actions":     len(inst.Replay.Actions),
			"path":        path,
		}).Info("Replay saved")
	}
}
