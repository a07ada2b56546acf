package agent

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/umutterol/hellcrawler-sub001/internal/engine"
	"github.com/umutterol/hellcrawler-sub001/pkg/api"
	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

// Bot - headless-клиент для прогонов без фронтенда. Регистрируется в
// хабе как обычный игрок, получает снапшоты и отправляет команды,
// которые за него решает сценарий на tengo.
//
// Жизненный цикл:
//  1. NewBot - компиляция сценария, регистрация в хабе, личный Inbox.
//  2. Run - в отдельной горутине: снапшоты из Inbox обновляют __view,
//     тикер раз в decide_every_ms вызывает update(sim, view, state).
//  3. Сценарий шлет команды через sim.send - каждая команда приносит
//     свежий снапшот в ответ, так что картинка не застаивается.
//
// Сценарий определяет функцию update(sim, view, state) и может задать
// decide_every_ms на верхнем уровне. state - персистентная карта,
// живущая между вызовами (сам скрипт перезапускается целиком).
type Bot struct {
	ClientID string
	Sim      *engine.SimService
	Inbox    chan api.ServerResponse
	Interval time.Duration

	compiled *tengo.Compiled
	bridge   *tengo.ImmutableMap
	scratch  *tengo.Map
	view     *tengo.Map
}

// Диспетчер фаз дописывается к сценарию при компиляции. Фаза boot
// выполняет только верхний уровень скрипта (объявления и настройки).
const botDispatchScript = `
if __phase == "update" {
	update(__sim, __view, __state)
}
`

// DefaultScenario - сценарий по умолчанию: скиллы в авторежим, выкуп
// слотов по мере появления золота, экипировка лута, излишки - в урон.
const DefaultScenario = `
decide_every_ms := 500

update := func(sim, view, state) {
	if !state.auto_on {
		sim.send("TOGGLE_AUTO", {slot_index: 0, skill_index: 0, enabled: true})
		state.auto_on = true
		return
	}

	gold := view.tank.gold

	for i := 0; i < len(view.slots); i++ {
		s := view.slots[i]
		if !s.unlocked && s.unlock_cost > 0 && s.unlock_cost <= gold {
			sim.send("UNLOCK_SLOT", {slot_index: s.index})
			return
		}
	}

	if len(view.inventory) > 0 {
		for i := 0; i < len(view.slots); i++ {
			s := view.slots[i]
			if s.unlocked && !s.has_item {
				sim.send("EQUIP", {slot_index: s.index, item_id: view.inventory[0].id})
				return
			}
		}
	}

	if gold >= 500 {
		sim.send("UPGRADE_STAT", {slot_index: 0, stat: "DAMAGE"})
	}
}
`

const defaultDecideInterval = 500 * time.Millisecond

// NewBot компилирует сценарий и регистрирует бота в хабе. Пустой
// script означает DefaultScenario.
func NewBot(clientID string, sim *engine.SimService, script []byte) (*Bot, error) {
	if len(script) == 0 {
		script = []byte(DefaultScenario)
	}

	src := string(script) + "\n" + botDispatchScript
	s := tengo.NewScript([]byte(src))
	_ = s.Add("__phase", "")
	_ = s.Add("__sim", map[string]any{})
	_ = s.Add("__view", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, err
	}

	b := &Bot{
		ClientID: clientID,
		Sim:      sim,
		Inbox:    sim.Hub.Register(clientID),
		Interval: defaultDecideInterval,
		compiled: compiled,
		scratch:  &tengo.Map{Value: map[string]tengo.Object{}},
	}
	b.bridge = b.buildBridge()

	// Прогон верхнего уровня: объявления функций и настройки сценария.
	if err := b.runPhase("boot"); err != nil {
		sim.Hub.Unregister(clientID)
		return nil, err
	}
	if compiled.IsDefined("decide_every_ms") {
		if ms := compiled.Get("decide_every_ms").Int(); ms > 0 {
			b.Interval = time.Duration(ms) * time.Millisecond
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "bot",
		"client_id": clientID,
		"interval":  b.Interval,
	}).Info("Scenario bot ready")
	return b, nil
}

// Run крутит цикл бота до отмены контекста. Запускать в горутине.
func (b *Bot) Run(ctx context.Context) {
	defer b.Sim.Hub.Unregister(b.ClientID)

	ticker := time.NewTicker(b.Interval)
	defer ticker.Stop()

	// Первый снапшот запрашиваем сразу, не дожидаясь тика.
	b.send("STATE", nil)

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-b.Inbox:
			if !ok {
				return
			}
			if msg.Type == api.MsgState && msg.State != nil {
				b.view = buildScriptView(msg.State)
			}

		case <-ticker.C:
			if b.view == nil {
				b.send("STATE", nil)
				continue
			}
			if err := b.runPhase("update"); err != nil {
				logger.Log.WithFields(logrus.Fields{
					"component": "bot",
					"client_id": b.ClientID,
				}).WithError(err).Warn("Scenario script error")
			}
		}
	}
}

func (b *Bot) runPhase(phase string) error {
	view := b.view
	if view == nil {
		view = &tengo.Map{Value: map[string]tengo.Object{}}
	}

	if err := b.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := b.compiled.Set("__sim", b.bridge); err != nil {
		return err
	}
	if err := b.compiled.Set("__view", view); err != nil {
		return err
	}
	if err := b.compiled.Set("__state", b.scratch); err != nil {
		return err
	}
	return b.compiled.Run()
}

// buildBridge собирает мост sim.* - функции, доступные сценарию.
func (b *Bot) buildBridge() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["send"] = &tengo.UserFunction{Name: "send", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		action := strings.TrimSpace(objectAsString(args[0]))
		if action == "" {
			return tengo.FalseValue, nil
		}
		var payload interface{}
		if len(args) > 1 {
			payload = objectToAny(args[1])
		}
		b.send(action, payload)
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		logger.Log.WithFields(logrus.Fields{
			"component": "bot",
			"client_id": b.ClientID,
		}).Info(objectAsString(args[0]))
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func (b *Bot) send(action string, payload interface{}) {
	cmd := api.ClientCommand{Action: action, ClientID: b.ClientID}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			logger.Log.WithFields(logrus.Fields{
				"component": "bot",
				"client_id": b.ClientID,
				"action":    action,
			}).WithError(err).Warn("Failed to marshal bot payload")
			return
		}
		cmd.Payload = raw
	}
	b.Sim.ProcessCommand(cmd)
}

// buildScriptView конвертирует DTO-снапшот в объекты tengo. Сценарию
// отдается ровно то, что видит обычный клиент, ничего изнутри движка.
func buildScriptView(s *api.StateView) *tengo.Map {
	tank := map[string]tengo.Object{}
	if s.Tank != nil {
		tank["health"] = &tengo.Int{Value: int64(s.Tank.Health)}
		tank["max_health"] = &tengo.Int{Value: int64(s.Tank.MaxHealth)}
		tank["level"] = &tengo.Int{Value: int64(s.Tank.Level)}
		tank["xp"] = &tengo.Int{Value: int64(s.Tank.XP)}
		tank["gold"] = &tengo.Int{Value: int64(s.Tank.Gold)}
	}

	slots := make([]tengo.Object, 0, len(s.Slots))
	for _, sv := range s.Slots {
		slots = append(slots, &tengo.Map{Value: map[string]tengo.Object{
			"index":       &tengo.Int{Value: int64(sv.Index)},
			"unlocked":    boolObject(sv.Unlocked),
			"unlock_cost": &tengo.Int{Value: int64(sv.UnlockCost)},
			"has_item":    boolObject(sv.Item != nil),
		}})
	}

	items := make([]tengo.Object, 0, len(s.Inventory))
	for _, iv := range s.Inventory {
		items = append(items, &tengo.Map{Value: map[string]tengo.Object{
			"id":     &tengo.String{Value: iv.ID},
			"class":  &tengo.String{Value: iv.Class},
			"rarity": &tengo.String{Value: iv.Rarity},
		}})
	}

	return &tengo.Map{Value: map[string]tengo.Object{
		"time_ms":     &tengo.Float{Value: s.TimeMs},
		"act":         &tengo.Int{Value: int64(s.Act)},
		"zone":        &tengo.Int{Value: int64(s.Zone)},
		"wave":        &tengo.Int{Value: int64(s.Wave)},
		"enemy_count": &tengo.Int{Value: int64(len(s.Enemies))},
		"tank":        &tengo.Map{Value: tank},
		"slots":       &tengo.Array{Value: slots},
		"inventory":   &tengo.Array{Value: items},
	}}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return v.Value
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
