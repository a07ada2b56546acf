package actions

import (
	"fmt"

	"github.com/umutterol/hellcrawler-sub001/internal/engine/handlers"
	"github.com/umutterol/hellcrawler-sub001/pkg/api"
)

// HandleActivateSkill обрабатывает команду ACTIVATE_SKILL - ручной запуск
// скилла модуля. Скилл на кулдауне или пустой слот - мягкий отказ без мутаций.
func HandleActivateSkill(ctx handlers.Context, p api.SkillPayload) (handlers.Result, error) {
	ok, err := ctx.Manager.ActivateSkill(p.SlotIndex, p.SkillIndex, ctx.Run.NowMs(), ctx.Run.AliveEnemies())
	if err != nil {
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}
	if !ok {
		return handlers.Result{Msg: "Скилл еще не готов.", MsgType: "ERROR"}, nil
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("Скилл %d слота %d активирован.", p.SkillIndex, p.SlotIndex),
		MsgType: "INFO",
	}, nil
}

// HandleToggleAuto обрабатывает команду TOGGLE_AUTO - переключение
// авторежима скилла. enabled=null инвертирует текущее состояние.
func HandleToggleAuto(ctx handlers.Context, p api.ToggleAutoPayload) (handlers.Result, error) {
	enabled, err := ctx.Manager.ToggleAuto(p.SlotIndex, p.SkillIndex, p.Enabled)
	if err != nil {
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}

	state := "выключен"
	if enabled {
		state = "включен"
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("Авторежим скилла %d слота %d %s.", p.SkillIndex, p.SlotIndex, state),
		MsgType: "INFO",
	}, nil
}
