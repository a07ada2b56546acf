package actions

import (
	"github.com/umutterol/hellcrawler-sub001/internal/engine/handlers"
	"github.com/umutterol/hellcrawler-sub001/pkg/api"
)

// HandleSave обрабатывает команду SAVE - запись профиля на диск.
// Пустой путь означает дефолтный файл каталога сохранений.
func HandleSave(ctx handlers.Context, p api.PersistPayload) (handlers.Result, error) {
	if err := ctx.Run.SaveProfile(p.Path); err != nil {
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}
	return handlers.Result{Msg: "Профиль сохранен.", MsgType: "INFO"}, nil
}

// HandleLoad обрабатывает команду LOAD - восстановление профиля.
// После загрузки клиенту сразу уходит свежий снапшот.
func HandleLoad(ctx handlers.Context, p api.PersistPayload) (handlers.Result, error) {
	if err := ctx.Run.LoadProfile(p.Path); err != nil {
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}
	return handlers.Result{
		Msg:     "Профиль загружен.",
		MsgType: "INFO",
		State:   ctx.Run.Snapshot(),
	}, nil
}
