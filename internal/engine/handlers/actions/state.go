package actions

import (
	"github.com/umutterol/hellcrawler-sub001/internal/engine/handlers"
)

// HandleState обрабатывает команду STATE - полный снапшот симуляции.
// Никаких мутаций, клиент получает то же, что рассылается после команд.
func HandleState(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{State: ctx.Run.Snapshot()}, nil
}
