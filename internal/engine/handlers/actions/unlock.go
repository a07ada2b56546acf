package actions

import (
	"fmt"

	"github.com/umutterol/hellcrawler-sub001/internal/engine/handlers"
	"github.com/umutterol/hellcrawler-sub001/pkg/api"
)

// HandleUnlockSlot обрабатывает команду UNLOCK_SLOT - покупка слота.
// Гейт по акту проверяет менеджер, нам нужен только текущий прогресс.
func HandleUnlockSlot(ctx handlers.Context, p api.UnlockSlotPayload) (handlers.Result, error) {
	act, _, _ := ctx.Run.Progress()

	if err := ctx.Manager.UnlockSlot(p.SlotIndex, act); err != nil {
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("Слот %d открыт.", p.SlotIndex),
		MsgType: "INFO",
	}, nil
}
