package actions

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/umutterol/hellcrawler-sub001/internal/engine/handlers"
	"github.com/umutterol/hellcrawler-sub001/pkg/api"
)

// HandleSellItem обрабатывает команду SELL_ITEM - продажа предмета
// из инвентаря. Экипированные предметы сначала снимаются командой UNEQUIP.
func HandleSellItem(ctx handlers.Context, p api.SellItemPayload) (handlers.Result, error) {
	itemID, err := uuid.Parse(p.ItemID)
	if err != nil {
		return handlers.Result{Msg: "Некорректный ID предмета.", MsgType: "ERROR"}, nil
	}

	gold, err := ctx.Manager.SellItem(itemID)
	if err != nil {
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("Предмет продан за %d золота.", gold),
		MsgType: "INFO",
	}, nil
}
