package actions

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/umutterol/hellcrawler-sub001/internal/engine/handlers"
	"github.com/umutterol/hellcrawler-sub001/pkg/api"
)

// HandleEquip обрабатывает команду EQUIP - установка модуля из инвентаря в слот.
func HandleEquip(ctx handlers.Context, p api.EquipPayload) (handlers.Result, error) {
	itemID, err := uuid.Parse(p.ItemID)
	if err != nil {
		return handlers.Result{Msg: "Некорректный ID предмета.", MsgType: "ERROR"}, nil
	}

	if err := ctx.Manager.Equip(p.SlotIndex, itemID); err != nil {
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("Модуль установлен в слот %d.", p.SlotIndex),
		MsgType: "INFO",
	}, nil
}
