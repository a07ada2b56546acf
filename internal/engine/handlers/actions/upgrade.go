package actions

import (
	"fmt"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/engine/handlers"
	"github.com/umutterol/hellcrawler-sub001/pkg/api"
)

// HandleUpgradeStat обрабатывает команду UPGRADE_STAT - прокачка
// характеристики слота за золото.
func HandleUpgradeStat(ctx handlers.Context, p api.UpgradeStatPayload) (handlers.Result, error) {
	stat := enums.ParseSlotStat(p.Stat)
	if err := ctx.Manager.UpgradeStat(p.SlotIndex, stat); err != nil {
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}

	slot := ctx.Manager.Slot(p.SlotIndex)
	level := 0
	if slot != nil {
		level = slot.Stats.Level(stat)
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("Слот %d: %s теперь уровня %d.", p.SlotIndex, stat, level),
		MsgType: "INFO",
	}, nil
}
