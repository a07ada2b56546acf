package actions

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/umutterol/hellcrawler-sub001/internal/engine/handlers"
	"github.com/umutterol/hellcrawler-sub001/pkg/api"
	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

// HandleUnequip обрабатывает команду UNEQUIP - снятие модуля из слота в инвентарь.
func HandleUnequip(ctx handlers.Context, p api.UnequipPayload) (handlers.Result, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"component": "unequip_handler",
		"slot":      p.SlotIndex,
	})

	if err := ctx.Manager.Unequip(p.SlotIndex); err != nil {
		log.WithError(err).Warn("Unequip rejected")
		return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("Модуль снят со слота %d.", p.SlotIndex),
		MsgType: "INFO",
	}, nil
}
