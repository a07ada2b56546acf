package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/umutterol/hellcrawler-sub001/pkg/api"
	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

// Сколько последних записей боевого лога держим в памяти инстанса.
const logHistoryCap = 200

// AddLog добавляет запись в боевой лог инстанса. ID и метка времени
// берутся из симуляционного времени, а не из настенных часов, чтобы
// реплей давал байт-в-байт тот же лог.
func (i *Instance) AddLog(text, logType string) {
	i.logSeq++
	i.Logs = append(i.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%d_%d", i.ID, i.logSeq),
		Text:      text,
		Type:      logType,
		Timestamp: int64(i.nowMs),
	})
	if len(i.Logs) > logHistoryCap {
		i.Logs = i.Logs[len(i.Logs)-logHistoryCap:]
	}

	logger.Log.WithFields(logrus.Fields{
		"instance":  i.ID,
		"component": "combat_log",
		"log_type":  logType,
	}).Info(text)
}
