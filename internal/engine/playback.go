package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/umutterol/hellcrawler-sub001/internal/domain"
	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

// PlaybackSummary - итог детерминированной прокрутки реплея.
type PlaybackSummary struct {
	RunID          string
	Seed           int64
	DurationMs     float64
	ActionsApplied int
	Kills          int

	TankHealth int
	TankLevel  int
	Gold       int

	Act  int
	Zone int
	Wave int
}

func (s *PlaybackSummary) String() string {
	return fmt.Sprintf(
		"run %s (seed %d): %.0f ms, %d actions, %d kills, tank HP %d lvl %d, %d gold, progress %d-%d-%d",
		s.RunID, s.Seed, s.DurationMs, s.ActionsApplied, s.Kills,
		s.TankHealth, s.TankLevel, s.Gold, s.Act, s.Zone, s.Wave,
	)
}

// Playback прокручивает ленту реплея с фиксированным шагом и возвращает
// итоговое состояние. Реального времени нет: миллисекунды симуляции
// отсчитываются тиками, команды исполняются на тех же границах кадров,
// на которых были записаны. tailMs докручивает бой после последнего
// действия, чтобы выпущенные снаряды и волны успели отыграть.
//
// Детерминизм держится на трех вещах: сид из ленты, фиксированный
// tick rate и те же таблицы контента, что при записи.
func Playback(session *domain.ReplaySession, cfg *Config, tailMs float64) (*PlaybackSummary, error) {
	if session == nil {
		return nil, fmt.Errorf("nil replay session")
	}

	pcfg := *cfg
	pcfg.Seed = session.Seed
	pcfg.WatchDefs = false
	if session.TickRate > 0 {
		pcfg.TickRate = session.TickRate
	}
	// AutoWaves остается как в конфиге записи: стартовая волна лежит
	// в ленте командой, а автопереходы между волнами - внутренние
	// таймеры, они детерминированно повторятся сами.

	svc, err := NewService(&pcfg)
	if err != nil {
		return nil, err
	}

	inst, err := NewInstance(0, &pcfg, svc.lib, svc)
	if err != nil {
		return nil, err
	}
	svc.instances[0] = inst
	svc.defaultID = 0

	if len(session.Keyframe) > 0 {
		prof, err := decodeKeyframe(session.Keyframe)
		if err != nil {
			return nil, err
		}
		if err := applyProfile(inst, prof); err != nil {
			return nil, fmt.Errorf("apply keyframe: %w", err)
		}
	}

	log := logger.Log.WithFields(logrus.Fields{
		"component": "playback",
		"run_id":    session.RunID,
		"seed":      session.Seed,
		"actions":   len(session.Actions),
	})
	log.Info("Playback started")

	tickMs := pcfg.TickMs()
	applied := 0

	for _, action := range session.Actions {
		// Докручиваем кадры до границы, на которой действие было
		// записано. Эпсилон прощает накопленную погрешность сложения.
		for inst.nowMs < action.AtMs-1e-6 {
			inst.Update(tickMs)
		}
		inst.executeCommand(domain.InternalCommand{
			Action:   action.Action,
			ClientID: action.ClientID,
			Payload:  action.Payload,
		})
		applied++
	}

	endAt := inst.nowMs + tailMs
	for inst.nowMs < endAt {
		inst.Update(tickMs)
	}

	summary := &PlaybackSummary{
		RunID:          session.RunID,
		Seed:           session.Seed,
		DurationMs:     inst.nowMs,
		ActionsApplied: applied,
		Kills:          inst.Rewards.Kills(),
		TankHealth:     inst.Tank.Health(),
		TankLevel:      inst.Tank.Level(),
		Gold:           inst.Tank.Gold(),
		Act:            inst.act,
		Zone:           inst.zone,
		Wave:           inst.wave,
	}
	log.WithField("kills", summary.Kills).Info("Playback finished")
	return summary, nil
}
