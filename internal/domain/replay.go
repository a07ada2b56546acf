package domain

import "encoding/json"

// ReplayAction - запись одного внешнего действия над симуляцией.
type ReplayAction struct {
	AtMs     float64         `json:"at_ms"`   // время симуляции на момент команды
	ClientID string          `json:"client"`  // кто прислал
	Action   ActionType      `json:"action"`  // что сделал
	Payload  json.RawMessage `json:"payload"` // с какими параметрами
}

// ReplaySession - полная запись забега: сид, частота тиков, стартовый
// профиль и лента команд. Одинаковый сид, тот же tick rate и та же
// лента дают бит-в-бит тот же забег, так что для воспроизведения не
// нужно писать состояние мира покадрово.
type ReplaySession struct {
	RunID     string         `json:"run_id"`
	Seed      int64          `json:"seed"`
	TickRate  int            `json:"tick_rate"`
	Timestamp int64          `json:"timestamp"`
	Keyframe  []byte         `json:"-"` // msgpack-профиль на старте забега
	Actions   []ReplayAction `json:"actions"`
}
