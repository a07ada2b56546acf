package engine

import "time"

// Config хранит параметры запуска симуляции.
type Config struct {
	// Seed - мастер-зерно забега. От него зависят состав волн,
	// роллы предметов и вся боевая случайность.
	Seed int64

	// ShardID метится в EntityID всех сущностей инстанса.
	ShardID uint8

	// TickRate - частота кадров реального времени, Гц.
	TickRate int

	// DefsDir - каталог YAML-определений. Пусто = встроенные дефолты.
	DefsDir string

	// WatchDefs - пересобирать библиотеку при изменении файлов каталога.
	WatchDefs bool

	// SaveDir - каталог профилей и реплеев.
	SaveDir string

	// AutoWaves - запускать волны автоматически после зачистки.
	// Выключено в тестах и при ручном управлении спавном.
	AutoWaves bool
}

// NewConfig создает конфиг по умолчанию (случайный сид).
func NewConfig() Config {
	return Config{
		Seed:      time.Now().UnixNano(),
		ShardID:   0,
		TickRate:  30,
		SaveDir:   "saves",
		AutoWaves: true,
	}
}

// TickInterval - длительность кадра реального времени.
func (c Config) TickInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 30
	}
	return time.Second / time.Duration(rate)
}

// TickMs - шаг симуляции в миллисекундах.
func (c Config) TickMs() float64 {
	rate := c.TickRate
	if rate <= 0 {
		rate = 30
	}
	return 1000.0 / float64(rate)
}
