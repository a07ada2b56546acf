package handlers

import (
	"encoding/json"
	"math/rand"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/internal/defs"
	"github.com/umutterol/hellcrawler-sub001/internal/domain"
	"github.com/umutterol/hellcrawler-sub001/internal/modules"
	"github.com/umutterol/hellcrawler-sub001/pkg/api"
)

// Runner - операции инстанса, доступные хендлерам.
// Instance реализует этот интерфейс неявно; пакет handlers не знает
// движок, только его способности.
type Runner interface {
	NowMs() float64
	Rand() *rand.Rand
	Library() *defs.Library

	// Progress - текущая точка прогрессии забега.
	Progress() (act, zone, wave int)
	// SetProgress переставляет точку прогрессии (читы, загрузка).
	SetProgress(act, zone, wave int) error

	// AliveEnemies - снапшот живых врагов на этот кадр.
	AliveEnemies() []*domain.Enemy

	SpawnEnemy(archetype string, side enums.Side) error
	// SpawnWave планирует волну, возвращает число запланированных спавнов.
	SpawnWave(act, zone, wave int) (int, error)

	SaveProfile(path string) error
	LoadProfile(path string) error

	// Snapshot - полный слепок состояния для клиента.
	Snapshot() *api.StateView
}

// Context передает хендлеру состояние симуляции.
// Ссылки живые: хендлер мутирует мир напрямую, в кадре симуляции.
type Context struct {
	Run     Runner
	Tank    *domain.Tank
	Manager *modules.Manager
}

// Result - результат выполнения команды. Хендлер не пишет в логи
// инстанса и не шлет ответы сам: он возвращает данные.
type Result struct {
	Msg     string         // текст боевого лога
	MsgType string         // тип лога (INFO, COMBAT, LOOT, ERROR)
	State   *api.StateView // снапшот для ответившего клиента (STATE, LOAD)
}

// HandlerFunc - контракт любой команды (SPAWN_ENEMY, EQUIP, ...).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - пустой успешный ответ.
func EmptyResult() Result {
	return Result{}
}
