package arena

import (
	"github.com/sirupsen/logrus"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types"
	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

// Manager - реестр пулов инстанса симуляции.
//
// Никаких глобальных синглтонов: менеджер создается на инстанс (и на
// тест) и передается явно тем, кто спавнит или возвращает сущности.
type Manager struct {
	shard     uint8
	pools     map[PoolKey]*Pool
	destroyed bool
	log       *logrus.Entry
}

func NewManager(shard uint8) *Manager {
	return &Manager{
		shard: shard,
		pools: make(map[PoolKey]*Pool),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "arena",
			"shard":     shard,
		}),
	}
}

// CreatePool предвыделяет size объектов под ключом key.
// Повторное создание пула с тем же ключом - ошибка конфигурации.
func (m *Manager) CreatePool(key PoolKey, kind enums.Kind, size int, factory func() Poolable) error {
	if m.destroyed {
		return ErrPoolDestroyed
	}
	if _, exists := m.pools[key]; exists {
		m.log.WithField("pool", string(key)).Error("CreatePool refused: pool already exists.")
		return ErrPoolExists
	}

	m.pools[key] = newPool(key, kind, m.shard, size, factory)
	m.log.WithFields(logrus.Fields{
		"pool": string(key),
		"size": size,
		"kind": kind.String(),
	}).Info("Pool created.")
	return nil
}

// Get выдает объект из пула key.
func (m *Manager) Get(key PoolKey) (Poolable, error) {
	p, err := m.pool(key)
	if err != nil {
		return nil, err
	}
	return p.Get()
}

// Release возвращает объект в пул key.
func (m *Manager) Release(key PoolKey, id types.EntityID) error {
	p, err := m.pool(key)
	if err != nil {
		return err
	}
	return p.Release(id)
}

// Pool возвращает пул для прямого обхода активных объектов.
func (m *Manager) Pool(key PoolKey) (*Pool, bool) {
	if m.destroyed {
		return nil, false
	}
	p, ok := m.pools[key]
	return p, ok
}

// DestroyPool освобождает все слоты пула. Дальнейшие операции по ключу
// возвращают ошибку, а не падают.
func (m *Manager) DestroyPool(key PoolKey) error {
	p, err := m.pool(key)
	if err != nil {
		return err
	}
	p.destroy()
	delete(m.pools, key)
	m.log.WithField("pool", string(key)).Info("Pool destroyed.")
	return nil
}

// Destroy освобождает все пулы менеджера.
func (m *Manager) Destroy() {
	for key, p := range m.pools {
		p.destroy()
		delete(m.pools, key)
	}
	m.destroyed = true
}

func (m *Manager) pool(key PoolKey) (*Pool, error) {
	if m.destroyed {
		return nil, ErrPoolDestroyed
	}
	p, ok := m.pools[key]
	if !ok {
		m.log.WithField("pool", string(key)).Error("Operation on unknown pool refused.")
		return nil, ErrPoolUnknown
	}
	return p, nil
}

// GetAs выдает объект из пула с приведением к конкретному типу.
// Несовпадение типа означает перепутанную фабрику - объект сразу
// возвращается в пул, наружу уходит ErrForeignHandle.
func GetAs[T Poolable](m *Manager, key PoolKey) (T, error) {
	var zero T
	obj, err := m.Get(key)
	if err != nil {
		return zero, err
	}
	t, ok := obj.(T)
	if !ok {
		_ = m.Release(key, obj.ID())
		return zero, ErrForeignHandle
	}
	return t, nil
}

// ForEachActive обходит активные объекты пула с типизацией.
func ForEachActive[T Poolable](p *Pool, fn func(T)) {
	p.ForEachActive(func(obj Poolable) {
		if t, ok := obj.(T); ok {
			fn(t)
		}
	})
}

// CollectActive собирает активные объекты в срез (стабильный порядок
// индексов). Используется там, где нужен снапшот списка на кадр.
func CollectActive[T Poolable](p *Pool, buf []T) []T {
	buf = buf[:0]
	p.ForEachActive(func(obj Poolable) {
		if t, ok := obj.(T); ok {
			buf = append(buf, t)
		}
	})
	return buf
}
