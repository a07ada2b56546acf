package arena

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types"
	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

// Poolable - объект, живущий в арене.
//
// Арена присваивает объекту упакованный EntityID при выдаче (Bind) и
// зовет OnRelease при возврате в пул. Игровая настройка (позиция,
// конфиг, сторона спавна) - дело вызывающего, не арены.
type Poolable interface {
	Bind(id types.EntityID)
	ID() types.EntityID
	OnRelease()
}

// PoolKey - строковый ключ пула ("enemies", "projectiles").
type PoolKey string

var (
	ErrPoolExists    = errors.New("arena: pool already exists")
	ErrPoolUnknown   = errors.New("arena: unknown pool")
	ErrPoolExhausted = errors.New("arena: pool exhausted")
	ErrPoolDestroyed = errors.New("arena: pool destroyed")
	ErrForeignHandle = errors.New("arena: handle does not belong to this pool")
	ErrStaleHandle   = errors.New("arena: stale handle")
	ErrNotActive     = errors.New("arena: object is not active")
)

// Pool - арена предвыделенных объектов одного типа.
//
// Каждый слот всегда ровно в одном из двух состояний: active или
// inactive. Get выдает только inactive-слоты; Release возвращает слот и
// инкрементирует его поколение, так что старые ссылки распознаются.
type Pool struct {
	key     PoolKey
	kind    enums.Kind
	shard   uint8
	factory func() Poolable

	slots  []Poolable
	gens   []uint16
	active []bool
	free   []uint32

	initialSize int
	expansions  int
	activeCount int
	destroyed   bool

	log *logrus.Entry
}

func newPool(key PoolKey, kind enums.Kind, shard uint8, size int, factory func() Poolable) *Pool {
	p := &Pool{
		key:         key,
		kind:        kind,
		shard:       shard,
		factory:     factory,
		initialSize: size,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "arena",
			"pool":      string(key),
		}),
	}
	p.grow(size)
	return p
}

// grow доращивает пул на n слотов. Фабрика, вернувшая nil, останавливает
// рост: это единственный случай, когда расширение "не дало" объектов.
func (p *Pool) grow(n int) int {
	added := 0
	for i := 0; i < n; i++ {
		obj := p.factory()
		if obj == nil {
			p.log.Error("Pool factory returned nil, growth stopped.")
			break
		}
		idx := uint32(len(p.slots))
		p.slots = append(p.slots, obj)
		p.gens = append(p.gens, 0)
		p.active = append(p.active, false)
		p.free = append(p.free, idx)
		added++
	}
	return added
}

// Get выдает inactive-объект, помечая его активным.
//
// При исчерпании пул авторасширяется на ceil(initialSize*0.5) слотов
// (с предупреждением о недоразмеренности) и повторяет выдачу один раз.
func (p *Pool) Get() (Poolable, error) {
	if p.destroyed {
		return nil, ErrPoolDestroyed
	}

	if len(p.free) == 0 {
		n := (p.initialSize + 1) / 2
		if n < 1 {
			n = 1
		}
		p.expansions++
		p.log.WithFields(logrus.Fields{
			"initial_size": p.initialSize,
			"grow_by":      n,
			"expansions":   p.expansions,
		}).Warn("Pool under-sized, auto-expanding.")
		p.grow(n)
	}

	if len(p.free) == 0 {
		p.log.Error("Pool exhausted even after expansion.")
		return nil, ErrPoolExhausted
	}

	idx := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]

	p.active[idx] = true
	p.activeCount++

	obj := p.slots[idx]
	obj.Bind(types.PackEntityID(p.shard, p.kind, p.gens[idx], idx))
	return obj, nil
}

// Release возвращает объект в пул по его handle.
//
// Чужие и устаревшие handle отклоняются без мутации. Повторный Release
// того же handle безопасен: поколение уже сдвинуто, придет ErrStaleHandle.
func (p *Pool) Release(id types.EntityID) error {
	if p.destroyed {
		return ErrPoolDestroyed
	}

	if id.Kind() != p.kind || id.Shard() != p.shard {
		p.log.WithField("handle", id.String()).Error("Release refused: handle belongs to another pool.")
		return ErrForeignHandle
	}

	idx := id.Index()
	if int(idx) >= len(p.slots) {
		p.log.WithField("handle", id.String()).Error("Release refused: index out of range.")
		return ErrForeignHandle
	}

	if id.Generation() != p.gens[idx] {
		// Чаще всего это двойной Release. Не фатально, но сигналим.
		p.log.WithField("handle", id.String()).Warn("Release refused: stale handle (double release?).")
		return ErrStaleHandle
	}

	if !p.active[idx] {
		p.log.WithField("handle", id.String()).Warn("Release refused: object already inactive.")
		return ErrNotActive
	}

	obj := p.slots[idx]
	obj.OnRelease()

	p.active[idx] = false
	p.activeCount--
	p.gens[idx]++
	p.free = append(p.free, idx)
	return nil
}

// Resolve возвращает живой объект по handle или nil, если ссылка
// устарела. Дешевая проверка перед каждым обращением по сохраненному id.
func (p *Pool) Resolve(id types.EntityID) Poolable {
	if p.destroyed {
		return nil
	}
	idx := id.Index()
	if id.Kind() != p.kind || int(idx) >= len(p.slots) {
		return nil
	}
	if !p.active[idx] || p.gens[idx] != id.Generation() {
		return nil
	}
	return p.slots[idx]
}

// ForEachActive обходит активные объекты в порядке возрастания индекса
// слота. Порядок стабилен между кадрами, пока состав не меняется.
func (p *Pool) ForEachActive(fn func(Poolable)) {
	if p.destroyed {
		return
	}
	for i, on := range p.active {
		if on {
			fn(p.slots[i])
		}
	}
}

// Counts возвращает (active, inactive, expansions).
// Инвариант active+inactive == total держится при любой последовательности
// Get/Release; тесты опираются на это напрямую.
func (p *Pool) Counts() (active, inactive, expansions int) {
	return p.activeCount, len(p.slots) - p.activeCount, p.expansions
}

// Total - общее число слотов, включая дорощенные.
func (p *Pool) Total() int {
	return len(p.slots)
}

func (p *Pool) destroy() {
	p.destroyed = true
	p.slots = nil
	p.gens = nil
	p.active = nil
	p.free = nil
	p.activeCount = 0
}
