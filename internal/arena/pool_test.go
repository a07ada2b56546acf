package arena

import (
	"errors"
	"os"
	"testing"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types"
	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitSilent()
	os.Exit(m.Run())
}

type fakeEntity struct {
	id       types.EntityID
	released int
}

func (f *fakeEntity) Bind(id types.EntityID) { f.id = id }
func (f *fakeEntity) ID() types.EntityID     { return f.id }
func (f *fakeEntity) OnRelease()             { f.released++ }

func newFakeFactory() func() Poolable {
	return func() Poolable { return &fakeEntity{} }
}

const testKey PoolKey = "fakes"

func newTestManager(t *testing.T, size int) *Manager {
	t.Helper()
	m := NewManager(1)
	if err := m.CreatePool(testKey, enums.KindEnemy, size, newFakeFactory()); err != nil {
		t.Fatalf("CreatePool: %v", err)
	}
	return m
}

func mustCounts(t *testing.T, m *Manager, wantActive, wantInactive int) {
	t.Helper()
	p, ok := m.Pool(testKey)
	if !ok {
		t.Fatalf("pool %q gone", testKey)
	}
	active, inactive, _ := p.Counts()
	if active != wantActive || inactive != wantInactive {
		t.Fatalf("counts = (%d active, %d inactive), want (%d, %d)",
			active, inactive, wantActive, wantInactive)
	}
	if active+inactive != p.Total() {
		t.Fatalf("invariant broken: active(%d)+inactive(%d) != total(%d)",
			active, inactive, p.Total())
	}
}

func TestPool_InvariantUnderChurn(t *testing.T) {
	m := newTestManager(t, 4)

	// Произвольная последовательность get/release; после каждого шага
	// active+inactive == total и ни один активный объект не выдан дважды.
	issued := make(map[types.EntityID]bool)
	var held []types.EntityID

	step := func(get bool) {
		if get {
			obj, err := m.Get(testKey)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if issued[obj.ID()] {
				t.Fatalf("handle %v issued twice while active", obj.ID())
			}
			issued[obj.ID()] = true
			held = append(held, obj.ID())
		} else if len(held) > 0 {
			id := held[0]
			held = held[1:]
			if err := m.Release(testKey, id); err != nil {
				t.Fatalf("Release: %v", err)
			}
			delete(issued, id)
		}

		p, _ := m.Pool(testKey)
		active, inactive, _ := p.Counts()
		if active+inactive != p.Total() {
			t.Fatalf("invariant broken mid-churn: %d+%d != %d", active, inactive, p.Total())
		}
		if active != len(held) {
			t.Fatalf("active = %d, held = %d", active, len(held))
		}
	}

	pattern := []bool{true, true, false, true, true, true, false, false, true, true, false, true}
	for _, get := range pattern {
		step(get)
	}
}

func TestPool_AutoExpand(t *testing.T) {
	tests := []struct {
		name      string
		initial   int
		wantTotal int // initial + ceil(initial*0.5)
	}{
		{"even initial", 4, 6},
		{"odd initial rounds up", 5, 8},
		{"single slot", 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t, tt.initial)

			// Выбираем весь стартовый запас.
			for i := 0; i < tt.initial; i++ {
				if _, err := m.Get(testKey); err != nil {
					t.Fatalf("Get #%d: %v", i, err)
				}
			}

			// Следующий Get должен дорастить пул на ceil(initial*0.5).
			obj, err := m.Get(testKey)
			if err != nil {
				t.Fatalf("Get after exhaustion: %v", err)
			}
			if obj == nil {
				t.Fatal("Get returned nil object without error")
			}

			p, _ := m.Pool(testKey)
			if p.Total() != tt.wantTotal {
				t.Errorf("total after expansion = %d, want %d", p.Total(), tt.wantTotal)
			}
			_, _, expansions := p.Counts()
			if expansions != 1 {
				t.Errorf("expansions = %d, want 1", expansions)
			}
		})
	}
}

func TestPool_ExhaustionWithDeadFactory(t *testing.T) {
	m := NewManager(1)
	calls := 0
	// Фабрика отдает ровно два объекта, дальше nil: расширение "не дает"
	// новых слотов и Get обязан вернуть ошибку, а не паниковать.
	err := m.CreatePool(testKey, enums.KindEnemy, 2, func() Poolable {
		if calls >= 2 {
			return nil
		}
		calls++
		return &fakeEntity{}
	})
	if err != nil {
		t.Fatalf("CreatePool: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := m.Get(testKey); err != nil {
			t.Fatalf("Get #%d: %v", i, err)
		}
	}

	if _, err := m.Get(testKey); !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("Get on dead pool: err = %v, want ErrPoolExhausted", err)
	}
}

func TestPool_DoubleRelease(t *testing.T) {
	m := newTestManager(t, 2)

	obj, err := m.Get(testKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	id := obj.ID()

	if err := m.Release(testKey, id); err != nil {
		t.Fatalf("first Release: %v", err)
	}
	mustCounts(t, m, 0, 2)

	// Повторный Release того же handle: поколение уже сдвинуто,
	// состояние пула не меняется.
	if err := m.Release(testKey, id); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("second Release: err = %v, want ErrStaleHandle", err)
	}
	mustCounts(t, m, 0, 2)

	fe := obj.(*fakeEntity)
	if fe.released != 1 {
		t.Errorf("OnRelease called %d times, want 1", fe.released)
	}
}

func TestPool_ForeignHandleRefused(t *testing.T) {
	m := NewManager(1)
	if err := m.CreatePool("enemies", enums.KindEnemy, 2, newFakeFactory()); err != nil {
		t.Fatal(err)
	}
	if err := m.CreatePool("projectiles", enums.KindProjectile, 2, newFakeFactory()); err != nil {
		t.Fatal(err)
	}

	obj, err := m.Get("enemies")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	// Возврат вражеского handle в пул снарядов отклоняется без мутации.
	if err := m.Release("projectiles", obj.ID()); !errors.Is(err, ErrForeignHandle) {
		t.Fatalf("cross-pool Release: err = %v, want ErrForeignHandle", err)
	}

	p, _ := m.Pool("enemies")
	if active, _, _ := countsOf(p); active != 1 {
		t.Errorf("enemy stayed active after refused release, active = %d", active)
	}
}

func countsOf(p *Pool) (int, int, int) {
	return p.Counts()
}

func TestPool_StaleHandleAfterReuse(t *testing.T) {
	m := newTestManager(t, 1)

	first, _ := m.Get(testKey)
	staleID := first.ID()
	if err := m.Release(testKey, staleID); err != nil {
		t.Fatalf("Release: %v", err)
	}

	// Слот переиспользован: тот же индекс, новое поколение.
	second, _ := m.Get(testKey)
	if second.ID().Index() != staleID.Index() {
		t.Fatalf("slot not reused: idx %d vs %d", second.ID().Index(), staleID.Index())
	}
	if second.ID().Generation() == staleID.Generation() {
		t.Fatal("generation not bumped on release")
	}

	p, _ := m.Pool(testKey)
	if got := p.Resolve(staleID); got != nil {
		t.Error("stale handle resolved to live object")
	}
	if got := p.Resolve(second.ID()); got == nil {
		t.Error("fresh handle failed to resolve")
	}
}

func TestManager_CreatePoolTwice(t *testing.T) {
	m := newTestManager(t, 2)

	err := m.CreatePool(testKey, enums.KindEnemy, 2, newFakeFactory())
	if !errors.Is(err, ErrPoolExists) {
		t.Fatalf("second CreatePool: err = %v, want ErrPoolExists", err)
	}
}

func TestManager_UnknownPool(t *testing.T) {
	m := NewManager(1)

	if _, err := m.Get("nope"); !errors.Is(err, ErrPoolUnknown) {
		t.Errorf("Get: err = %v, want ErrPoolUnknown", err)
	}
	if err := m.Release("nope", types.EntityID(1)); !errors.Is(err, ErrPoolUnknown) {
		t.Errorf("Release: err = %v, want ErrPoolUnknown", err)
	}
}

func TestManager_DestroyedPoolOps(t *testing.T) {
	m := newTestManager(t, 2)

	obj, _ := m.Get(testKey)
	if err := m.DestroyPool(testKey); err != nil {
		t.Fatalf("DestroyPool: %v", err)
	}

	if _, err := m.Get(testKey); !errors.Is(err, ErrPoolUnknown) {
		t.Errorf("Get after destroy: err = %v, want ErrPoolUnknown", err)
	}
	if err := m.Release(testKey, obj.ID()); !errors.Is(err, ErrPoolUnknown) {
		t.Errorf("Release after destroy: err = %v, want ErrPoolUnknown", err)
	}

	m.Destroy()
	if err := m.CreatePool("other", enums.KindEnemy, 1, newFakeFactory()); !errors.Is(err, ErrPoolDestroyed) {
		t.Errorf("CreatePool after manager destroy: err = %v, want ErrPoolDestroyed", err)
	}
}

func TestPool_ForEachActiveStableOrder(t *testing.T) {
	m := newTestManager(t, 4)

	var ids []types.EntityID
	for i := 0; i < 4; i++ {
		obj, _ := m.Get(testKey)
		ids = append(ids, obj.ID())
	}
	// Возвращаем средний, порядок обхода оставшихся должен остаться
	// отсортированным по индексу слота.
	if err := m.Release(testKey, ids[1]); err != nil {
		t.Fatal(err)
	}

	p, _ := m.Pool(testKey)
	var seen []uint32
	p.ForEachActive(func(obj Poolable) {
		seen = append(seen, obj.ID().Index())
	})

	if len(seen) != 3 {
		t.Fatalf("visited %d active, want 3", len(seen))
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] <= seen[i-1] {
			t.Fatalf("iteration order not ascending: %v", seen)
		}
	}
}

func TestGetAs_TypeMismatchReleasesBack(t *testing.T) {
	m := newTestManager(t, 2)

	// fakeEntity не *otherEntity: объект обязан вернуться в пул.
	type otherEntity struct{ fakeEntity }
	if _, err := GetAs[*otherEntity](m, testKey); !errors.Is(err, ErrForeignHandle) {
		t.Fatalf("GetAs: err = %v, want ErrForeignHandle", err)
	}
	mustCounts(t, m, 0, 2)
}
