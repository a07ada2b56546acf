package engine

import "testing"

func TestTimerQueue_FiresInDueOrder(t *testing.T) {
	q := NewTimerQueue()

	var order []string
	q.Schedule(30, "third", func(now float64) { order = append(order, "third") })
	q.Schedule(10, "first", func(now float64) { order = append(order, "first") })
	q.Schedule(20, "second", func(now float64) { order = append(order, "second") })

	if q.Len() != 3 {
		t.Fatalf("Len = %d, want 3", q.Len())
	}

	// Срок не подошел - ничего не стреляет.
	if fired := q.Advance(5); fired != 0 {
		t.Fatalf("Advance(5) fired %d, want 0", fired)
	}

	if fired := q.Advance(25); fired != 2 {
		t.Fatalf("Advance(25) fired %d, want 2", fired)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("order = %v, want [first second]", order)
	}

	if fired := q.Advance(100); fired != 1 {
		t.Fatalf("Advance(100) fired %d, want 1", fired)
	}
	if order[2] != "third" {
		t.Errorf("last fired = %s, want third", order[2])
	}
	if q.Len() != 0 {
		t.Errorf("Len after drain = %d, want 0", q.Len())
	}
}

func TestTimerQueue_EqualDueKeepsScheduleOrder(t *testing.T) {
	q := NewTimerQueue()

	// Три вызова на один срок: исполняются в порядке планирования,
	// чтобы прогон был воспроизводим от запуска к запуску.
	var order []int
	for n := 1; n <= 3; n++ {
		n := n
		q.Schedule(50, "tie", func(now float64) { order = append(order, n) })
	}

	q.Advance(50)
	for i, got := range order {
		if got != i+1 {
			t.Fatalf("order = %v, want [1 2 3]", order)
		}
	}
}

func TestTimerQueue_Cancel(t *testing.T) {
	q := NewTimerQueue()

	fired := false
	id := q.Schedule(10, "cancelled", func(now float64) { fired = true })
	keepID := q.Schedule(10, "kept", func(now float64) {})

	if !q.Cancel(id) {
		t.Fatal("Cancel of pending timer must return true")
	}
	if q.Cancel(id) {
		t.Error("second Cancel of the same id must return false")
	}

	if n := q.Advance(10); n != 1 {
		t.Fatalf("Advance fired %d, want 1", n)
	}
	if fired {
		t.Error("cancelled callback must not fire")
	}

	// Исполненный таймер снять уже нельзя.
	if q.Cancel(keepID) {
		t.Error("Cancel of executed timer must return false")
	}
}

func TestTimerQueue_CallbackSchedulesMore(t *testing.T) {
	q := NewTimerQueue()

	var order []string

	// Колбек планирует продолжение. Созревшее к тому же now
	// исполняется в этом же Advance, недозревшее ждет следующего.
	q.Schedule(10, "chain", func(now float64) {
		order = append(order, "chain")
		q.Schedule(now, "ripe", func(float64) { order = append(order, "ripe") })
		q.Schedule(now+1000, "later", func(float64) { order = append(order, "later") })
	})

	if fired := q.Advance(10); fired != 2 {
		t.Fatalf("Advance(10) fired %d, want 2 (chain + ripe)", fired)
	}
	if len(order) != 2 || order[0] != "chain" || order[1] != "ripe" {
		t.Fatalf("order = %v, want [chain ripe]", order)
	}

	due, ok := q.NextDue()
	if !ok || due != 1010 {
		t.Errorf("NextDue = %v/%v, want 1010/true", due, ok)
	}
}
