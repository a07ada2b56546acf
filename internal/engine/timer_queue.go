package engine

import "container/heap"

// timerItem - один отложенный вызов.
type timerItem struct {
	id    uint64
	due   float64 // время симуляции, мс
	label string  // для дебаг-дампа
	fn    func(now float64)
	index int // индекс в куче
}

// timerHeap реализует heap.Interface поверх timerItem.
type timerHeap []*timerItem

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	// MinHeap по сроку; при равных сроках побеждает раньше
	// запланированный - порядок исполнения детерминирован.
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].id < h[j].id
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x interface{}) {
	n := len(*h)
	item := x.(*timerItem)
	item.index = n
	*h = append(*h, item)
}

func (h *timerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // избегаем утечки памяти
	item.index = -1
	*h = old[0 : n-1]
	return item
}

// TimerQueue - очередь отложенных действий симуляции: возвраты врагов
// в пул после смертельной паузы, снятие статус-эффектов, спавны волны.
//
// Колбеки исполняются в Advance строго по сроку, в той же горутине.
// Очередь не потокобезопасна - ею владеет цикл симуляции.
type TimerQueue struct {
	heap   timerHeap
	items  map[uint64]*timerItem
	nextID uint64
}

func NewTimerQueue() *TimerQueue {
	return &TimerQueue{
		heap:  make(timerHeap, 0),
		items: make(map[uint64]*timerItem),
	}
}

// Schedule планирует вызов fn на время due (мс симуляции).
// Возвращает токен для Cancel.
func (q *TimerQueue) Schedule(due float64, label string, fn func(now float64)) uint64 {
	q.nextID++
	item := &timerItem{
		id:    q.nextID,
		due:   due,
		label: label,
		fn:    fn,
	}
	heap.Push(&q.heap, item)
	q.items[item.id] = item
	return item.id
}

// Cancel снимает запланированный вызов. false - уже исполнен или снят.
func (q *TimerQueue) Cancel(id uint64) bool {
	item, ok := q.items[id]
	if !ok {
		return false
	}
	heap.Remove(&q.heap, item.index)
	delete(q.items, id)
	return true
}

// Advance исполняет все вызовы со сроком <= now в порядке срока.
// Колбек вправе планировать новые вызовы; созревшие к тому же now
// исполняются в этом же проходе. Возвращает число исполненных.
func (q *TimerQueue) Advance(now float64) int {
	fired := 0
	for q.heap.Len() > 0 && q.heap[0].due <= now {
		item := heap.Pop(&q.heap).(*timerItem)
		delete(q.items, item.id)
		item.fn(now)
		fired++
	}
	return fired
}

// Len - число ожидающих вызовов.
func (q *TimerQueue) Len() int {
	return q.heap.Len()
}

// NextDue - срок ближайшего вызова. false - очередь пуста.
func (q *TimerQueue) NextDue() (float64, bool) {
	if q.heap.Len() == 0 {
		return 0, false
	}
	return q.heap[0].due, true
}

// DebugDump возвращает снимок очереди для отладки.
func (q *TimerQueue) DebugDump() []map[string]interface{} {
	// Пустой слайс, а не nil: в JSON уходит "[]", а не "null".
	result := make([]map[string]interface{}, 0, q.heap.Len())
	for _, item := range q.heap {
		result = append(result, map[string]interface{}{
			"id":    item.id,
			"due":   item.due,
			"label": item.label,
			"index": item.index,
		})
	}
	return result
}
