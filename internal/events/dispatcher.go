package events

// Listener - подписчик шины событий.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc - адаптер, чтобы подписывать обычные функции.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// SubID - токен подписки. Func-значения в Go несравнимы, поэтому
// отписка идет по токену, а не по равенству слушателей.
type SubID uint64

type subscription struct {
	id       SubID
	listener Listener
}

// Dispatcher - синхронная шина событий симуляции.
//
// Слушатели вызываются в порядке регистрации, в том же кадре и той же
// горутине, где произошла публикация. Шина не потокобезопасна: весь
// трафик идет из цикла симуляции, наружу события ретранслирует relay.
//
// Dispatcher создается на каждый инстанс (и на каждый тест) отдельно,
// глобального состояния нет.
type Dispatcher struct {
	listeners map[EventType][]subscription
	nextID    SubID
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]subscription),
	}
}

// Subscribe добавляет слушателя в конец списка для данного типа.
func (d *Dispatcher) Subscribe(t EventType, l Listener) SubID {
	d.nextID++
	d.listeners[t] = append(d.listeners[t], subscription{id: d.nextID, listener: l})
	return d.nextID
}

// SubscribeFunc - сахар для подписки функции.
func (d *Dispatcher) SubscribeFunc(t EventType, f func(Event)) SubID {
	return d.Subscribe(t, ListenerFunc(f))
}

// Unsubscribe удаляет подписку, сохраняя порядок остальных.
//
// Удаление копирующее: Publish, идущий в этот момент по своему срезу,
// не заметит сдвига и доставит событие всем, кто был подписан на входе.
func (d *Dispatcher) Unsubscribe(t EventType, id SubID) {
	list, ok := d.listeners[t]
	if !ok {
		return
	}
	for i, s := range list {
		if s.id == id {
			next := make([]subscription, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			d.listeners[t] = next
			return
		}
	}
}

// Publish синхронно доставляет событие всем слушателям типа.
func (d *Dispatcher) Publish(e Event) {
	list := d.listeners[e.Type]
	for _, s := range list {
		s.listener.OnEvent(e)
	}
}

// Emit - сокращение для Publish(Event{Type: t, Data: data}).
func (d *Dispatcher) Emit(t EventType, data interface{}) {
	d.Publish(Event{Type: t, Data: data})
}
