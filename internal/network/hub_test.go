package network

import (
	"testing"

	"github.com/umutterol/hellcrawler-sub001/pkg/api"
)

func TestBroadcaster_RegisterReplacesChannel(t *testing.T) {
	b := NewBroadcaster()

	first := b.Register("cli")
	second := b.Register("cli")

	// Старый канал закрыт: его читатель (горутина клиента) завершится.
	if _, open := <-first; open {
		t.Error("old channel still open after re-register")
	}

	b.SendTo("cli", api.ServerResponse{Type: api.MsgState})
	select {
	case msg := <-second:
		if msg.Type != api.MsgState {
			t.Errorf("Type = %q, want %q", msg.Type, api.MsgState)
		}
	default:
		t.Error("new channel did not receive the message")
	}

	if b.SubscriberCount() != 1 {
		t.Errorf("SubscriberCount = %d, want 1", b.SubscriberCount())
	}
}

func TestBroadcaster_UnregisterClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("cli")

	b.Unregister("cli")

	if _, open := <-ch; open {
		t.Error("channel still open after unregister")
	}
	if b.HasSubscriber("cli") {
		t.Error("subscriber still listed after unregister")
	}

	// Повторный Unregister и отправка в никуда - no-op, не паника.
	b.Unregister("cli")
	b.SendTo("cli", api.ServerResponse{Type: api.MsgEvents})
}

func TestBroadcaster_SlowSubscriberLosesFrames(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("slow")

	// Забиваем буфер с запасом: лишнее молча отбрасывается,
	// отправитель не блокируется.
	for i := 0; i < cap(ch)+10; i++ {
		b.Broadcast(api.ServerResponse{Type: api.MsgEvents, TimeMs: float64(i)})
	}

	if got := len(ch); got != cap(ch) {
		t.Errorf("buffered = %d, want full buffer %d", got, cap(ch))
	}
	// Первые кадры дошли, хвост потерян.
	if msg := <-ch; msg.TimeMs != 0 {
		t.Errorf("first TimeMs = %v, want 0", msg.TimeMs)
	}
}

func TestBroadcaster_BroadcastReachesEveryone(t *testing.T) {
	b := NewBroadcaster()
	a := b.Register("a")
	c := b.Register("c")

	b.Broadcast(api.ServerResponse{Type: api.MsgState, RunID: "r1"})

	for name, ch := range map[string]chan api.ServerResponse{"a": a, "c": c} {
		select {
		case msg := <-ch:
			if msg.RunID != "r1" {
				t.Errorf("%s: RunID = %q, want r1", name, msg.RunID)
			}
		default:
			t.Errorf("%s: no message delivered", name)
		}
	}
}
