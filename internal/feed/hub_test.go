package feed

import (
	"testing"
	"time"

	"github.com/efreitasn/stocksim/internal/domain"
)

func TestHub_SubscribeAndBroadcast(t *testing.T) {
	h := NewHub(4)

	_, ch := h.Subscribe()
	snapshot := []domain.Quote{{Symbol: "TCS", Price: 320000}}

	h.Broadcast(snapshot)

	select {
	case got := <-ch:
		if len(got) != 1 || got[0].Symbol != "TCS" {
			t.Fatalf("unexpected snapshot: %v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the snapshot")
	}
}

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	h := NewHub(4)

	_, ch1 := h.Subscribe()
	_, ch2 := h.Subscribe()

	h.Broadcast([]domain.Quote{{Symbol: "INFY", Price: 150000}})

	for i, ch := range []<-chan []domain.Quote{ch1, ch2} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d did not receive the snapshot", i)
		}
	}
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub(1)

	_, slow := h.Subscribe()
	_, fast := h.Subscribe()

	// Fill the slow subscriber's buffer, then keep broadcasting. The
	// broadcasts must complete and the fast subscriber must keep
	// receiving.
	for i := 0; i < 10; i++ {
		h.Broadcast([]domain.Quote{{Symbol: "TCS", Price: int64(i)}})
		select {
		case <-fast:
		case <-time.After(time.Second):
			t.Fatalf("fast subscriber starved at broadcast %d", i)
		}
	}

	// The slow subscriber holds exactly its buffered snapshot; the rest
	// were dropped, not queued.
	if got := len(slow); got != 1 {
		t.Errorf("slow subscriber has %d buffered snapshots, want 1", got)
	}
}

func TestHub_Unsubscribe(t *testing.T) {
	h := NewHub(4)

	id, ch := h.Subscribe()
	h.Unsubscribe(id)

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after Unsubscribe")
	}
	if h.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount = %d, want 0", h.SubscriberCount())
	}
}

func TestHub_UnsubscribeUnknownID(t *testing.T) {
	h := NewHub(4)
	h.Unsubscribe("not-a-subscriber") // must not panic
}
