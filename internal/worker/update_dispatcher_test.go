package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/polkiloo/brisa/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type handlerStub struct {
	mu      sync.Mutex
	seen    map[int64][]string
	block   chan struct{}
	err     error
	panicOn string
}

func (h *handlerStub) HandleInbound(ctx context.Context, in model.Inbound) error {
	if h.block != nil {
		<-h.block
	}
	if in.Text == h.panicOn && h.panicOn != "" {
		panic("boom")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.seen == nil {
		h.seen = make(map[int64][]string)
	}
	h.seen[in.ChatID] = append(h.seen[in.ChatID], in.Text)
	return h.err
}

func (h *handlerStub) texts(chatID int64) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.seen[chatID]...)
}

func TestNewUpdateDispatcherDefaults(t *testing.T) {
	d := NewUpdateDispatcher(&handlerStub{}, 0, 0, testLogger())
	if d.workers != 1 || d.queueSize != 1 {
		t.Fatalf("expected defaults of 1, got workers=%d queue=%d", d.workers, d.queueSize)
	}
}

func TestSubmitBeforeStart(t *testing.T) {
	d := NewUpdateDispatcher(&handlerStub{}, 2, 2, testLogger())
	if err := d.Submit(model.Inbound{ChatID: 1}); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
}

func TestDispatcherPreservesPerChatOrder(t *testing.T) {
	h := &handlerStub{}
	d := NewUpdateDispatcher(h, 4, 64, testLogger())
	d.Start(context.Background())

	want := []string{"a", "b", "c", "d", "e"}
	for _, chat := range []int64{1, 2, 3, -100} {
		for _, txt := range want {
			if err := d.Submit(model.Inbound{ChatID: chat, Text: txt}); err != nil {
				t.Fatalf("submit: %v", err)
			}
		}
	}
	d.Stop()

	for _, chat := range []int64{1, 2, 3, -100} {
		got := h.texts(chat)
		if len(got) != len(want) {
			t.Fatalf("chat %d: expected %d events, got %v", chat, len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("chat %d: out of order %v", chat, got)
			}
		}
	}
}

func TestSubmitQueueFull(t *testing.T) {
	h := &handlerStub{block: make(chan struct{})}
	d := NewUpdateDispatcher(h, 1, 1, testLogger())
	d.Start(context.Background())

	// first event is taken by the worker and blocks, second fills the queue
	if err := d.Submit(model.Inbound{ChatID: 1, Text: "1"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	deadline := time.Now().Add(time.Second)
	for {
		err := d.Submit(model.Inbound{ChatID: 1, Text: "n"})
		if errors.Is(err, ErrQueueFull) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("queue never filled")
		}
		time.Sleep(5 * time.Millisecond)
	}

	close(h.block)
	d.Stop()
	if err := d.Submit(model.Inbound{ChatID: 1}); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning after stop, got %v", err)
	}
}

func TestDispatcherSurvivesHandlerPanicAndErrors(t *testing.T) {
	h := &handlerStub{panicOn: "bad", err: errors.New("handler failed")}
	d := NewUpdateDispatcher(h, 1, 8, testLogger())
	d.Start(context.Background())

	_ = d.Submit(model.Inbound{ChatID: 5, Text: "bad"})
	_ = d.Submit(model.Inbound{ChatID: 5, Text: "good"})
	d.Stop()

	if got := h.texts(5); len(got) != 1 || got[0] != "good" {
		t.Fatalf("expected worker to keep going, got %v", got)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	d := NewUpdateDispatcher(&handlerStub{}, 2, 2, testLogger())
	d.Start(context.Background())
	d.Stop()
	d.Stop()
}
