package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type evictorStub struct {
	mu      sync.Mutex
	cutoffs []time.Time
	n       int
	err     error
}

func (e *evictorStub) EvictDelivered(ctx context.Context, before time.Time) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cutoffs = append(e.cutoffs, before)
	return e.n, e.err
}

func (e *evictorStub) calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.cutoffs)
}

func TestSweepUsesRetentionCutoff(t *testing.T) {
	ev := &evictorStub{n: 2}
	s := NewRetentionSweeper(ev, 72*time.Hour, time.Hour, testLogger())
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	n, err := s.Sweep(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("unexpected result %d, %v", n, err)
	}
	if want := now.Add(-72 * time.Hour); !ev.cutoffs[0].Equal(want) {
		t.Fatalf("expected cutoff %v, got %v", want, ev.cutoffs[0])
	}
}

func TestSweeperDisabled(t *testing.T) {
	ev := &evictorStub{}
	s := NewRetentionSweeper(ev, 0, time.Millisecond, testLogger())
	s.Start(context.Background())
	time.Sleep(10 * time.Millisecond)
	s.Stop()

	if n, _ := s.Sweep(context.Background()); n != 0 || ev.calls() != 0 {
		t.Fatalf("disabled sweeper must never evict")
	}
}

func TestSweeperRunsPeriodically(t *testing.T) {
	ev := &evictorStub{err: errors.New("transient")}
	s := NewRetentionSweeper(ev, time.Hour, 5*time.Millisecond, testLogger())
	s.Start(context.Background())

	deadline := time.After(time.Second)
	for ev.calls() < 2 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for sweeps")
		case <-time.After(5 * time.Millisecond):
		}
	}
	s.Stop()

	after := ev.calls()
	time.Sleep(20 * time.Millisecond)
	if ev.calls() != after {
		t.Fatalf("sweeper kept running after stop")
	}
}

func TestNewRetentionSweeperDefaultsInterval(t *testing.T) {
	s := NewRetentionSweeper(&evictorStub{}, time.Hour, 0, testLogger())
	if s.interval != time.Hour {
		t.Fatalf("expected default interval, got %s", s.interval)
	}
}
