package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/polkiloo/brisa/internal/domain/model"
)

var (
	// ErrQueueFull is returned by Submit when the chat's worker backlog is saturated.
	ErrQueueFull = errors.New("update queue full")
	// ErrNotRunning is returned by Submit before Start or after Stop.
	ErrNotRunning = errors.New("dispatcher not running")
)

// InboundHandler consumes decoded chat events.
type InboundHandler interface {
	HandleInbound(ctx context.Context, in model.Inbound) error
}

// UpdateDispatcher fans inbound events out to a fixed pool. Every chat id is
// pinned to one worker, so events of a chat are handled in arrival order.
type UpdateDispatcher struct {
	handler   InboundHandler
	workers   int
	queueSize int
	logger    *slog.Logger

	queues  []chan model.Inbound
	wg      sync.WaitGroup
	mu      sync.RWMutex
	running bool
}

// NewUpdateDispatcher constructs dispatcher worker pool.
func NewUpdateDispatcher(handler InboundHandler, workers, queueSize int, logger *slog.Logger) *UpdateDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &UpdateDispatcher{
		handler:   handler,
		workers:   workers,
		queueSize: queueSize,
		logger:    logger,
	}
}

// Start launches the workers. Handlers receive ctx stripped of its cancellation
// so queued events still complete during Stop.
func (d *UpdateDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}

	runCtx := context.WithoutCancel(ctx)
	d.queues = make([]chan model.Inbound, d.workers)
	for i := range d.queues {
		d.queues[i] = make(chan model.Inbound, d.queueSize)
		d.wg.Add(1)
		go d.worker(runCtx, i, d.queues[i])
	}
	d.running = true
}

// Stop closes the queues and waits until queued events are handled.
func (d *UpdateDispatcher) Stop() {
	d.mu.Lock()
	if d.running {
		for _, q := range d.queues {
			close(q)
		}
		d.running = false
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Submit enqueues an event without blocking.
func (d *UpdateDispatcher) Submit(in model.Inbound) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.running {
		return ErrNotRunning
	}

	select {
	case d.queues[d.shard(in.ChatID)] <- in:
		return nil
	default:
		return fmt.Errorf("chat %d: %w", in.ChatID, ErrQueueFull)
	}
}

func (d *UpdateDispatcher) shard(chatID int64) int {
	return int(uint64(chatID) % uint64(d.workers))
}

func (d *UpdateDispatcher) worker(ctx context.Context, id int, queue <-chan model.Inbound) {
	defer d.wg.Done()
	for in := range queue {
		d.handle(ctx, id, in)
	}
}

func (d *UpdateDispatcher) handle(ctx context.Context, id int, in model.Inbound) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("inbound handler panicked",
				slog.Int("worker", id),
				slog.Int64("chat_id", in.ChatID),
				slog.Any("panic", r))
		}
	}()

	if err := d.handler.HandleInbound(ctx, in); err != nil {
		d.logger.Error("handle inbound failed",
			slog.Int("worker", id),
			slog.Int64("chat_id", in.ChatID),
			slog.String("error", err.Error()))
	}
}
