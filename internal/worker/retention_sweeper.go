package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Evictor drops delivered tickets last updated before a cutoff.
type Evictor interface {
	EvictDelivered(ctx context.Context, before time.Time) (int, error)
}

// RetentionSweeper periodically evicts delivered tickets older than the retention.
type RetentionSweeper struct {
	evictor   Evictor
	retention time.Duration
	interval  time.Duration
	logger    *slog.Logger
	now       func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewRetentionSweeper constructs sweeper. A non-positive retention disables it.
func NewRetentionSweeper(evictor Evictor, retention, interval time.Duration, logger *slog.Logger) *RetentionSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &RetentionSweeper{
		evictor:   evictor,
		retention: retention,
		interval:  interval,
		logger:    logger,
		now:       time.Now,
	}
}

// Enabled reports whether tickets are ever evicted.
func (s *RetentionSweeper) Enabled() bool {
	return s.retention > 0
}

// Start launches the background ticker.
func (s *RetentionSweeper) Start(ctx context.Context) {
	if !s.Enabled() {
		s.logger.Info("ticket retention disabled")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop waits for the loop to exit.
func (s *RetentionSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// Sweep runs one eviction pass.
func (s *RetentionSweeper) Sweep(ctx context.Context) (int, error) {
	if !s.Enabled() {
		return 0, nil
	}
	return s.evictor.EvictDelivered(ctx, s.now().Add(-s.retention))
}

func (s *RetentionSweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				if ctx.Err() == nil {
					s.logger.Error("ticket sweep failed", slog.String("error", err.Error()))
				}
				continue
			}
			if n > 0 {
				s.logger.Info("delivered tickets evicted", slog.Int("count", n))
			}
		}
	}
}
