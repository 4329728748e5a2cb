package memory

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/brisa/internal/domain/errors"
	"github.com/polkiloo/brisa/internal/domain/model"
	"github.com/polkiloo/brisa/internal/domain/repository"
)

// Storage keeps tickets in process memory. Nothing survives a restart.
// Ids of evicted tickets stay reserved for the lifetime of the process.
type Storage struct {
	mu      sync.RWMutex
	tickets map[string]*entry
	evicted map[string]struct{}
	logger  *slog.Logger
}

// entry serializes read-modify-write of a single ticket.
type entry struct {
	mu      sync.Mutex
	ticket  model.Ticket
	removed bool
}

type ticketRepository struct {
	storage *Storage
}

// New creates an empty storage.
func New(logger *slog.Logger) *Storage {
	return &Storage{
		tickets: make(map[string]*entry),
		evicted: make(map[string]struct{}),
		logger:  logger,
	}
}

// Tickets returns the ticket repository view.
func (s *Storage) Tickets() repository.TicketRepository {
	return &ticketRepository{storage: s}
}

// Len reports how many tickets are currently held.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tickets)
}

// NormalizeID canonicalises ticket ids typed by humans.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func (s *Storage) lookup(id string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.tickets[NormalizeID(id)]
	return e, ok
}

// --- TicketRepository implementation ---

func (r *ticketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := NormalizeID(ticket.ID)

	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	if _, exists := r.storage.tickets[id]; exists {
		return domainErrors.ErrAlreadyExists
	}
	if _, used := r.storage.evicted[id]; used {
		return domainErrors.ErrAlreadyExists
	}
	stored := ticket.Clone()
	stored.ID = id
	r.storage.tickets[id] = &entry{ticket: *stored}
	return nil
}

func (r *ticketRepository) Get(ctx context.Context, id string) (*model.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, ok := r.storage.lookup(id)
	if !ok {
		return nil, domainErrors.ErrTicketNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return nil, domainErrors.ErrTicketNotFound
	}
	return e.ticket.Clone(), nil
}

func (r *ticketRepository) Update(ctx context.Context, id string, fn func(*model.Ticket) error) (*model.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, ok := r.storage.lookup(id)
	if !ok {
		return nil, domainErrors.ErrTicketNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return nil, domainErrors.ErrTicketNotFound
	}

	working := e.ticket.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.ID = e.ticket.ID
	e.ticket = *working
	return working.Clone(), nil
}

func (r *ticketRepository) EvictDelivered(ctx context.Context, before time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	evicted := 0
	for id, e := range r.storage.tickets {
		e.mu.Lock()
		if e.ticket.Status == model.TicketStatusDelivered && e.ticket.UpdatedAt.Before(before) {
			e.removed = true
			delete(r.storage.tickets, id)
			r.storage.evicted[id] = struct{}{}
			evicted++
		}
		e.mu.Unlock()
	}
	if evicted > 0 {
		r.storage.logger.Info("delivered tickets evicted", slog.Int("count", evicted), slog.Time("before", before))
	}
	return evicted, nil
}
