package test

import (
	"context"
	"time"

	"github.com/polkiloo/brisa/internal/domain/model"
)

// TicketRepositoryStub lets tests control every repository call.
type TicketRepositoryStub struct {
	CreateFn func(context.Context, *model.Ticket) error
	GetFn    func(context.Context, string) (*model.Ticket, error)
	UpdateFn func(context.Context, string, func(*model.Ticket) error) (*model.Ticket, error)
	EvictFn  func(context.Context, time.Time) (int, error)

	UpdateCalls int
	EvictCalls  []time.Time
}

// Create delegates to CreateFn or succeeds.
func (s *TicketRepositoryStub) Create(ctx context.Context, ticket *model.Ticket) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, ticket)
	}
	return nil
}

// Get delegates to GetFn or returns an empty ticket with the id.
func (s *TicketRepositoryStub) Get(ctx context.Context, id string) (*model.Ticket, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Ticket{ID: id}, nil
}

// Update delegates to UpdateFn or applies fn to an empty ticket.
func (s *TicketRepositoryStub) Update(ctx context.Context, id string, fn func(*model.Ticket) error) (*model.Ticket, error) {
	s.UpdateCalls++
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, fn)
	}
	t := &model.Ticket{ID: id}
	if err := fn(t); err != nil {
		return nil, err
	}
	return t, nil
}

// EvictDelivered records the cutoff and delegates to EvictFn.
func (s *TicketRepositoryStub) EvictDelivered(ctx context.Context, before time.Time) (int, error) {
	s.EvictCalls = append(s.EvictCalls, before)
	if s.EvictFn != nil {
		return s.EvictFn(ctx, before)
	}
	return 0, nil
}
