package repository

import (
	"context"
	"time"

	"github.com/polkiloo/brisa/internal/domain/model"
)

// TicketRepository describes storage of issued tickets.
type TicketRepository interface {
	// Create stores a new ticket and fails with ErrAlreadyExists on an id collision.
	Create(ctx context.Context, ticket *model.Ticket) error
	Get(ctx context.Context, id string) (*model.Ticket, error)
	// Update applies fn to the stored ticket under that ticket's lock and returns a copy of the result.
	Update(ctx context.Context, id string, fn func(*model.Ticket) error) (*model.Ticket, error)
	EvictDelivered(ctx context.Context, before time.Time) (int, error)
}
