package usecase

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/brisa/internal/domain/errors"
	"github.com/polkiloo/brisa/internal/domain/model"
	"github.com/polkiloo/brisa/internal/domain/repository"
	"github.com/polkiloo/brisa/internal/pricing"
)

// TicketIDLength is the number of characters in a generated ticket id.
const TicketIDLength = 8

// IDGenerator produces ticket identifiers.
type IDGenerator func() string

// NewTicketID returns a random uppercase hex token of TicketIDLength characters.
func NewTicketID() string {
	id := uuid.New()
	return strings.ToUpper(hex.EncodeToString(id[:TicketIDLength/2]))
}

// TicketUseCase issues tickets from completed drafts.
type TicketUseCase struct {
	tickets repository.TicketRepository
	newID   IDGenerator
	now     func() time.Time
}

// NewTicketUseCase constructs TicketUseCase.
func NewTicketUseCase(tickets repository.TicketRepository) *TicketUseCase {
	return &TicketUseCase{tickets: tickets, newID: NewTicketID, now: time.Now}
}

// WithIDGenerator replaces the id source, mostly for tests.
func (u *TicketUseCase) WithIDGenerator(gen IDGenerator) *TicketUseCase {
	u.newID = gen
	return u
}

// Issue creates a PendingPickup ticket from a completed draft.
// An id collision is reported as ErrAlreadyExists; the caller may simply try again.
func (u *TicketUseCase) Issue(ctx context.Context, chatID int64, draft *model.DraftOrder) (*model.Ticket, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	now := u.now()
	ticket := &model.Ticket{
		ID:                  u.newID(),
		CustomerChatID:      chatID,
		CustomerName:        draft.CustomerName,
		Phone:               draft.CustomerPhone,
		Address:             draft.CustomerAddress,
		Zone:                draft.Zone,
		ServiceType:         draft.ServiceType,
		QuantityDescription: draft.QuantityDescription,
		Price:               draft.ComputedPrice,
		FormattedPrice:      pricing.Format(draft.ComputedPrice),
		Status:              model.TicketStatusPendingPickup,
		CreatedAt:           now,
		UpdatedAt:           now,
		TransientMessageIDs: append([]int64(nil), draft.TransientMessageIDs...),
	}

	if err := u.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("issue ticket %s: %w", ticket.ID, err)
	}
	return ticket, nil
}

// Get fetches a ticket by id.
func (u *TicketUseCase) Get(ctx context.Context, id string) (*model.Ticket, error) {
	return u.tickets.Get(ctx, id)
}

// AttachReceipt records the customer receipt message, which is never purged.
func (u *TicketUseCase) AttachReceipt(ctx context.Context, id string, messageID int64) error {
	_, err := u.tickets.Update(ctx, id, func(t *model.Ticket) error {
		t.TicketMessageID = messageID
		return nil
	})
	return err
}

// AttachAdminCard records the admin notification carrying the action menu.
func (u *TicketUseCase) AttachAdminCard(ctx context.Context, id string, messageID int64) error {
	_, err := u.tickets.Update(ctx, id, func(t *model.Ticket) error {
		t.AdminMessageID = messageID
		return nil
	})
	return err
}

// EvictDelivered drops delivered tickets last updated before the cutoff.
func (u *TicketUseCase) EvictDelivered(ctx context.Context, before time.Time) (int, error) {
	return u.tickets.EvictDelivered(ctx, before)
}

func validateDraft(draft *model.DraftOrder) error {
	if draft == nil {
		return fmt.Errorf("%w: empty draft", domainErrors.ErrValidation)
	}
	missing := make([]string, 0, 4)
	if !draft.HasZone() {
		missing = append(missing, "zone")
	}
	if draft.ServiceType == "" {
		missing = append(missing, "service")
	}
	if strings.TrimSpace(draft.CustomerName) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(draft.CustomerPhone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(draft.CustomerAddress) == "" {
		missing = append(missing, "address")
	}
	if !draft.PriceComputed {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: draft missing %s", domainErrors.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
