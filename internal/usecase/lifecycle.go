package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/brisa/internal/domain/errors"
	"github.com/polkiloo/brisa/internal/domain/model"
	"github.com/polkiloo/brisa/internal/domain/repository"
)

// Notifier is the subset of the messaging channel used to inform customers.
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string, kb *model.Keyboard) (int64, error)
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
}

// PurgeReport counts the outcome of best-effort transient message deletion.
// Failures are informational only.
type PurgeReport struct {
	Attempted int
	Deleted   int
	Failures  []error
}

// ActionResult describes a committed status change.
type ActionResult struct {
	Ticket   *model.Ticket
	Previous model.TicketStatus
	Purge    PurgeReport
	// NotifyErr wraps ErrNotificationDelivery when the customer could not be told.
	NotifyErr error
}

// Notified reports whether the customer status message went out.
func (r *ActionResult) Notified() bool {
	return r.NotifyErr == nil
}

// LifecycleUseCase lets the administrator advance tickets.
// It does not guard the order of actions: repeating or skipping one is accepted
// and the ticket ends in the status mapped from the last action applied.
type LifecycleUseCase struct {
	tickets  repository.TicketRepository
	notifier Notifier
	adminID  int64
	logger   *slog.Logger
	now      func() time.Time
}

// NewLifecycleUseCase constructs LifecycleUseCase.
func NewLifecycleUseCase(tickets repository.TicketRepository, notifier Notifier, adminID AdminID, logger *slog.Logger) *LifecycleUseCase {
	return &LifecycleUseCase{
		tickets:  tickets,
		notifier: notifier,
		adminID:  int64(adminID),
		logger:   logger,
		now:      time.Now,
	}
}

// AdminID is the single identity allowed to run lifecycle actions. It is both
// the admin user id and the private chat that receives admin cards.
type AdminID int64

// IsAdmin reports whether the identity is the configured administrator.
func (u *LifecycleUseCase) IsAdmin(identity int64) bool {
	return identity == u.adminID
}

// ApplyAction commits the status mapped from action, purges transient customer
// messages and notifies the customer.
func (u *LifecycleUseCase) ApplyAction(ctx context.Context, ticketID string, action model.Action, requester int64) (*ActionResult, error) {
	if !u.IsAdmin(requester) {
		return nil, domainErrors.ErrPermissionDenied
	}
	var (
		target    model.TicketStatus
		previous  model.TicketStatus
		transient []int64
	)
	ticket, err := u.tickets.Update(ctx, ticketID, func(t *model.Ticket) error {
		var ok bool
		if target, ok = action.TargetStatus(); !ok {
			return fmt.Errorf("%w: %q", domainErrors.ErrUnknownAction, action)
		}
		previous = t.Status
		transient = t.TransientMessageIDs
		t.TransientMessageIDs = nil
		t.Status = target
		t.UpdatedAt = u.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("ticket status changed",
		slog.String("ticket", ticket.ID),
		slog.String("from", string(previous)),
		slog.String("to", string(target)),
	)

	result := &ActionResult{
		Ticket:   ticket,
		Previous: previous,
		Purge:    u.purge(ctx, ticket.CustomerChatID, transient),
	}

	if _, err := u.notifier.SendMessage(ctx, ticket.CustomerChatID, StatusMessage(ticket), nil); err != nil {
		result.NotifyErr = fmt.Errorf("%w: %v", domainErrors.ErrNotificationDelivery, err)
		u.logger.Warn("customer notification failed",
			slog.String("ticket", ticket.ID),
			slog.Int64("chat", ticket.CustomerChatID),
			slog.String("error", err.Error()),
		)
	}
	return result, nil
}

// Lookup returns the ticket whose id matches text, trimmed and case-insensitive.
func (u *LifecycleUseCase) Lookup(ctx context.Context, text string, requester int64) (*model.Ticket, error) {
	if !u.IsAdmin(requester) {
		return nil, domainErrors.ErrPermissionDenied
	}
	return u.tickets.Get(ctx, text)
}

func (u *LifecycleUseCase) purge(ctx context.Context, chatID int64, ids []int64) PurgeReport {
	report := PurgeReport{Attempted: len(ids)}
	for _, id := range ids {
		if err := u.notifier.DeleteMessage(ctx, chatID, id); err != nil {
			report.Failures = append(report.Failures, err)
			u.logger.Debug("transient message not deleted",
				slog.Int64("chat", chatID),
				slog.Int64("message", id),
				slog.String("error", err.Error()),
			)
			continue
		}
		report.Deleted++
	}
	return report
}

// StatusMessage composes the customer-facing text for the ticket's current status.
func StatusMessage(t *model.Ticket) string {
	switch t.Status {
	case model.TicketStatusReceivedAtFacility:
		return fmt.Sprintf("🧺 Tu pedido %s ya está en nuestra lavandería. Te avisaremos cuando esté listo.", t.ID)
	case model.TicketStatusReadyForDelivery:
		return fmt.Sprintf("✨ Tu ropa del pedido %s está lista. Pronto salimos a entregarla.", t.ID)
	case model.TicketStatusDelivered:
		return fmt.Sprintf("✅ Pedido %s entregado. ¡Gracias por confiar en Brisa Habanera! 🌬️", t.ID)
	default:
		return fmt.Sprintf("🔄 Tu pedido %s está en estado: %s.", t.ID, t.Status.Label())
	}
}
