package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/brisa/internal/domain/errors"
	"github.com/polkiloo/brisa/internal/domain/model"
	"github.com/polkiloo/brisa/internal/usecase"
)

// Messenger is the outbound channel required by the facade.
type Messenger interface {
	Sender
	EditMessage(ctx context.Context, chatID, messageID int64, text string, kb *model.Keyboard) error
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error
}

// Conversation runs the customer order flow.
type Conversation interface {
	Handle(ctx context.Context, in model.Inbound) error
	Active(chatID int64) bool
}

// BotFacade routes decoded chat events to the admin lifecycle or the order flow.
type BotFacade struct {
	tickets      *usecase.TicketUseCase
	lifecycle    *usecase.LifecycleUseCase
	conversation Conversation
	messenger    Messenger
	logger       *slog.Logger
}

func NewBotFacade(tickets *usecase.TicketUseCase, lifecycle *usecase.LifecycleUseCase, conv Conversation, messenger Messenger, logger *slog.Logger) *BotFacade {
	return &BotFacade{tickets: tickets, lifecycle: lifecycle, conversation: conv, messenger: messenger, logger: logger}
}

// HandleInbound processes one event. Admin buttons are recognised by token for any
// sender so that permission is enforced by the lifecycle.
func (f *BotFacade) HandleInbound(ctx context.Context, in model.Inbound) error {
	if in.Kind == model.InboundButton && IsAdminToken(in.Token) {
		return f.handleAdminAction(ctx, in)
	}

	if in.Kind == model.InboundText && f.lifecycle.IsAdmin(in.UserID) &&
		!strings.HasPrefix(strings.TrimSpace(in.Text), "/") && !f.conversation.Active(in.ChatID) {
		return f.handleLookup(ctx, in)
	}

	err := f.conversation.Handle(ctx, in)
	if in.Kind == model.InboundButton {
		f.answer(ctx, in.CallbackID, "", false)
	}
	return err
}

// EvictDelivered drops delivered tickets for the retention sweeper.
func (f *BotFacade) EvictDelivered(ctx context.Context, before time.Time) (int, error) {
	return f.tickets.EvictDelivered(ctx, before)
}

func (f *BotFacade) handleAdminAction(ctx context.Context, in model.Inbound) error {
	id, action, ok := ParseAdminToken(in.Token)
	if !ok {
		f.answer(ctx, in.CallbackID, "Acción desconocida.", true)
		return nil
	}

	result, err := f.lifecycle.ApplyAction(ctx, id, action, in.UserID)
	switch {
	case errors.Is(err, domainErrors.ErrPermissionDenied):
		f.logger.Warn("lifecycle action denied", slog.Int64("user", in.UserID), slog.String("ticket", id))
		f.answer(ctx, in.CallbackID, "⛔ No tienes permiso para esta acción.", true)
		return nil
	case errors.Is(err, domainErrors.ErrTicketNotFound):
		f.answer(ctx, in.CallbackID, fmt.Sprintf("Pedido %s no encontrado.", id), true)
		return nil
	case errors.Is(err, domainErrors.ErrUnknownAction):
		f.answer(ctx, in.CallbackID, "Acción desconocida.", true)
		return nil
	case err != nil:
		f.answer(ctx, in.CallbackID, "Error interno, inténtalo de nuevo.", true)
		return fmt.Errorf("apply %s to %s: %w", action, id, err)
	}

	ticket := result.Ticket
	f.logger.Debug("lifecycle action applied",
		slog.String("ticket", ticket.ID),
		slog.String("from", string(result.Previous)),
		slog.String("to", string(ticket.Status)),
		slog.Int("purge_attempted", result.Purge.Attempted),
		slog.Int("purge_deleted", result.Purge.Deleted),
		slog.Int("purge_failed", len(result.Purge.Failures)),
	)
	f.answer(ctx, in.CallbackID, "Estado: "+ticket.Status.Label(), false)
	if in.MessageID != 0 {
		if err := f.messenger.EditMessage(ctx, in.ChatID, in.MessageID, AdminCard(ticket), ActionMenu(ticket.ID)); err != nil {
			f.logger.Debug("admin card not refreshed", slog.String("ticket", ticket.ID), slog.String("error", err.Error()))
		}
	}

	if !result.Notified() {
		warning := fmt.Sprintf("⚠️ Estado de %s actualizado, pero no se pudo notificar al cliente.", ticket.ID)
		if _, err := f.messenger.SendMessage(ctx, in.ChatID, warning, nil); err != nil {
			f.logger.Warn("admin warning not sent", slog.String("ticket", ticket.ID), slog.String("error", err.Error()))
		}
	}
	return nil
}

func (f *BotFacade) handleLookup(ctx context.Context, in model.Inbound) error {
	query := strings.TrimSpace(in.Text)
	ticket, err := f.lifecycle.Lookup(ctx, query, in.UserID)
	if errors.Is(err, domainErrors.ErrTicketNotFound) {
		_, err = f.messenger.SendMessage(ctx, in.ChatID, fmt.Sprintf("🔍 No existe ningún pedido con el código «%s».", query), nil)
		return err
	}
	if err != nil {
		return fmt.Errorf("lookup %q: %w", query, err)
	}

	id, err := f.messenger.SendMessage(ctx, in.ChatID, AdminCard(ticket), ActionMenu(ticket.ID))
	if err != nil {
		return err
	}
	if err := f.tickets.AttachAdminCard(ctx, ticket.ID, id); err != nil {
		f.logger.Debug("admin card id not stored", slog.String("ticket", ticket.ID), slog.String("error", err.Error()))
	}
	return nil
}

func (f *BotFacade) answer(ctx context.Context, callbackID, text string, alert bool) {
	if callbackID == "" {
		return
	}
	if err := f.messenger.AnswerCallback(ctx, callbackID, text, alert); err != nil {
		f.logger.Debug("callback not answered", slog.String("error", err.Error()))
	}
}
