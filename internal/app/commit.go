package app

import (
	"context"
	"log/slog"

	"github.com/polkiloo/brisa/internal/conversation"
	"github.com/polkiloo/brisa/internal/domain/model"
	"github.com/polkiloo/brisa/internal/usecase"
)

// Sender posts new messages.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, kb *model.Keyboard) (int64, error)
}

// OrderCommitter issues tickets for confirmed drafts and announces them.
type OrderCommitter struct {
	tickets *usecase.TicketUseCase
	sender  Sender
	adminID int64
	logger  *slog.Logger
}

func NewOrderCommitter(tickets *usecase.TicketUseCase, sender Sender, adminID usecase.AdminID, logger *slog.Logger) *OrderCommitter {
	return &OrderCommitter{tickets: tickets, sender: sender, adminID: int64(adminID), logger: logger}
}

// CommitOrder issues the ticket, then sends the customer receipt and the admin card.
// Only issuing can fail the commit; delivery problems are logged.
func (c *OrderCommitter) CommitOrder(ctx context.Context, chatID int64, draft *model.DraftOrder) error {
	ticket, err := c.tickets.Issue(ctx, chatID, draft)
	if err != nil {
		return err
	}
	c.logger.Info("ticket issued",
		slog.String("ticket", ticket.ID),
		slog.Int64("chat", chatID),
		slog.String("zone", ticket.Zone),
		slog.Int64("price", ticket.Price))

	if id, err := c.sender.SendMessage(ctx, chatID, ReceiptText(ticket), nil); err != nil {
		c.logger.Warn("receipt not sent", slog.String("ticket", ticket.ID), slog.String("error", err.Error()))
	} else if err := c.tickets.AttachReceipt(ctx, ticket.ID, id); err != nil {
		c.logger.Warn("receipt id not stored", slog.String("ticket", ticket.ID), slog.String("error", err.Error()))
	}

	if _, err := c.sender.SendMessage(ctx, chatID, "¿Deseas realizar algo más?", conversation.MainMenu()); err != nil {
		c.logger.Debug("main menu not sent", slog.Int64("chat", chatID), slog.String("error", err.Error()))
	}

	if id, err := c.sender.SendMessage(ctx, c.adminID, "🆕 Nuevo pedido\n\n"+AdminCard(ticket), ActionMenu(ticket.ID)); err != nil {
		c.logger.Warn("admin not notified", slog.String("ticket", ticket.ID), slog.String("error", err.Error()))
	} else if err := c.tickets.AttachAdminCard(ctx, ticket.ID, id); err != nil {
		c.logger.Warn("admin card id not stored", slog.String("ticket", ticket.ID), slog.String("error", err.Error()))
	}
	return nil
}
