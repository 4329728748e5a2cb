package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/brisa/internal/adapter/telegram"
	"github.com/polkiloo/brisa/internal/worker"
)

// WebhookHandler receives Bot API updates.
type WebhookHandler struct {
	submitter UpdateSubmitter
	logger    *slog.Logger
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(submitter UpdateSubmitter, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{submitter: submitter, logger: logger}
}

// Receive handles POST <webhook path>. Unsupported updates are acknowledged and dropped.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var update telegram.Update
	if err := json.NewDecoder(c.Request.Body).Decode(&update); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	in, ok := update.ToInbound()
	if !ok {
		h.logger.Debug("update ignored", slog.Int64("update_id", update.UpdateID))
		c.Status(http.StatusOK)
		return
	}

	if err := h.submitter.Submit(in); err != nil {
		switch {
		case errors.Is(err, worker.ErrQueueFull), errors.Is(err, worker.ErrNotRunning):
			h.logger.Warn("update rejected",
				slog.Int64("update_id", update.UpdateID),
				slog.Int64("chat_id", in.ChatID),
				slog.String("error", err.Error()))
			c.Status(http.StatusServiceUnavailable)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}
