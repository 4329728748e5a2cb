package handlers

import "github.com/polkiloo/brisa/internal/domain/model"

// UpdateSubmitter accepts decoded chat events for asynchronous handling.
type UpdateSubmitter interface {
	Submit(in model.Inbound) error
}
