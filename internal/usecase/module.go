package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/brisa/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	func(cfg *config.Config) AdminID { return AdminID(cfg.AdminChatID) },
	NewTicketUseCase,
	NewLifecycleUseCase,
)
