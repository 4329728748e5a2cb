package memory

import (
	"go.uber.org/fx"

	"github.com/polkiloo/brisa/internal/domain/repository"
)

// Module wires in-memory storage and repository adapters.
var Module = fx.Options(
	fx.Provide(New),
	fx.Provide(
		func(s *Storage) repository.TicketRepository { return s.Tickets() },
	),
)
