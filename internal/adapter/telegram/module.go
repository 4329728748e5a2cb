package telegram

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/brisa/internal/config"
)

// Module exposes the Bot API client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (*Client, error) {
	return NewClient(p.Config.BotAPIURL, p.Config.BotToken, p.Logger)
}
