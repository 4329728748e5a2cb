package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/brisa/internal/adapter/telegram"
	"github.com/polkiloo/brisa/internal/app"
	"github.com/polkiloo/brisa/internal/config"
	"github.com/polkiloo/brisa/internal/conversation"
	"github.com/polkiloo/brisa/internal/logger"
	"github.com/polkiloo/brisa/internal/pricing"
	"github.com/polkiloo/brisa/internal/server/http/handlers"
	"github.com/polkiloo/brisa/internal/server/http/router"
	"github.com/polkiloo/brisa/internal/storage/memory"
	"github.com/polkiloo/brisa/internal/usecase"
	"github.com/polkiloo/brisa/internal/worker"
)

// Messenger is everything the bot needs from the chat platform.
type Messenger interface {
	app.Messenger
	app.WebhookRegistrar
	usecase.Notifier
	conversation.Messenger
}

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		pricing.Module,
		memory.Module,
		telegram.Module,
		fx.Provide(func(c *telegram.Client) Messenger { return c }),
		usecase.Module,
		conversation.Module,
		fx.Provide(
			func(m Messenger) app.Messenger { return m },
			func(m Messenger) app.Sender { return m },
			func(m Messenger) app.WebhookRegistrar { return m },
			func(m Messenger) usecase.Notifier { return m },
			func(m Messenger) conversation.Messenger { return m },
			func(c *app.OrderCommitter) conversation.Committer { return c },
			func(s *conversation.Service) app.Conversation { return s },
			func(d *worker.UpdateDispatcher) handlers.UpdateSubmitter { return d },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
