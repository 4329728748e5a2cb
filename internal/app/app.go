package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/brisa/internal/config"
	"github.com/polkiloo/brisa/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewOrderCommitter,
		NewBotFacade,
		newHTTPServer,
		newUpdateDispatcher,
		newRetentionSweeper,
	),
	fx.Invoke(registerLifecycle),
)

// WebhookRegistrar points the Bot API at the public update endpoint.
type WebhookRegistrar interface {
	SetWebhook(ctx context.Context, url, secret string) error
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type dispatcherParams struct {
	fx.In

	Facade *BotFacade
	Config *config.Config
	Logger *slog.Logger
}

func newUpdateDispatcher(p dispatcherParams) *worker.UpdateDispatcher {
	return worker.NewUpdateDispatcher(
		p.Facade,
		p.Config.WorkerPoolSize,
		p.Config.UpdateQueueSize,
		p.Logger,
	)
}

type sweeperParams struct {
	fx.In

	Facade *BotFacade
	Config *config.Config
	Logger *slog.Logger
}

func newRetentionSweeper(p sweeperParams) *worker.RetentionSweeper {
	return worker.NewRetentionSweeper(
		p.Facade,
		p.Config.TicketRetention,
		p.Config.SweepInterval,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.UpdateDispatcher
	Sweeper    *worker.RetentionSweeper
	Webhook    WebhookRegistrar
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting brisa",
				slog.String("addr", p.Server.Addr),
				slog.String("webhook_path", p.Config.WebhookPath))
			p.Dispatcher.Start(ctx)
			p.Sweeper.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()

			if url := p.Config.WebhookURL(); url != "" {
				if err := p.Webhook.SetWebhook(ctx, url, p.Config.WebhookSecret); err != nil {
					// updates can still arrive if the webhook was registered earlier
					p.Logger.Error("webhook registration failed", slog.String("url", url), slog.String("error", err.Error()))
				} else {
					p.Logger.Info("webhook registered", slog.String("url", url))
				}
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			// stop intake first, then drain queued updates
			serverErr := p.Server.Shutdown(shutdownCtx)
			p.Dispatcher.Stop()
			p.Sweeper.Stop()

			if serverErr != nil && !errors.Is(serverErr, http.ErrServerClosed) {
				return serverErr
			}
			p.Logger.Info("brisa stopped")
			return nil
		},
	})
}
