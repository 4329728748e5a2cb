package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/brisa/internal/config"
	"github.com/polkiloo/brisa/internal/server/http/handlers"
	"github.com/polkiloo/brisa/internal/server/http/middleware"
)

const healthPath = "/healthz"

// Params are the router dependencies.
type Params struct {
	fx.In

	Submitter handlers.UpdateSubmitter
	Config    *config.Config
	Logger    *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger, healthPath))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	webhook := handlers.NewWebhookHandler(p.Submitter, p.Logger)

	engine.GET(healthPath, handlers.Health)
	engine.POST(p.Config.WebhookPath,
		middleware.WebhookSecret(p.Config.WebhookSecret),
		middleware.LimitBody(middleware.DefaultBodyLimit),
		webhook.Receive,
	)

	return engine
}
