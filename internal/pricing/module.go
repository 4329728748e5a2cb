package pricing

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/brisa/internal/config"
)

// Module provides the zone table and pricing engine.
var Module = fx.Provide(newTable, NewEngine)

type tableParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newTable(p tableParams) (*Table, error) {
	if p.Config.ZonesFile == "" {
		return MustDefault(), nil
	}
	t, err := LoadFile(p.Config.ZonesFile)
	if err != nil {
		return nil, err
	}
	p.Logger.Info("zone table loaded", slog.String("file", p.Config.ZonesFile), slog.Int("zones", len(t.zones)))
	return t, nil
}
