// Command best-buy runs the interactive store on the terminal.
package main

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	store "github.com/xenking/best-buy/internal/app"
)

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, m *app.Telemetry) error {
		cfg, err := store.LoadConfig()
		if err != nil {
			return errors.Wrap(err, "config")
		}
		lg.Debug("Config loaded",
			zap.String("service", cfg.ServiceName),
			zap.Bool("dump_catalog", cfg.DumpCatalog),
		)
		return store.Run(ctx, lg, m, cfg)
	})
}
