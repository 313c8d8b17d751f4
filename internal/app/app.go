package app

import (
	"context"
	"io"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/best-buy/internal/catalog"
	"github.com/xenking/best-buy/internal/cli"
	"github.com/xenking/best-buy/internal/domain/order"
	"github.com/xenking/best-buy/internal/domain/store"
	"github.com/xenking/best-buy/internal/storage/memory"
)

// Run creates all dependencies and runs the store menu on the process
// terminal until the user quits or ctx is canceled. It is the single wiring
// point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	return run(ctx, lg, m.MeterProvider(), m.TracerProvider(), cfg, os.Stdin, os.Stdout)
}

func run(
	ctx context.Context,
	lg *zap.Logger,
	mp metric.MeterProvider,
	tp trace.TracerProvider,
	cfg *Config,
	in io.Reader,
	out io.Writer,
) error {
	ctx = zctx.Base(ctx, lg)
	lg.Info("Initializing",
		zap.String("catalog", catalogSource(cfg)),
		zap.Bool("atomic_checkout", cfg.AtomicCheckout),
	)

	c, err := loadCatalog(cfg)
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}
	lg.Info("Catalog loaded",
		zap.Int("products", len(c.Products)),
		zap.Int("promotions", len(c.Promotions)),
	)

	if cfg.DumpCatalog {
		if _, err := out.Write(catalog.Encode(c.Products)); err != nil {
			return errors.Wrap(err, "write catalog")
		}
		return nil
	}

	var storeOpts []store.Option
	if cfg.AtomicCheckout {
		storeOpts = append(storeOpts, store.WithRollback())
	}
	s := store.New(c.Products, storeOpts...)

	// Domain services.
	orderService := order.NewService(s, memory.NewOrderRepository(),
		order.WithTracer(tp.Tracer(cfg.ServiceName)),
		order.WithMeter(mp.Meter(cfg.ServiceName)),
	)

	if err := cli.New(s, orderService, in, out).Run(ctx); err != nil {
		return errors.Wrap(err, "menu")
	}
	lg.Info("Session closed", zap.Int("products_left", s.TotalQuantity()))
	return nil
}

func loadCatalog(cfg *Config) (*catalog.Catalog, error) {
	if cfg.CatalogFile == "" {
		return catalog.Default()
	}
	return catalog.Load(cfg.CatalogFile)
}

func catalogSource(cfg *Config) string {
	if cfg.CatalogFile == "" {
		return "embedded"
	}
	return cfg.CatalogFile
}
