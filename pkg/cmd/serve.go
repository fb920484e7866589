package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ksysoev/cgiform/pkg/inspect"
)

// RunServeCommand starts the inspector server and blocks until the context is
// cancelled or the server fails.
func RunServeCommand(ctx context.Context, arg *args) error {
	if err := initLogger(arg); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	cfg, err := loadConfig(arg)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	srv, err := inspect.New(cfg.Inspect)
	if err != nil {
		return fmt.Errorf("failed to create inspector server: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return srv.Run(ctx) })
	eg.Go(func() error {
		slog.InfoContext(ctx, "inspector listening", "addr", srv.Addr())
		return nil
	})

	return eg.Wait()
}
