package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/Lootkeeper_Go/internal/config"
	"github.com/osse101/Lootkeeper_Go/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Default().Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf(ErrMsgConfigFailed, err)
	}
	initLogger(cfg)
	log := slog.Default()
	log.Info(LogMsgStarting, "environment", cfg.Environment, "storage", cfg.StorageDriver)

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return fmt.Errorf(ErrMsgConfigFailed, err)
	}
	for _, w := range warnings {
		log.Warn(LogMsgEnvWarning, "warning", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := wire(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	log.Info(LogMsgReady, "trade_currency", cfg.TradeCurrency, "rng_seed", app.Seed)

	// SIGHUP re-reads the catalog file without a restart
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				log.Info(LogMsgReloading, "path", cfg.CatalogPath)
				if err := reloadCatalog(ctx, app, cfg.CatalogPath); err != nil {
					log.Error(LogMsgReloadFailed, "error", err)
				}
			}
		}
	}()

	srv := server.NewServer(cfg.Port, app.DBPool(), cfg.Version)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error(LogMsgServerFailed, "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(LogMsgShuttingDown)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
