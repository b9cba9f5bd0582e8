package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstack-asia/spi-sdb-app/internal/config"
	"github.com/shopstack-asia/spi-sdb-app/internal/di"
	"github.com/shopstack-asia/spi-sdb-app/internal/jobs"
	"github.com/shopstack-asia/spi-sdb-app/internal/log"
	"github.com/shopstack-asia/spi-sdb-app/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	container, err := di.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build container")
	}

	httpServer := server.NewHTTPServer(cfg, logger, container.Handlers, container.Sessions)

	scheduler := jobs.NewScheduler(container.Sessions, cfg.Session.SweepInterval, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, container)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, container *di.Container) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	if scheduler != nil {
		wait := scheduler.Stop()
		wait()
	}

	if err := container.Close(); err != nil {
		logger.Error().Err(err).Msg("backend close error")
	}

	logger.Info().Msg("portal exited cleanly")
}
