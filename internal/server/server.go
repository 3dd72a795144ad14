// Package server boots the Santhai store: config, database, cache,
// storage, background workers and the HTTP listener.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/muthuvel/santhai/app/controllers"
	"github.com/muthuvel/santhai/app/jobs"
	"github.com/muthuvel/santhai/app/listeners"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/config"
	"github.com/muthuvel/santhai/internal/kernel"
	"github.com/muthuvel/santhai/pkg/cache"
	"github.com/muthuvel/santhai/pkg/database"
	"github.com/muthuvel/santhai/pkg/logger"
	"github.com/muthuvel/santhai/pkg/migration"
	"github.com/muthuvel/santhai/pkg/queue"
	"github.com/muthuvel/santhai/pkg/schedule"
	"github.com/muthuvel/santhai/pkg/storage"
)

const queueWorkers = 5

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM.
// Redis being down is survivable: caching and sessions degrade, and the
// queue falls back to in-process memory.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}
	attachMongoLogSink()

	if err := database.Connect(); err != nil {
		return err
	}
	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, cache and sessions degraded", "error", err)
	}
	storage.Connect()

	jobs.RegisterAll()
	listeners.RegisterAll()

	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	} else {
		queue.SetDriver(queue.NewMemoryDriver())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, queueWorkers)
	go controllers.OrderFeed.Run()

	registerSchedule()
	schedule.Start(ctx)

	httpKernel := kernel.NewHTTPKernel()
	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           httpKernel.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("santhai listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// registerSchedule sets up recurring tasks. Scheduled campaigns are
// checked every minute so a due campaign goes out within sixty seconds
// of its scheduled time.
func registerSchedule() {
	db := database.DB
	settings := services.NewSettingsService(db)
	notifier := services.NewNotifierService(db, settings)
	campaigns := services.NewCampaignService(db, settings, notifier)

	schedule.EveryMinute().
		Name("campaigns.dispatch_due").
		WithoutOverlapping().
		Run(func() {
			campaigns.DispatchDue(time.Now())
		})
}

// attachMongoLogSink mirrors log records into MongoDB when a sink is
// configured, alongside the stdout handler.
func attachMongoLogSink() {
	uri := config.LogMongoURI()
	if uri == "" {
		return
	}

	mh, err := logger.NewMongoHandler(uri, config.LogMongoDB(), config.LogMongoCollection())
	if err != nil {
		logger.Warn("mongo log sink unavailable", "error", err)
		return
	}

	logger.L = slog.New(logger.NewMultiHandler(logger.L.Handler(), mh))
	slog.SetDefault(logger.L)
}
