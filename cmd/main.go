package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/flixdash/internal/adapters/http/api"
	"github.com/okian/flixdash/internal/adapters/http/site"
	"github.com/okian/flixdash/internal/adapters/http/swagger"
	app "github.com/okian/flixdash/internal/app"
	"github.com/okian/flixdash/internal/config"
	"github.com/okian/flixdash/pkg/logger"
	"github.com/okian/flixdash/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Metrics live on a custom registry; keep the default one empty.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr since the logger isn't configured yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.InitWithOptions(cfg.LogFormat, os.Stdout); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Apply configured log level (fallback to info on invalid input)
	loggerInstance := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := site.Check(); err != nil {
		loggerInstance.Fatal(ctx, "dashboard assets missing", logger.Error(err))
	}

	// The catalog is loaded once here; a broken file stops the process.
	svc := app.New(
		app.WithLogger(loggerInstance.Named("service")),
		app.WithDataPath(cfg.DataPath),
		app.WithWatch(cfg.WatchData),
	)
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Fatal(ctx, "failed to start service", logger.String("data_path", cfg.DataPath), logger.Error(err))
	}
	defer svc.Stop()

	scheduler, err := scheduleMetrics(cfg.MetricsSchedule)
	if err != nil {
		loggerInstance.Fatal(ctx, "failed to schedule metrics refresh", logger.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc, cfg.DatasetPageLimit),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// newMux registers the dashboard, docs and API routes.
func newMux(ctx context.Context, svc *app.Service, datasetLimit int) *http.ServeMux {
	mux := http.NewServeMux()
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc, datasetLimit).Register(ctx, mux)
	return mux
}

// scheduleMetrics registers the periodic runtime gauge refresh on a new
// cron. The caller starts and stops it. Catalog gauges are set by each load.
func scheduleMetrics(spec string) (*cron.Cron, error) {
	c := cron.New()
	if err := c.AddFunc(spec, metrics.RefreshSystem); err != nil {
		return nil, fmt.Errorf("metrics schedule %q: %w", spec, err)
	}
	return c, nil
}
