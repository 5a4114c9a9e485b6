package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/eventpulse-api/cmd/mainconfig"
	"github.com/wolfman30/eventpulse-api/internal/api/router"
	"github.com/wolfman30/eventpulse-api/internal/app/bootstrap"
	"github.com/wolfman30/eventpulse-api/internal/chat"
	appconfig "github.com/wolfman30/eventpulse-api/internal/config"
	"github.com/wolfman30/eventpulse-api/internal/events"
	"github.com/wolfman30/eventpulse-api/internal/http/handlers"
	"github.com/wolfman30/eventpulse-api/internal/imagegen"
	"github.com/wolfman30/eventpulse-api/internal/messaging"
	"github.com/wolfman30/eventpulse-api/internal/observability/metrics"
	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.NewWithWriter(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting eventpulse API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	handler, cleanup := buildHandler(context.Background(), cfg, logger)
	defer cleanup()

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout(cfg.ImageTimeout),
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		cleanup()
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// buildHandler wires every adapter into the router. The returned cleanup
// releases backend clients and is safe to call more than once.
func buildHandler(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (http.Handler, func()) {
	metricsHandler, m := setupMetrics(cfg.MetricsEnabled)

	backend, err := bootstrap.BuildChatBackend(ctx, cfg, logger, mainconfig.LoadAWSConfig)
	if err != nil {
		logger.Warn("chat backend unavailable; using local replies", "error", err)
	}
	responder := chat.NewResponder(chat.ResponderConfig{
		Backend: backend,
		Timeout: cfg.ChatTimeout,
		Logger:  logger,
		Metrics: m,
	})

	images := imagegen.New(imagegen.Config{
		BaseURL: cfg.ImageBaseURL,
		Model:   cfg.ImageModel,
		Timeout: cfg.ImageTimeout,
		Logger:  logger,
		Metrics: m,
	})

	sms := bootstrap.BuildSMSService(cfg, logger, m)

	routerCfg := &router.Config{
		Logger:             logger,
		ChatHandler:        handlers.NewChatHandler(responder, logger),
		EventsHandler:      handlers.NewEventsHandler(events.NewCatalog()),
		ImageHandler:       handlers.NewImageHandler(images, logger),
		SMSHandler:         handlers.NewSMSHandler(sms, messaging.NewDispatcher(sms), logger),
		Static:             handlers.NewSPAHandler(cfg.StaticDir),
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	logger.Info("routes ready",
		"chat_backend", responder.BackendName(),
		"sms_configured", sms.Configured(),
		"static_dir", cfg.StaticDir,
	)

	closed := false
	cleanup := func() {
		if closed {
			return
		}
		closed = true
		if closer, ok := backend.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				logger.Warn("failed to close chat backend", "error", err)
			}
		}
	}
	return router.New(routerCfg), cleanup
}

// writeTimeout leaves room past the effective image timeout, which falls back
// to the client default when unset.
func writeTimeout(imageTimeout time.Duration) time.Duration {
	if imageTimeout <= 0 {
		imageTimeout = imagegen.DefaultTimeout
	}
	return imageTimeout + 15*time.Second
}

// setupMetrics builds an isolated registry. The handler is nil when metrics
// are disabled; the returned *Metrics is always usable.
func setupMetrics(enabled bool) (http.Handler, *metrics.Metrics) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if !enabled {
		return nil, m
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), m
}
