package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tukang-design/studio-api/internal/api/router"
	"github.com/tukang-design/studio-api/internal/app/bootstrap"
	"github.com/tukang-design/studio-api/internal/booking"
	"github.com/tukang-design/studio-api/internal/chatlink"
	appconfig "github.com/tukang-design/studio-api/internal/config"
	"github.com/tukang-design/studio-api/internal/contact"
	"github.com/tukang-design/studio-api/internal/notify"
	"github.com/tukang-design/studio-api/internal/observability/metrics"
	"github.com/tukang-design/studio-api/internal/region"
	"github.com/tukang-design/studio-api/internal/wizard"
	"github.com/tukang-design/studio-api/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting studio API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Metrics
	registry := prometheus.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	// Storage. Both degrade to memory when their backend is absent.
	pool := bootstrap.BuildPgxPool(ctx, cfg, logger)
	var bookingRepo booking.Repository
	var contactRepo contact.Repository
	if pool != nil {
		defer pool.Close()
		bookingRepo = booking.NewPostgresRepository(pool)
		contactRepo = contact.NewPostgresRepository(pool)
		logger.Info("using postgres storage")
	} else {
		bookingRepo = booking.NewInMemoryRepository()
		contactRepo = contact.NewInMemoryRepository()
		logger.Warn("database not configured, using in-memory storage")
	}

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	var sessionStore wizard.Store
	if redisClient != nil {
		defer redisClient.Close()
		sessionStore = wizard.NewRedisStore(redisClient, cfg.SessionTTL)
		logger.Info("using redis session store", "ttl", cfg.SessionTTL)
	} else {
		sessionStore = wizard.NewMemoryStore()
		logger.Warn("redis not configured, wizard sessions are in-memory")
	}

	// Region detection
	resolverOpts := []region.Option{
		region.WithMetrics(bookingMetrics),
		region.WithLogger(logger),
	}
	if redisClient != nil {
		resolverOpts = append(resolverOpts, region.WithCache(redisClient, cfg.RegionCacheTTL))
	}
	resolver := region.NewResolver(cfg.GeoIPBaseURL, cfg.GeoIPTimeout, resolverOpts...)

	// Operator notifications
	var sender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		sender = sg
	} else {
		sender = notify.NewStubEmailSender(logger)
		logger.Warn("sendgrid not configured, operator emails are logged only")
	}
	notifier := notify.NewService(sender, cfg.NotifyRecipients, logger)

	// Handlers
	wizardHandler := wizard.NewHandler(wizard.HandlerConfig{
		Store:         sessionStore,
		Bookings:      bookingRepo,
		Resolver:      resolver,
		Notifier:      notifier,
		Metrics:       bookingMetrics,
		Logger:        logger,
		CalendarURL:   cfg.CalendarURL,
		SubmitTimeout: cfg.SubmissionTimeout,
	})
	contactHandler := contact.NewHandler(contactRepo, notifier, bookingMetrics, logger)
	bookingHandler := booking.NewHandler(bookingRepo, logger)
	chatLinkHandler := chatlink.NewHandler(chatlink.NewBuilder(cfg.WhatsAppNumber))

	r := router.New(&router.Config{
		Logger:             logger,
		WizardHandler:      wizardHandler,
		ContactHandler:     contactHandler,
		BookingHandler:     bookingHandler,
		ChatLinkHandler:    chatLinkHandler,
		MetricsHandler:     metricsHandler,
		AdminAuthSecret:    cfg.AdminJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
