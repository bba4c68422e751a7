package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subscription-storefront/internal/config"
	"subscription-storefront/internal/domain/ports/adapter"
	"subscription-storefront/internal/domain/ports/repository"
	pg "subscription-storefront/internal/infra/db/postgres"
	"subscription-storefront/internal/infra/logging"
	"subscription-storefront/internal/infra/memory"
	"subscription-storefront/internal/infra/metrics"
	red "subscription-storefront/internal/infra/redis"
	"subscription-storefront/internal/infra/storage"
	tele "subscription-storefront/internal/infra/telegram"
	"subscription-storefront/internal/infra/web"
	"subscription-storefront/internal/infra/worker"
	"subscription-storefront/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, relaxed cookies)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("dev mode enabled")
	}

	metrics.MustRegister()

	catalog, err := cfg.BuildCatalog()
	if err != nil {
		logger.Fatal().Err(err).Msg("catalog")
	}

	// ---- Repositories ----
	var (
		orderRepo      repository.OrderRepository
		suggestionRepo repository.SuggestionRepository
		inquiryRepo    repository.InquiryRepository
	)
	if cfg.Database.URL != "" {
		pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres")
		}
		defer pool.Close()
		orderRepo = pg.NewOrderRepo(pool)
		suggestionRepo = pg.NewSuggestionRepo(pool)
		inquiryRepo = pg.NewInquiryRepo(pool)
	} else {
		logger.Warn().Msg("database.url empty; using in-memory repositories, data is lost on restart")
		orderRepo = memory.NewOrderRepo()
		suggestionRepo = memory.NewSuggestionRepo()
		inquiryRepo = memory.NewInquiryRepo()
	}

	// ---- Redis (optional, rate limiting only) ----
	var limiter *red.RateLimiter
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		limiter = red.NewRateLimiter(redisClient)
	} else {
		logger.Warn().Msg("redis.url empty; submission rate limiting disabled")
	}

	// ---- Telegram ----
	var notifier adapter.Notifier
	if cfg.Telegram.Token != "" {
		notifier, err = tele.NewNotifier(&cfg.Telegram)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram")
		}
	} else {
		logger.Warn().Msg("telegram.token empty; admin notifications disabled")
		notifier = tele.NoopNotifier{}
	}

	// ---- Uploads ----
	shots, err := storage.NewScreenshotStore(cfg.Uploads.Dir)
	if err != nil {
		logger.Fatal().Err(err).Msg("uploads")
	}

	// ---- Notification workers ----
	pool := worker.NewPool(cfg.Submissions.NotifyWorkers, logger)
	pool.Start(ctx)
	defer pool.Stop()

	// ---- Use cases ----
	orderUC := usecase.NewOrderUseCase(
		orderRepo, catalog, notifier, pool,
		cfg.Server.BaseURL,
		cfg.Uploads.RequireScreenshot,
		cfg.Orders.AllowAnyTransition,
		logger,
	)
	suggestionUC := usecase.NewSuggestionUseCase(suggestionRepo, notifier, pool, cfg.Submissions.AllowAnonymous, logger)
	inquiryUC := usecase.NewInquiryUseCase(inquiryRepo, notifier, pool, cfg.Submissions.AllowAnonymous, logger)

	// ---- HTTP ----
	auth := web.NewAuthManager(cfg.Auth.JWTSecret, cfg.Auth.SecureCookies, cfg.Auth.CookieDomain, cfg.Auth.SessionTTL)
	csrf := web.NewCSRF(cfg.Auth.SecureCookies)
	srv := web.NewServer(orderUC, suggestionUC, inquiryUC, catalog, auth, csrf, shots, limiter, cfg, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server stopped")
			cancel()
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigc:
	case <-ctx.Done():
	}
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
