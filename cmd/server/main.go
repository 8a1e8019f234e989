// Command replyforge-server starts the ReplyForge HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/replyforge/replyforge/internal/config"
	"github.com/replyforge/replyforge/internal/genai"
	"github.com/replyforge/replyforge/internal/limiter"
	"github.com/replyforge/replyforge/internal/migrate"
	"github.com/replyforge/replyforge/internal/payments"
	"github.com/replyforge/replyforge/internal/quota"
	"github.com/replyforge/replyforge/internal/repository/postgres"
	httpserver "github.com/replyforge/replyforge/internal/server/http"
	"github.com/replyforge/replyforge/internal/service"
	"github.com/replyforge/replyforge/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and starts the HTTP server.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.ListenAddr),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("pgxpool.New", zap.Error(err))
	}
	defer pool.Close()

	// Repositories
	db := &postgres.DB{Pool: pool}
	userRepo := postgres.NewUserRepo(db)
	paymentRepo := postgres.NewPaymentRepo(db)

	lim := limiter.NewPG(pool, cfg.LoginFailWindow, cfg.LoginMaxFails, cfg.LoginBlockFor)
	gate := quota.NewPG(pool, cfg.FreeTierCeiling)

	// Outbound clients
	issuer := token.NewIssuer([]byte(cfg.JWTKey), cfg.AccessTTL)
	provider := genai.NewClient(cfg.GenAIAPIURL, cfg.GenAIAPIKey, cfg.ProviderTimeout)
	processor := payments.NewClient(cfg.StripeAPIURL, cfg.StripeSecretKey)

	// Services
	authSvc := service.NewAuthService(userRepo, issuer, lim)
	replySvc := service.NewReplyService(userRepo, gate, provider, logger)
	upgradeSvc := service.NewUpgradeService(userRepo, logger)

	app := httpserver.New(httpserver.Deps{
		Auth:     authSvc,
		Replies:  replySvc,
		Upgrades: upgradeSvc,
		Intents:  processor,
		Payments: paymentRepo,
		Users:    userRepo,
		Verifier: issuer,
		DB:       pool,
		Log:      logger,
	})

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: app.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.ListenAddr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
