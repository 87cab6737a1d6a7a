package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	adapthttp "weighttracker/internal/adapter/http"
	"weighttracker/internal/adapter/postgres"
	"weighttracker/internal/app"
	"weighttracker/internal/config"
	"weighttracker/internal/logging"
)

func main() {
	initDB := flag.Bool("init-db", false, "drop and recreate the database schema, then exit")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	logger := logging.New(cfg)
	defer func() { _ = logger.Sync() }()

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db open", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if *initDB {
		if err := db.Reset(context.Background()); err != nil {
			logger.Fatal("init-db", zap.Error(err))
		}
		logger.Info("database schema recreated")
		return
	}

	sessionRepo := postgres.NewSessionRepo(db)

	authSvc := app.NewAuthService(db, sessionRepo)
	accountSvc := app.NewAccountService(db)
	weightSvc := app.NewWeightService(db)
	dashboardSvc := app.NewDashboardService(db)

	srv := adapthttp.New(authSvc, accountSvc, weightSvc, dashboardSvc, cfg.SecretKey, cfg.RateLimitPerMinute, logger)

	if cfg.SSOEnabled() {
		provider, err := oidc.NewProvider(context.Background(), cfg.OIDCIssuer)
		if err != nil {
			logger.Fatal("oidc provider", zap.Error(err))
		}
		srv.SetOIDC(&adapthttp.OIDCConfig{
			Provider: provider,
			OAuth2Config: oauth2.Config{
				ClientID:     cfg.OIDCClientID,
				ClientSecret: cfg.OIDCClientSecret,
				RedirectURL:  cfg.OIDCRedirectURL,
				Endpoint:     provider.Endpoint(),
				Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
			},
		})
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
