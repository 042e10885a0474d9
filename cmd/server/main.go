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

	"go.uber.org/zap"

	"github.com/iudanet/socialhub/internal/config"
	"github.com/iudanet/socialhub/internal/crypto"
	"github.com/iudanet/socialhub/internal/idgen"
	"github.com/iudanet/socialhub/internal/logger"
	"github.com/iudanet/socialhub/internal/server/middleware"
	"github.com/iudanet/socialhub/internal/server/router"
	"github.com/iudanet/socialhub/internal/server/service"
	"github.com/iudanet/socialhub/internal/server/storage/sqlstore"
	"github.com/iudanet/socialhub/internal/server/sweeper"
	"github.com/iudanet/socialhub/internal/server/token"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:        cfg.Log.Level,
		File:         cfg.Log.File,
		MaxAge:       cfg.Log.MaxAge.Std(),
		RotationTime: cfg.Log.RotationTime.Std(),
		Dev:          cfg.Log.Dev,
	})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.UsesDefaultSecrets() {
		log.Warn("using default token secrets, set ACCESS_SECRET and REFRESH_SECRET")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlstore.New(ctx, log, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close storage", zap.Error(err))
		}
	}()

	issuer, err := token.NewIssuer(token.Config{
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		SigningMethod: cfg.Auth.SigningMethod,
		Issuer:        cfg.Auth.Issuer,
		AccessTTL:     cfg.Auth.AccessTTL.Std(),
		RefreshTTL:    cfg.Auth.RefreshTTL.Std(),
	})
	if err != nil {
		return fmt.Errorf("failed to create token issuer: %w", err)
	}

	ids, err := idgen.New(cfg.IDs.Node)
	if err != nil {
		return err
	}

	hasher := crypto.BcryptHasher{Cost: cfg.Auth.BcryptCost}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window.Std(), log,
		middleware.WithTrustedProxy(cfg.Server.TrustProxy))
	defer limiter.Stop()

	if cfg.Sweeper.Enabled {
		sw, err := sweeper.New(log, store, cfg.Sweeper.Schedule)
		if err != nil {
			return err
		}
		sw.Start()
		defer sw.Stop()
	}

	handler := router.New(router.Deps{
		Logger:      log,
		Auth:        service.NewAuthService(log, store, store, hasher, issuer, ids, service.WithMaxSessions(cfg.Auth.MaxSessions)),
		Users:       service.NewUserService(log, store, hasher, ids),
		Posts:       service.NewPostService(log, store, ids),
		Comments:    service.NewCommentService(log, store, store, ids),
		Verifier:    issuer,
		DB:          store,
		AuthLimiter: limiter,
		Version:     Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		TrustProxy:  cfg.Server.TrustProxy,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", cfg.Server.Addr),
			zap.String("driver", cfg.Database.Driver),
			zap.String("version", Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func printVersion() {
	fmt.Printf("SocialHub Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
