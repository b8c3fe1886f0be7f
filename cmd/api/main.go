// @title                       Burger Queen POS API
// @version                     1.0
// @description                 Point-of-sale API: accounts, catalog and orders.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

//go:generate swag init --dir ../../ --generalInfo cmd/api/main.go --output ../../docs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/burgerqueen/pos-api/internal/api"
	"github.com/burgerqueen/pos-api/internal/api/handler"
	"github.com/burgerqueen/pos-api/internal/core/service"
	"github.com/burgerqueen/pos-api/internal/infrastructure/config"
	"github.com/burgerqueen/pos-api/internal/infrastructure/crypto"
	mongoinfra "github.com/burgerqueen/pos-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/burgerqueen/pos-api/internal/infrastructure/db/redis"
	"github.com/burgerqueen/pos-api/internal/infrastructure/token"
	"github.com/burgerqueen/pos-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pos-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load() // load .env if present

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "pos-api",
	})

	// --- Infrastructure ---
	mongoClient, db, err := mongoinfra.Connect(ctx, mongoinfra.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongoinfra.NewUserRepository(db)
	productRepo := mongoinfra.NewProductRepository(db)
	orderRepo := mongoinfra.NewOrderRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := orderRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	hasher := crypto.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := token.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)

	// --- Services ---
	users := service.NewUserService(userRepo, hasher, log.With().Str("component", "users").Logger())
	svc := api.Services{
		Auth:     service.NewAuthService(userRepo, hasher, tokens),
		Users:    users,
		Products: service.NewProductService(productRepo, log.With().Str("component", "products").Logger()),
		Orders: service.NewOrderService(orderRepo, productRepo, redisinfra.NewIdempotencyStore(rdb),
			cfg.Redis.IdempotencyTTL, log.With().Str("component", "orders").Logger()),
		Tokens: tokens,
	}

	if _, err := users.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	e := api.NewRouter(svc, api.Options{
		Log: log,
		Checks: map[string]handler.DependencyCheck{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	return shutdown(srv, log)
}

func shutdown(srv *http.Server, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info().Msg("server exited properly")
	return nil
}
