package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/minauth/auth-api/internal/api"
	"github.com/minauth/auth-api/internal/api/handler"
	"github.com/minauth/auth-api/internal/core/crypto"
	"github.com/minauth/auth-api/internal/core/ports"
	"github.com/minauth/auth-api/internal/core/service"
	"github.com/minauth/auth-api/internal/core/token"
	"github.com/minauth/auth-api/internal/infrastructure/config"
	filedb "github.com/minauth/auth-api/internal/infrastructure/db/file"
	mongodb "github.com/minauth/auth-api/internal/infrastructure/db/mongo"
	redisdb "github.com/minauth/auth-api/internal/infrastructure/db/redis"
	httpserver "github.com/minauth/auth-api/internal/infrastructure/http"
	"github.com/minauth/auth-api/internal/infrastructure/queue"
	"github.com/minauth/auth-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().Str("app", cfg.AppName).Str("env", cfg.Env).Str("store", cfg.Store.Backend).Msg("starting")

	repo, readiness, err := buildStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, log)
	dispatcher.Start(ctx)

	hasher := crypto.NewBcryptHasher(cfg.Auth.BcryptCost)
	issuer := token.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(repo, hasher, issuer, dispatcher, cfg.Auth.PasswordMin, cfg.Auth.PasswordMax)

	e := api.NewRouter(api.RouterOptions{
		AuthService:     authService,
		Readiness:       readiness,
		CORSOrigins:     cfg.CORS.Origins,
		CORSCredentials: cfg.CORS.Credentials,
		Logger:          log,
	})

	server := httpserver.NewServer(e, ":"+cfg.Port, log)
	return server.Run(ctx)
}

// buildStore assembles the configured user store backend, optionally
// wrapped with the Redis read-through cache, and the readiness checks that
// go with it.
func buildStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.UserRepository, map[string]handler.Pinger, error) {
	readiness := make(map[string]handler.Pinger)

	var repo ports.UserRepository
	switch cfg.Store.Backend {
	case "mongo":
		_, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		mongoRepo, err := mongodb.NewUserRepository(ctx, db)
		if err != nil {
			return nil, nil, err
		}
		repo = mongoRepo
		readiness["mongodb"] = mongoRepo
	default:
		fileRepo, err := filedb.NewUserRepository(cfg.Store.UsersFile)
		if err != nil {
			return nil, nil, err
		}
		repo = fileRepo
		readiness["user_store"] = fileRepo
	}

	if cfg.Redis.Enabled {
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		cache := redisdb.NewAccountCache(repo, client, log)
		repo = cache
		readiness["redis"] = cache
	}

	return repo, readiness, nil
}
