package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-auth-core/config"
	"github.com/oksasatya/go-ddd-auth-core/internal/application"
	"github.com/oksasatya/go-ddd-auth-core/internal/container"
	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-auth-core/internal/infrastructure/memory"
	"github.com/oksasatya/go-ddd-auth-core/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-auth-core/internal/router"
	"github.com/oksasatya/go-ddd-auth-core/pkg/helpers"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	container.SetConfig(cfg)
	container.SetLogger(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cfg.StorageDriver {
	case config.DriverMemory:
		logger.Warn("STORAGE_DRIVER=memory; the seeded user is discarded when the seeder exits")
		container.SetUserRepository(memory.NewUserRepository())
	default:
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), postgres.PoolOptions{MaxConns: 2}, logger)
		if err != nil {
			log.Fatalf("failed to connect postgres: %v", err)
		}
		defer pool.Close()
		container.SetPGPool(pool)
		container.SetUserRepository(postgres.NewUserRepository(pool))
	}

	deps, err := router.BuildAuthDeps()
	if err != nil {
		log.Fatalf("failed to build use cases: %v", err)
	}

	in := application.RegisterInput{
		Email:    getenv("SEED_EMAIL", "demo@example.com"),
		Username: getenv("SEED_USERNAME", "demoUser"),
		Password: getenv("SEED_PASSWORD", "Password123"),
	}
	u, err := deps.Register.Execute(ctx, in)
	switch {
	case err == nil:
		fmt.Printf("seeded user: id=%s email=%s username=%s\n", u.ID(), u.Email(), u.Username())
	case apperror.KindOf(err) == apperror.KindDuplicate:
		fmt.Printf("seed user already registered: %s\n", in.Email)
	case errors.Is(err, context.DeadlineExceeded):
		log.Fatalf("seed timed out: %v", err)
	default:
		log.Fatalf("failed to seed user: %v", err)
	}
}
