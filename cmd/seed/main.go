package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/avenstek/avenstek-api/config"
	"github.com/avenstek/avenstek-api/internal/domain/entity"
	"github.com/avenstek/avenstek-api/internal/domain/repository"
	pginfra "github.com/avenstek/avenstek-api/internal/infrastructure/postgres"
	"github.com/avenstek/avenstek-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	if cfg.SeedAdminPassword == "" {
		logger.Info("SEED_ADMIN_PASSWORD is empty; nothing to seed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if len(cfg.SeedAdminPassword) > helpers.MaxPasswordBytes {
		log.Fatalf("SEED_ADMIN_PASSWORD must be at most %d bytes", helpers.MaxPasswordBytes)
	}
	hash, err := helpers.NewPasswordHasher(cfg.BcryptCost).Hash(cfg.SeedAdminPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := &entity.User{
		Email:        cfg.SeedAdminEmail,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
	}
	err = pginfra.NewUserRepository(pool).Create(ctx, admin)
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		fmt.Printf("admin already seeded: email=%s\n", cfg.SeedAdminEmail)
	case err != nil:
		log.Fatalf("failed to seed admin: %v", err)
	default:
		fmt.Printf("seeded admin: id=%s email=%s\n", admin.ID, admin.Email)
	}
}
