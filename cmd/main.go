package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/avenstek/avenstek-api/config"
	"github.com/avenstek/avenstek-api/internal/container"
	"github.com/avenstek/avenstek-api/internal/domain/repository"
	"github.com/avenstek/avenstek-api/internal/infrastructure/memory"
	pginfra "github.com/avenstek/avenstek-api/internal/infrastructure/postgres"
	mqinfra "github.com/avenstek/avenstek-api/internal/infrastructure/rabbitmq"
	"github.com/avenstek/avenstek-api/internal/router"
	"github.com/avenstek/avenstek-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load(".env.local") // load local overrides if present
	_ = godotenv.Load()             // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)

	if cfg.InsecureJWTSecret() {
		logger.Warn("JWT_SECRET is not set; signing tokens with the public development secret")
	}

	ctx := context.Background()

	var (
		users  repository.UserRepository
		events repository.AuthEventRecorder
		db     pginfra.DBTX
	)

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("STORE_DRIVER=memory; users are lost on restart")
		users = memory.NewUserRepository()
	case config.StoreDriverPostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()

		if cfg.AutoMigrate {
			if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
				log.Fatalf("migration failed: %v", err)
			}
		}
		db = pool
		users = pginfra.NewUserRepository(pool)
	default:
		log.Fatalf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	// Auth event auditing: queue when RabbitMQ is configured, else the store itself.
	if cfg.AuditEnabled {
		switch {
		case cfg.RabbitMQURL != "":
			pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQAuditQueue)
			if err != nil {
				log.Fatalf("failed to connect to rabbitmq: %v", err)
			}
			defer pub.Close()
			events = mqinfra.NewAuthEventPublisher(pub)
		case db != nil:
			events = pginfra.NewAuthEventRepository(db)
		default:
			events = memory.NewBoundedAuthEventRecorder(cfg.AuditMemoryLimit)
		}
	}

	c := container.New(cfg, logger, users, events)
	r := router.NewEngine(c)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.WithFields(logrus.Fields{"store": cfg.StoreDriver, "audit": cfg.AuditEnabled}).Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
