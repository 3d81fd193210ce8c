package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/avenstek/avenstek-api/config"
	pginfra "github.com/avenstek/avenstek-api/internal/infrastructure/postgres"
	mqinfra "github.com/avenstek/avenstek-api/internal/infrastructure/rabbitmq"
	"github.com/avenstek/avenstek-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-audit-worker", cfg.Env)

	if !cfg.AuditEnabled {
		logger.Info("AUDIT_ENABLED=false; audit worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQAuditQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	conn, ch, err := helpers.DialRabbit(cfg.RabbitMQURL, cfg.RabbitMQAuditQueue)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQAuditQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	consumer := mqinfra.NewAuditConsumer(pginfra.NewAuthEventRepository(pool), logger)
	done := make(chan struct{})
	go func() {
		consumer.Run(ctx, msgs)
		close(done)
	}()

	logger.Infof("audit worker listening on queue=%s", cfg.RabbitMQAuditQueue)
	<-ctx.Done()
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
