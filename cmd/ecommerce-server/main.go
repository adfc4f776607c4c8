package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecommerce/internal/app"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

// readConfig формирует конфигурацию приложения из переменных окружения.
func readConfig() app.Config {
	cfg := app.DefaultConfig()
	if v := os.Getenv("ECOM_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("ECOM_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("ECOM_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
		cfg.Storage = app.StoragePostgres
	}
	if v := os.Getenv("ECOM_STORAGE"); v != "" {
		cfg.Storage = v
	}
	cfg.KafkaBrokers = os.Getenv("ECOM_KAFKA_BROKERS")
	return cfg
}

func main() {
	setupLogger()
	cfg := readConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"http_addr":    cfg.HTTPAddr,
		"metrics_addr": cfg.MetricsAddr,
		"storage":      cfg.Storage,
	}).Info("запускаем e-commerce сервис")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("сервис остановлен")
}
