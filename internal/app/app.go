package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecommerce/internal/catalog"
	"github.com/vladislavdragonenkov/ecommerce/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/ecommerce/internal/health"
	"github.com/vladislavdragonenkov/ecommerce/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/ecommerce/internal/metrics"
	"github.com/vladislavdragonenkov/ecommerce/internal/service/order"
	"github.com/vladislavdragonenkov/ecommerce/internal/transport/httpx"
	"github.com/vladislavdragonenkov/ecommerce/internal/version"
)

const shutdownTimeout = 5 * time.Second

// Config описывает настройки запуска приложения.
type Config struct {
	// HTTPAddr — адрес основного JSON API.
	HTTPAddr string
	// MetricsAddr — адрес служебного сервера: метрики и health-пробы.
	MetricsAddr string
	// Storage — режим хранилища: memory или postgres.
	Storage string
	// PostgresDSN обязателен при Storage=postgres.
	PostgresDSN string
	// KafkaBrokers — список брокеров через запятую; пустой отключает события.
	KafkaBrokers string
}

// DefaultConfig возвращает базовые адреса и in-memory хранилище.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
		Storage:     StorageMemory,
	}
}

// Run собирает зависимости и обслуживает запросы до отмены контекста.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	// Kafka опционален: без брокеров события просто не публикуются.
	kafkaProducer, _ := initKafkaProducer(cfg.KafkaBrokers, logger)
	defer closeKafka(kafkaProducer, logger)

	var publisher domain.EventPublisher
	if kafkaProducer != nil {
		publisher = kafka.NewOrderPublisher(kafkaProducer)
	}

	orderMetrics := metrics.NewOrderMetrics()
	httpMetrics := metrics.NewHTTPMetrics()

	cat := catalog.New(deps.Customers, deps.Products)
	orderSvc := order.NewService(
		deps.Orders,
		cat,
		publisher,
		orderMetrics,
		logger.WithField("component", "order-service"),
	)

	handler := httpx.NewHandler(
		deps.Customers,
		deps.Accounts,
		deps.Products,
		cat,
		orderSvc,
		logger.WithField("component", "http"),
	)
	router := httpx.NewRouter(handler, httpMetrics, logger.WithField("component", "http"))

	healthHandler := healthcheck.NewHandler(version.String())
	if deps.Store != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewPingChecker("postgres", deps.Store))
	}

	metricsSrv := startOpsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startOpsServer запускает служебный HTTP-сервер: /metrics и health-пробы.
func startOpsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
