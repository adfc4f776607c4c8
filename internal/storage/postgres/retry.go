package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

// retryConfig — настройки повторов для идемпотентных чтений.
// Записи никогда не повторяются, чтобы не создать дубликат заказа.
type retryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

func defaultReadRetry() retryConfig {
	return retryConfig{
		MaxAttempts:   3,
		InitialDelay:  50 * time.Millisecond,
		MaxDelay:      1 * time.Second,
		BackoffFactor: 2.0,
	}
}

// withReadRetry выполняет идемпотентное чтение с ограниченным числом повторов.
// Повторяются только транспортные ошибки, про которые драйвер знает,
// что запрос безопасно отправить снова.
func withReadRetry[T any](ctx context.Context, cfg retryConfig, operation string, fn func(context.Context) (T, error)) (T, error) {
	var (
		result  T
		lastErr error
	)
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result, lastErr = fn(ctx)
		if lastErr == nil {
			if attempt > 1 {
				log.WithFields(log.Fields{
					"component": "postgres",
					"operation": operation,
					"attempt":   attempt,
				}).Info("read succeeded after retry")
			}
			return result, nil
		}

		if ctx.Err() != nil || !pgconn.SafeToRetry(lastErr) {
			return result, lastErr
		}

		if attempt < cfg.MaxAttempts {
			log.WithFields(log.Fields{
				"component": "postgres",
				"operation": operation,
				"attempt":   attempt,
				"delay":     delay,
				"error":     lastErr,
			}).Warn("read failed, retrying")

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return result, ctx.Err()
			}

			delay = time.Duration(float64(delay) * cfg.BackoffFactor)
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}
		}
	}

	return result, lastErr
}
