package cron

import (
	"context"
	"time"

	"roadguard/utils"

	"go.uber.org/zap"
)

// Runner is a long-lived background loop such as the Redis event relay.
type Runner interface {
	Run(ctx context.Context) error
}

// StartRelayWorker runs r in the background and restarts it with a linear
// backoff when it fails. After maxAttempts consecutive failures it gives up and
// the instance keeps serving local clients only.
func StartRelayWorker(ctx context.Context, name string, r Runner, maxAttempts int) <-chan struct{} {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		runWithRestart(ctx, name, r, maxAttempts, 2*time.Second)
	}()
	return stopped
}

func runWithRestart(ctx context.Context, name string, r Runner, maxAttempts int, step time.Duration) {
	logger := utils.GetLogger().With(zap.String("worker", name))
	logger.Info("Starting background worker")

	for attempts := 1; ; attempts++ {
		start := time.Now()
		err := r.Run(ctx)
		if ctx.Err() != nil {
			logger.Info("Background worker stopped")
			return
		}
		// A run that stayed up for a while resets the failure count.
		if time.Since(start) > time.Minute {
			attempts = 1
		}
		logger.Warn("Background worker exited",
			zap.Int("attempt", attempts),
			zap.Int("maxAttempts", maxAttempts),
			zap.Error(err),
		)
		if attempts >= maxAttempts {
			logger.Error("Background worker exceeded restart attempts, giving up")
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(attempts) * step):
		}
	}
}
