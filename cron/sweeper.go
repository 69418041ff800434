package cron

import (
	"fmt"

	"bookassist/services/ratelimit"

	cronlib "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSweepSpec runs the idle-bucket sweep every five minutes.
const DefaultSweepSpec = "@every 5m"

// StartSweeper schedules limiter.Sweep on spec and starts the scheduler.
// The returned stop func waits for a running sweep to finish.
func StartSweeper(spec string, limiter *ratelimit.Limiter, logger *zap.Logger) (func(), error) {
	if spec == "" {
		spec = DefaultSweepSpec
	}
	c := cronlib.New()
	_, err := c.AddFunc(spec, func() {
		removed := limiter.Sweep()
		logger.Debug("rate limiter sweep",
			zap.Int("removed", removed),
			zap.Int("tracked", limiter.Len()),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule rate limiter sweep %q: %w", spec, err)
	}

	logger.Info("rate limiter sweeper started", zap.String("schedule", spec))
	c.Start()
	return func() {
		<-c.Stop().Done()
	}, nil
}
