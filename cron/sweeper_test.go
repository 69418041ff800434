package cron

import (
	"testing"
	"time"

	"bookassist/services/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStartSweeper_InvalidSpec(t *testing.T) {
	stop, err := StartSweeper("not a schedule", ratelimit.New(time.Minute, 20), zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, stop)
}

func TestStartSweeper_RemovesIdleBuckets(t *testing.T) {
	limiter := ratelimit.New(10*time.Millisecond, 20)
	limiter.Allow("idle")

	stop, err := StartSweeper("@every 1s", limiter, zap.NewNop())
	require.NoError(t, err)
	defer stop()

	assert.Eventually(t, func() bool {
		return limiter.Len() == 0
	}, 3*time.Second, 50*time.Millisecond)
}
