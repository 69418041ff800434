package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("ASSISTANT_MAX_SERVICES", "99")
	t.Setenv("ASSISTANT_TIMEOUT", "3s")
	t.Setenv("GEMINI_API_KEY", "test-key")

	LoadConfig()

	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, 5, AppConfig.RateLimitMax)
	assert.Equal(t, time.Minute, AppConfig.RateLimitWindow)
	assert.Equal(t, MaxServicesCeiling, AppConfig.AssistantMaxServices)
	assert.Equal(t, 3*time.Second, AppConfig.AssistantTimeout)
	assert.Equal(t, "gemini-1.5-flash", AppConfig.GeminiModel)
	assert.Equal(t, "test-key", GeminiAPIKey())
	assert.False(t, IsProduction())
}

func TestNormalize(t *testing.T) {
	c := Config{AssistantMaxServices: 12}
	c.normalize()

	assert.Equal(t, 12, c.AssistantMaxServices)
	assert.Equal(t, 20*time.Second, c.AssistantTimeout)
	assert.Equal(t, int64(1<<20), c.AssistantMaxBodyBytes)
	assert.Equal(t, time.Minute, c.RateLimitWindow)
	assert.Equal(t, 20, c.RateLimitMax)

	c = Config{AssistantMaxServices: -1}
	c.normalize()
	assert.Equal(t, MaxServicesCeiling, c.AssistantMaxServices)
}
