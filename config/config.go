package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Upper bound on the number of services the assistant accepts per request.
const MaxServicesCeiling = 30

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Generative provider.
	GeminiModel    string `mapstructure:"GEMINI_MODEL"`
	GeminiEndpoint string `mapstructure:"GEMINI_ENDPOINT"`

	// Assistant request handling.
	AssistantTimeout      time.Duration `mapstructure:"ASSISTANT_TIMEOUT"`
	AssistantMaxServices  int           `mapstructure:"ASSISTANT_MAX_SERVICES"`
	AssistantMaxBodyBytes int64         `mapstructure:"ASSISTANT_MAX_BODY_BYTES"`

	// Per-client rate limiting.
	RateLimitWindow time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	RateLimitMax    int           `mapstructure:"RATE_LIMIT_MAX"`
	RateLimitSweep  string        `mapstructure:"RATE_LIMIT_SWEEP"`

	// Process-wide throttle on provider calls.
	UpstreamRPS   float64 `mapstructure:"UPSTREAM_RPS"`
	UpstreamBurst int     `mapstructure:"UPSTREAM_BURST"`
}

var AppConfig Config

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("GEMINI_ENDPOINT", "")
	viper.SetDefault("ASSISTANT_TIMEOUT", "20s")
	viper.SetDefault("ASSISTANT_MAX_SERVICES", MaxServicesCeiling)
	viper.SetDefault("ASSISTANT_MAX_BODY_BYTES", 1<<20)
	viper.SetDefault("RATE_LIMIT_WINDOW", "60s")
	viper.SetDefault("RATE_LIMIT_MAX", 20)
	viper.SetDefault("RATE_LIMIT_SWEEP", "@every 5m")
	viper.SetDefault("UPSTREAM_RPS", 5)
	viper.SetDefault("UPSTREAM_BURST", 10)
}

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig.normalize()
}

// normalize clamps values that would otherwise disable a guard.
func (c *Config) normalize() {
	if c.AssistantMaxServices <= 0 || c.AssistantMaxServices > MaxServicesCeiling {
		c.AssistantMaxServices = MaxServicesCeiling
	}
	if c.AssistantTimeout <= 0 {
		c.AssistantTimeout = 20 * time.Second
	}
	if c.AssistantMaxBodyBytes <= 0 {
		c.AssistantMaxBodyBytes = 1 << 20
	}
	if c.RateLimitWindow <= 0 {
		c.RateLimitWindow = time.Minute
	}
	if c.RateLimitMax <= 0 {
		c.RateLimitMax = 20
	}
}

// GeminiAPIKey is looked up on every call so a rotated key applies
// without a restart. An empty value keeps the assistant local-only.
func GeminiAPIKey() string {
	return viper.GetString("GEMINI_API_KEY")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
