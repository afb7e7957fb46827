// Package config loads the service configuration from the environment and an optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderGateway = "gateway"
	ProviderGemini  = "gemini"

	DefaultGatewayURL   = "https://ai.gateway.lovable.dev/v1/chat/completions"
	DefaultGatewayModel = "google/gemini-2.5-flash"
	DefaultGeminiModel  = "gemini-2.5-flash"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	MinIO     MinIOConfig
}

type ServerConfig struct {
	Port     int
	LogLevel string
}

// AIConfig describes the upstream text-generation endpoint.
type AIConfig struct {
	Provider   string
	GatewayURL string
	Model      string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

type DatabaseConfig struct {
	URL string
}

// AuthConfig verifies access tokens issued by the external auth provider.
type AuthConfig struct {
	JWTSecret string
	Audience  string
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
	Window  time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	PublicURL string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("AI_PROVIDER", ProviderGateway)
	v.SetDefault("AI_GATEWAY_URL", DefaultGatewayURL)
	v.SetDefault("AI_TIMEOUT_SECONDS", 60)
	v.SetDefault("AI_MAX_RETRIES", 1)
	v.SetDefault("AUTH_JWT_AUDIENCE", "authenticated")
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_RPS", 1.0)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("MINIO_BUCKET", "avatars")

	provider := strings.ToLower(strings.TrimSpace(v.GetString("AI_PROVIDER")))

	cfg := &Config{
		Server: ServerConfig{
			Port:     v.GetInt("PORT"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		AI: AIConfig{
			Provider:   provider,
			GatewayURL: v.GetString("AI_GATEWAY_URL"),
			Model:      v.GetString("AI_MODEL"),
			Timeout:    time.Duration(v.GetInt("AI_TIMEOUT_SECONDS")) * time.Second,
			MaxRetries: v.GetInt("AI_MAX_RETRIES"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("DATABASE_URL"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("AUTH_JWT_SECRET"),
			Audience:  v.GetString("AUTH_JWT_AUDIENCE"),
		},
		RateLimit: RateLimitConfig{
			Enabled: v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:     v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:   v.GetInt("RATE_LIMIT_BURST"),
			Window:  time.Duration(v.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			PublicURL: v.GetString("MINIO_PUBLIC_URL"),
		},
	}

	switch provider {
	case ProviderGateway:
		cfg.AI.APIKey = v.GetString("LOVABLE_API_KEY")
		if cfg.AI.Model == "" {
			cfg.AI.Model = DefaultGatewayModel
		}
	case ProviderGemini:
		cfg.AI.APIKey = v.GetString("GEMINI_API_KEY")
		if cfg.AI.Model == "" {
			cfg.AI.Model = DefaultGeminiModel
		}
	default:
		return nil, fmt.Errorf("unknown AI_PROVIDER %q (want %q or %q)", provider, ProviderGateway, ProviderGemini)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.Server.Port)
	}
	if cfg.AI.Timeout <= 0 {
		return nil, fmt.Errorf("AI_TIMEOUT_SECONDS must be positive")
	}
	if cfg.AI.MaxRetries < 0 {
		cfg.AI.MaxRetries = 0
	}

	return cfg, nil
}

// CredentialEnv names the environment variable holding the active provider's key.
func (c AIConfig) CredentialEnv() string {
	if c.Provider == ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "LOVABLE_API_KEY"
}
