package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the process-wide configuration assembled once at startup and
// handed to the constructors that need it.
type Config struct {
	Env       string
	Server    ServerConfig
	DB        *DBConfig
	Redis     RedisConfig
	Session   SessionConfig
	Assistant AssistantConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Port            string
	CookieSecure    bool
	ShutdownTimeout time.Duration
}

// RedisConfig holds the session/rate-limit store connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SessionConfig holds the session signing key and lifetime
type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
}

// AssistantConfig holds the chat-completion API settings
type AssistantConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// AdminConfig describes the administrator seeded on first run
type AdminConfig struct {
	Username string
	Email    string
	Password string
	FullName string
}

// RateLimitConfig bounds login attempts per client and portal
type RateLimitConfig struct {
	LoginAttempts int64
	LoginWindow   time.Duration
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	dbCfg, err := LoadDBConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			CookieSecure:    getEnvBool("COOKIE_SECURE", false),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		DB: dbCfg,
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			Secret:     os.Getenv("SESSION_SECRET"),
			TTL:        getEnvDuration("SESSION_TTL", 24*time.Hour),
			CookieName: getEnv("SESSION_COOKIE_NAME", "agribot_session"),
		},
		Assistant: AssistantConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			Model:   getEnv("ASSISTANT_MODEL", "gpt-4o-mini"),
			Timeout: getEnvDuration("ASSISTANT_TIMEOUT", 30*time.Second),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Email:    getEnv("ADMIN_EMAIL", "admin@agribot.com"),
			Password: os.Getenv("ADMIN_PASSWORD"),
			FullName: getEnv("ADMIN_FULL_NAME", "System Admin"),
		},
		RateLimit: RateLimitConfig{
			LoginAttempts: int64(getEnvInt("LOGIN_RATE_LIMIT", 10)),
			LoginWindow:   getEnvDuration("LOGIN_RATE_WINDOW", time.Minute),
		},
	}

	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET not set in environment")
	}
	if cfg.Admin.Password == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD not set in environment")
	}
	return cfg, nil
}

// IsProduction reports whether the process runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
