package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Mail     MailConfig
	Storage  StorageConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines session and credential parameters.
type AuthConfig struct {
	SessionSecret string
	SessionTTL    time.Duration
	BcryptCost    int
	// AllowLegacySessions accepts unsigned base64 session cookies minted
	// before signing was introduced. Off unless explicitly enabled.
	AllowLegacySessions bool
	CacheTTLSeconds     int
}

// MailConfig configures the transactional mail provider.
type MailConfig struct {
	APIKey         string
	FromEmail      string
	FromName       string
	ContactEmail   string
	TimeoutSeconds int
}

// StorageConfig locates the media blob store.
type StorageConfig struct {
	Root          string
	PublicBaseURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	sessionTTLHours := getEnvAsInt("AUTH_SESSION_TTL_HOURS", 24)

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "studio-backend"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			SessionSecret:       getEnv("AUTH_SESSION_SECRET", "dev-secret"),
			SessionTTL:          time.Duration(sessionTTLHours) * time.Hour,
			BcryptCost:          getEnvAsInt("AUTH_BCRYPT_COST", 12),
			AllowLegacySessions: getEnvAsBool("AUTH_ALLOW_LEGACY_SESSIONS", false),
			CacheTTLSeconds:     getEnvAsInt("CACHE_TTL_SECONDS", 60),
		},
		Mail: MailConfig{
			APIKey:         os.Getenv("MAIL_API_KEY"),
			FromEmail:      getEnv("MAIL_FROM_EMAIL", "noreply@example.com"),
			FromName:       getEnv("MAIL_FROM_NAME", "Studio"),
			ContactEmail:   getEnv("MAIL_CONTACT_EMAIL", ""),
			TimeoutSeconds: getEnvAsInt("MAIL_TIMEOUT_SECONDS", 5),
		},
		Storage: StorageConfig{
			Root:          getEnv("STORAGE_ROOT", "data/media"),
			PublicBaseURL: getEnv("STORAGE_PUBLIC_BASE_URL", "/media"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
