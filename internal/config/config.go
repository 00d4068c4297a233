package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	Port    string
	LogMode string

	DBDriver       string
	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnLifetime time.Duration
	StorageTimeout time.Duration
	SeedCatalog    bool

	RedisAddr       string
	CatalogCacheTTL time.Duration
	OwnerLockTTL    time.Duration

	RabbitMQURL      string
	RabbitMQExchange string

	JWTSecret   string
	CORSOrigins []string
}

// Load reads .env (when present) and the environment and returns a validated Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		LogMode:          getEnv("LOG_MODE", "dev"),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DBMaxOpenConns:   getEnvInt("DB_MAX_OPEN_CONNS", 50),
		DBMaxIdleConns:   getEnvInt("DB_MAX_IDLE_CONNS", 10),
		DBConnLifetime:   time.Duration(getEnvInt("DB_CONN_LIFETIME_SECONDS", 280)) * time.Second,
		StorageTimeout:   time.Duration(getEnvInt("STORAGE_TIMEOUT_MS", 3000)) * time.Millisecond,
		SeedCatalog:      getEnvBool("SEED_CATALOG", false),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		CatalogCacheTTL:  time.Duration(getEnvInt("CATALOG_CACHE_TTL_SECONDS", 60)) * time.Second,
		OwnerLockTTL:     time.Duration(getEnvInt("OWNER_LOCK_TTL_MS", 10000)) * time.Millisecond,
		RabbitMQURL:      getEnv("RABBITMQ_URL", ""),
		RabbitMQExchange: getEnv("RABBITMQ_EXCHANGE", "bakery.orders"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
	}

	if cfg.DatabaseURL == "" && cfg.DBDriver == "mysql" {
		cfg.DatabaseURL = mysqlDSNFromParts()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER %q is not supported", c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL must be set")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.StorageTimeout <= 0 {
		return errors.New("STORAGE_TIMEOUT_MS must be positive")
	}
	return nil
}

func mysqlDSNFromParts() string {
	host := os.Getenv("MYSQL_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		os.Getenv("MYSQL_USER"),
		os.Getenv("MYSQL_PASSWORD"),
		host,
		getEnv("MYSQL_PORT", "3306"),
		os.Getenv("MYSQL_DATABASE"),
	)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
