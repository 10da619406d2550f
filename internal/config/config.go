// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/repository"
	"github.com/shopspring/decimal"
)

const (
	CartStoreMemory = "memory"
	CartStoreRedis  = "redis"

	NotifierLog   = "log"
	NotifierSMTP  = "smtp"
	NotifierKafka = "kafka"
)

type Config struct {
	HTTPPort           string
	GRPCPort           string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
	LogLevel           string

	Postgres repository.Credentials

	SQLitePath           string
	SQLiteMigrationsPath string

	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	CartStore     string
	CartTTL       time.Duration

	KafkaBrokers []string
	KafkaGroupID string
	NotifierMode string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	AdminInbox   []string

	AdminEmails    []string
	JWTSecret      string
	MinimumOrder   decimal.Decimal
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	pgPort, err := getInt("POSTGRES_PORT", 5432)
	if err != nil {
		return nil, err
	}
	requestTimeout, err := getDuration("REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cartTTL, err := getDuration("CART_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	minimum, err := decimal.NewFromString(getEnv("MIN_ORDER_AMOUNT", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_ORDER_AMOUNT: %w", err)
	}
	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	burst, err := getInt("RATE_LIMIT_BURST", 10)
	if err != nil {
		return nil, err
	}
	trustProxy, err := strconv.ParseBool(getEnv("TRUST_PROXY_HEADERS", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRUST_PROXY_HEADERS: %w", err)
	}

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		GRPCPort:           getEnv("GRPC_PORT", "50051"),
		RequestTimeout:     requestTimeout,
		ShutdownTimeout:    shutdownTimeout,
		MaxRequestBodySize: 1 << 20, // 1MB
		LogLevel:           getEnv("LOG_LEVEL", "info"),

		Postgres: repository.Credentials{
			Host:              getEnv("POSTGRES_HOST", "localhost"),
			Port:              pgPort,
			User:              getEnv("POSTGRES_USER", "postgres"),
			Password:          getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:            getEnv("POSTGRES_DB", "orders"),
			MigrationsDirPath: getEnv("POSTGRES_MIGRATIONS_PATH", "internal/repository/migrations/orders"),
		},

		SQLitePath:           getEnv("SQLITE_PATH", "catalog.db"),
		SQLiteMigrationsPath: getEnv("SQLITE_MIGRATIONS_PATH", "internal/repository/migrations/catalog"),

		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "homage"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CartStore:     strings.ToLower(getEnv("CART_STORE", CartStoreMemory)),
		CartTTL:       cartTTL,

		KafkaBrokers: getList("KAFKA_BROKERS", "localhost:9092"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "order-notifier"),
		NotifierMode: strings.ToLower(getEnv("NOTIFIER_MODE", NotifierLog)),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "orders@localhost"),
		AdminInbox:   getList("ADMIN_INBOX", ""),

		AdminEmails:    getList("ADMIN_EMAILS", ""),
		JWTSecret:      getEnv("AUTH_JWT_SECRET", ""),
		MinimumOrder:   minimum,
		CORSOrigins:    getList("CORS_ORIGINS", "*"),
		RateLimitRPS:   rps,
		RateLimitBurst: burst,

		TrustProxyHeaders: trustProxy,
	}

	if len(cfg.AdminInbox) == 0 {
		cfg.AdminInbox = cfg.AdminEmails
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.CartStore {
	case CartStoreMemory:
	case CartStoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("CART_STORE=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown CART_STORE %q", c.CartStore)
	}

	switch c.NotifierMode {
	case NotifierLog, NotifierSMTP, NotifierKafka:
	default:
		return fmt.Errorf("unknown NOTIFIER_MODE %q", c.NotifierMode)
	}
	if c.NotifierMode == NotifierKafka && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("NOTIFIER_MODE=kafka requires KAFKA_BROKERS")
	}

	if c.MinimumOrder.IsNegative() {
		return fmt.Errorf("MIN_ORDER_AMOUNT must not be negative")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

// getList splits a comma separated value, dropping blanks.
func getList(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
