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

const (
	LedgerStorePostgres = "postgres"
	LedgerStoreMemory   = "memory"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string
	HTTPPort     string
	PostgresDSN  string
	LedgerStore  string
	KafkaBrokers []string
	LogLevel     string

	PaywallEventsTopic string
	OutboxBatchSize    int
	OutboxPollInterval time.Duration

	EnableSwagger            bool
	EnableMetrics            bool
	EnableEventAuditConsumer bool
}

// Load reads the process environment. A .env file in the working directory,
// when present, fills variables that are not already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "paywall-ledger"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	store := strings.ToLower(strings.TrimSpace(os.Getenv("LEDGER_STORE")))
	if store == "" {
		store = LedgerStorePostgres
	}
	if store != LedgerStorePostgres && store != LedgerStoreMemory {
		return Config{}, fmt.Errorf("unsupported LEDGER_STORE %q", store)
	}
	dsn := os.Getenv("POSTGRES_DSN")
	if store == LedgerStorePostgres && strings.TrimSpace(dsn) == "" {
		return Config{}, errors.New("POSTGRES_DSN is required when LEDGER_STORE=postgres")
	}

	topic := strings.TrimSpace(os.Getenv("PAYWALL_EVENTS_TOPIC"))
	if topic == "" {
		topic = "paywall.events"
	}

	return Config{
		ServiceName:  service,
		HTTPPort:     port,
		PostgresDSN:  dsn,
		LedgerStore:  store,
		KafkaBrokers: brokers,
		LogLevel:     strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))),

		PaywallEventsTopic: topic,
		OutboxBatchSize:    envInt("OUTBOX_BATCH_SIZE", 100),
		OutboxPollInterval: envDuration("OUTBOX_POLL_INTERVAL", time.Second),

		EnableSwagger:            envBool("ENABLE_SWAGGER", true),
		EnableMetrics:            envBool("ENABLE_METRICS", true),
		EnableEventAuditConsumer: envBool("ENABLE_EVENT_AUDIT_CONSUMER", false),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
