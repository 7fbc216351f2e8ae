package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsForMemoryStore(t *testing.T) {
	t.Setenv("LEDGER_STORE", "memory")
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("PAYWALL_EVENTS_TOPIC", "")
	t.Setenv("OUTBOX_BATCH_SIZE", "")
	t.Setenv("OUTBOX_POLL_INTERVAL", "")
	t.Setenv("ENABLE_SWAGGER", "")
	t.Setenv("ENABLE_METRICS", "")
	t.Setenv("ENABLE_EVENT_AUDIT_CONSUMER", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "paywall-ledger", cfg.ServiceName)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, LedgerStoreMemory, cfg.LedgerStore)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "paywall.events", cfg.PaywallEventsTopic)
	assert.Equal(t, 100, cfg.OutboxBatchSize)
	assert.Equal(t, time.Second, cfg.OutboxPollInterval)
	assert.True(t, cfg.EnableSwagger)
	assert.True(t, cfg.EnableMetrics)
	assert.False(t, cfg.EnableEventAuditConsumer)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LEDGER_STORE", "Postgres")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/paywall")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092 ,")
	t.Setenv("OUTBOX_BATCH_SIZE", "25")
	t.Setenv("OUTBOX_POLL_INTERVAL", "250ms")
	t.Setenv("ENABLE_SWAGGER", "off")
	t.Setenv("ENABLE_EVENT_AUDIT_CONSUMER", "yes")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, LedgerStorePostgres, cfg.LedgerStore)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 25, cfg.OutboxBatchSize)
	assert.Equal(t, 250*time.Millisecond, cfg.OutboxPollInterval)
	assert.False(t, cfg.EnableSwagger)
	assert.True(t, cfg.EnableEventAuditConsumer)
}

func TestLoadRejectsInvalidStore(t *testing.T) {
	t.Setenv("LEDGER_STORE", "sqlite")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("LEDGER_STORE", "postgres")
	t.Setenv("POSTGRES_DSN", " ")
	_, err = Load()
	assert.Error(t, err)
}

func TestEnvHelpersFallBack(t *testing.T) {
	t.Setenv("TEST_INT", "-3")
	t.Setenv("TEST_DURATION", "soon")
	t.Setenv("TEST_BOOL", "maybe")
	assert.Equal(t, 7, envInt("TEST_INT", 7))
	assert.Equal(t, time.Minute, envDuration("TEST_DURATION", time.Minute))
	assert.True(t, envBool("TEST_BOOL", true))
}
