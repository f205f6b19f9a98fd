package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8, cfg.Parallelism)
	assert.Empty(t, cfg.Audit.KafkaBrokers)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("FAIRMETER_ADDR", ":9090")
	t.Setenv("FAIRMETER_STORE_DRIVER", "postgres")
	t.Setenv("FAIRMETER_STORE_DSN", "postgres://localhost/fairmeter")
	t.Setenv("FAIRMETER_HARVEST_TIMEOUT", "45s")
	t.Setenv("FAIRMETER_KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")
	t.Setenv("FAIRMETER_PARALLELISM", "2")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/fairmeter", cfg.Store.DSN)
	assert.Equal(t, 45*time.Second, cfg.Harvest.Timeout)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Audit.KafkaBrokers)
	assert.Equal(t, 2, cfg.Parallelism)
}

func TestFromEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("FAIRMETER_PARALLELISM", "lots")
	t.Setenv("FAIRMETER_HARVEST_TIMEOUT", "soon")

	cfg := FromEnv()

	assert.Equal(t, 8, cfg.Parallelism)
	assert.Equal(t, 30*time.Second, cfg.Harvest.Timeout)
}
