// Package config builds runtime configuration from the environment so main
// stays lean. Every knob has a development default; production deployments
// override through FAIRMETER_* variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	JWTSigningKey   string
	AdminKeyHash    string
}

// Harvest configures the OAI-PMH metadata source.
type Harvest struct {
	Endpoint string
	Timeout  time.Duration
}

// Liveness configures outbound identifier resolution probes.
type Liveness struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Store selects the assessment persistence backend.
type Store struct {
	Driver string
	DSN    string
}

// Redis configures the optional liveness cache.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Audit configures the audit trail sink. With no brokers the trail stays
// in memory.
type Audit struct {
	KafkaBrokers []string
	KafkaTopic   string
}

// Discipline points at the optional community profile catalog.
type Discipline struct {
	CatalogPath string
	Profile     string
}

// Log configures structured logging output.
type Log struct {
	Level  string
	Format string
}

// Config is the full runtime configuration.
type Config struct {
	Server      Server
	Harvest     Harvest
	Liveness    Liveness
	Store       Store
	Redis       Redis
	Audit       Audit
	Discipline  Discipline
	Log         Log
	Parallelism int
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            envString("FAIRMETER_ADDR", ":8080"),
			ShutdownTimeout: envDuration("FAIRMETER_SHUTDOWN_TIMEOUT", 10*time.Second),
			JWTSigningKey:   envString("FAIRMETER_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			AdminKeyHash:    os.Getenv("FAIRMETER_ADMIN_KEY_HASH"),
		},
		Harvest: Harvest{
			Endpoint: envString("FAIRMETER_OAI_ENDPOINT", "https://zenodo.org/oai2d"),
			Timeout:  envDuration("FAIRMETER_HARVEST_TIMEOUT", 30*time.Second),
		},
		Liveness: Liveness{
			Timeout:  envDuration("FAIRMETER_LIVENESS_TIMEOUT", 10*time.Second),
			CacheTTL: envDuration("FAIRMETER_LIVENESS_CACHE_TTL", 15*time.Minute),
		},
		Store: Store{
			Driver: envString("FAIRMETER_STORE_DRIVER", "memory"),
			DSN:    os.Getenv("FAIRMETER_STORE_DSN"),
		},
		Redis: Redis{
			URL:          os.Getenv("FAIRMETER_REDIS_URL"),
			PoolSize:     envInt("FAIRMETER_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("FAIRMETER_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("FAIRMETER_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("FAIRMETER_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("FAIRMETER_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Audit: Audit{
			KafkaBrokers: envList("FAIRMETER_KAFKA_BROKERS"),
			KafkaTopic:   envString("FAIRMETER_KAFKA_TOPIC", "fairmeter.audit"),
		},
		Discipline: Discipline{
			CatalogPath: os.Getenv("FAIRMETER_DISCIPLINE_CATALOG"),
			Profile:     os.Getenv("FAIRMETER_DISCIPLINE_PROFILE"),
		},
		Log: Log{
			Level:  envString("FAIRMETER_LOG_LEVEL", "info"),
			Format: envString("FAIRMETER_LOG_FORMAT", "json"),
		},
		Parallelism: envInt("FAIRMETER_PARALLELISM", 8),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
