package store

import (
	"time"

	"solna/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled          bool
	URL              string
	MaxConns         int32
	MaxConnIdleTime  time.Duration
	ConnectTimeout   time.Duration
	StatementTimeout time.Duration
	AcquireTimeout   time.Duration
	LogSQL           bool
	SlowQueryMs      int

	// boot knobs
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled    bool
	URL        string
	ClientRole string
	ClientTag  string
}

// PGFromEnv reads SERVICE_PGSQL_* style keys from c
// DBURL is required
func PGFromEnv(c config.Conf) PGConfig {
	return PGConfig{
		Enabled:          true,
		URL:              c.MustString("DBURL"),
		MaxConns:         int32(c.MayInt("MAX_CONNS", 10)),
		MaxConnIdleTime:  c.MayDuration("IDLE_TIMEOUT", 30*time.Second),
		ConnectTimeout:   c.MayDuration("CONNECT_TIMEOUT", 5*time.Second),
		StatementTimeout: c.MayDuration("STATEMENT_TIMEOUT", 30*time.Second),
		AcquireTimeout:   c.MayDuration("ACQUIRE_TIMEOUT", 5*time.Second),
		LogSQL:           c.MayBool("LOG_SQL", false),
		SlowQueryMs:      c.MayInt("SLOW_MS", 500),
		ConnectRetries:   c.MayInt("CONNECT_RETRIES", 20),
		PingTimeout:      c.MayDuration("PING_TIMEOUT", 3*time.Second),
	}
}

// CHFromEnv reads SERVICE_CLICKHOUSE_* style keys from c
// the mirror stays disabled unless ENABLED is true
func CHFromEnv(c config.Conf, role string) CHConfig {
	cfg := CHConfig{Enabled: c.MayBool("ENABLED", false), ClientRole: role}
	if cfg.Enabled {
		cfg.URL = c.MustString("DBURL")
		cfg.ClientTag = c.MayString("CLIENT_TAG", "dev")
	}
	return cfg
}
