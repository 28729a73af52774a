package store

import (
	"testing"
	"time"

	"solna/internal/platform/config"
	kit "solna/internal/platform/testkit"
)

func TestPGFromEnv_Defaults(t *testing.T) {
	t.Setenv("SERVICE_PGSQL_DBURL", "postgres://u:p@db:5432/solna")

	cfg := PGFromEnv(config.New().Prefix("SERVICE_PGSQL_"))
	want := PGConfig{
		Enabled:          true,
		URL:              "postgres://u:p@db:5432/solna",
		MaxConns:         10,
		MaxConnIdleTime:  30 * time.Second,
		ConnectTimeout:   5 * time.Second,
		StatementTimeout: 30 * time.Second,
		AcquireTimeout:   5 * time.Second,
		SlowQueryMs:      500,
		ConnectRetries:   20,
		PingTimeout:      3 * time.Second,
	}
	if cfg != want {
		t.Fatalf("PGFromEnv =\n%+v\nwant\n%+v", cfg, want)
	}
}

func TestPGFromEnv_Overrides(t *testing.T) {
	kit.Env(t, map[string]string{
		"SERVICE_PGSQL_DBURL":             "postgres://x",
		"SERVICE_PGSQL_MAX_CONNS":         "1",
		"SERVICE_PGSQL_IDLE_TIMEOUT":      "5",
		"SERVICE_PGSQL_STATEMENT_TIMEOUT": "250ms",
		"SERVICE_PGSQL_LOG_SQL":           "true",
	})

	cfg := PGFromEnv(config.New().Prefix("SERVICE_PGSQL_"))
	if cfg.MaxConns != 1 || cfg.MaxConnIdleTime != 5*time.Second || cfg.StatementTimeout != 250*time.Millisecond || !cfg.LogSQL {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestPGFromEnv_MissingURLPanics(t *testing.T) {
	t.Setenv("SERVICE_PGSQL_DBURL", "")
	kit.MustPanic(t, func() { _ = PGFromEnv(config.New().Prefix("SERVICE_PGSQL_")) })
}

func TestCHFromEnv(t *testing.T) {
	c := config.New().Prefix("SERVICE_CLICKHOUSE_")
	if cfg := CHFromEnv(c, "api"); cfg.Enabled || cfg.URL != "" {
		t.Fatalf("disabled by default, got %+v", cfg)
	}

	kit.Env(t, map[string]string{
		"SERVICE_CLICKHOUSE_ENABLED": "true",
		"SERVICE_CLICKHOUSE_DBURL":   "clickhouse://ch:9000/default",
	})
	cfg := CHFromEnv(c, "api")
	if !cfg.Enabled || cfg.URL != "clickhouse://ch:9000/default" || cfg.ClientRole != "api" || cfg.ClientTag != "dev" {
		t.Fatalf("CHFromEnv = %+v", cfg)
	}
}
