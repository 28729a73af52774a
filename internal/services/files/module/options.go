package module

import (
	"time"

	"solna/internal/platform/config"
	"solna/internal/services/files/repo"
)

// Options holds configuration settings for the files module
type Options struct {
	MirrorTable string
	PingTimeout time.Duration
}

// FromConfig reads SERVICE_CLICKHOUSE_TABLE and CORE_FILES_PING_TIMEOUT
func FromConfig(cfg config.Conf) Options {
	return Options{
		MirrorTable: cfg.Prefix("SERVICE_CLICKHOUSE_").MayString("TABLE", repo.DefaultMirrorTable),
		PingTimeout: cfg.Prefix("CORE_FILES_").MayDuration("PING_TIMEOUT", 3*time.Second),
	}
}
