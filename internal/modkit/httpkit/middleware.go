package httpkit

import (
	"net/http"
	"time"

	"solna/internal/platform/config"
	"solna/internal/platform/net/middleware"
)

// CommonStack returns the root middleware slice
// reads REQUEST_TIMEOUT, SLOW_REQUEST and CORS_ORIGINS from cfg
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	stack := middleware.Defaults(cfg.MayDuration("REQUEST_TIMEOUT", 60*time.Second))
	return append(stack,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow:  cfg.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
			Quiet: []string{"/", "/health"},
		}),
		middleware.CORS(middleware.CORSOptions{
			AllowedOrigins: cfg.MayCSV("CORS_ORIGINS", nil),
		}),
		middleware.Heartbeat("/health"),
	)
}
