// Package module wires meta endpoints into the API using modkit
package module

import (
	"time"

	"solna/internal/modkit"
	"solna/internal/modkit/httpkit"
	"solna/internal/platform/store"

	metahttp "solna/internal/services/api/meta/http"
)

// New constructs a meta module mounted under /meta
func New(deps modkit.Deps, opts ...modkit.Option) *modkit.Base {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	d := metahttp.Deps{
		ServiceName:  "solna-api",
		StartedAt:    time.Now(),
		ReadyTimeout: deps.Cfg.MayDuration("READY_TIMEOUT", 2*time.Second),
	}
	// keep nil interfaces nil so missing backends read as skipped
	if p := deps.Pinger(); p != nil {
		d.PG = p
	}
	if p, ok := deps.CH.(store.Pinger); ok {
		d.CH = p
	}

	return modkit.NewBase(b, nil, func(r httpkit.Router) {
		metahttp.Register(r, d)
	})
}
