// Package modkit provides module wiring and core deps
package modkit

import (
	"solna/internal/modkit/repokit"
	"solna/internal/platform/config"
	perr "solna/internal/platform/errors"
	"solna/internal/platform/logger"
	"solna/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// FromStore copies the opened backends of st into deps
func FromStore(log logger.Logger, cfg config.Conf, st *store.Store) Deps {
	d := Deps{Log: log, Cfg: cfg}
	if st != nil {
		d.PG, d.CH = st.PG, st.CH
	}
	return d
}

// Describer returns the failure normalizer of the sql backend
// backends that cannot describe their own errors fall back to perr.DescribeGeneric
func (d Deps) Describer() perr.Describer {
	if ds, ok := d.PG.(perr.Describer); ok {
		return ds
	}
	return perr.DescribeFunc(perr.DescribeGeneric)
}

// Pooler returns the pool introspection seam of the sql backend, nil when it has none
func (d Deps) Pooler() store.Pooler {
	p, _ := d.PG.(store.Pooler)
	return p
}

// Pinger returns the readiness seam of the sql backend, nil when it has none
func (d Deps) Pinger() store.Pinger {
	p, _ := d.PG.(store.Pinger)
	return p
}
