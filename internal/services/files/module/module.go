// Package module wires the files service into the API using modkit
package module

import (
	"solna/internal/modkit"
	"solna/internal/modkit/httpkit"
	"solna/internal/services/files/domain"
	fileshttp "solna/internal/services/files/http"
	"solna/internal/services/files/repo"
	"solna/internal/services/files/service"
)

// Ports exposed by the files module
type Ports struct {
	Records domain.RecordStore
	Ingest  domain.IngestPort
}

// New constructs the files module mounted at the root
func New(deps modkit.Deps, opts ...modkit.Option) *modkit.Base {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("files"), modkit.WithPrefix("")}, opts...)...)
	o := FromConfig(deps.Cfg)

	records := service.NewRecords(deps.PG, repo.NewPG(), service.RecordsConfig{
		Pool:        deps.Pooler(),
		Ping:        deps.Pinger(),
		PingTimeout: o.PingTimeout,
	})

	// a typed nil mirror would still look set to the ingestor
	var mirror domain.MirrorPort
	if m := repo.NewCH(deps.CH, o.MirrorTable); m != nil {
		mirror = m
	}
	ing := service.NewIngestor(records, deps.Describer(), mirror)
	list := service.NewLister(records, deps.Describer())

	return modkit.NewBase(b, Ports{Records: records, Ingest: ing}, func(r httpkit.Router) {
		fileshttp.Register(r, fileshttp.Deps{
			Ingest: ing,
			Query:  list,
			Health: records,
		})
	})
}
