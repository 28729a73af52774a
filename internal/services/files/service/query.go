package service

import (
	"context"

	perr "solna/internal/platform/errors"
	"solna/internal/platform/logger"
	"solna/internal/services/files/domain"
)

// Lister reads records back and classifies storage failures like Ingestor does
type Lister struct {
	records  domain.RecordStore
	describe perr.Describer
}

var _ domain.QueryPort = (*Lister)(nil)

// NewLister wires the store and the failure normalizer of its backend
func NewLister(records domain.RecordStore, describe perr.Describer) *Lister {
	if records == nil {
		panic("files.Lister requires a non nil RecordStore")
	}
	if describe == nil {
		describe = perr.DescribeFunc(perr.DescribeGeneric)
	}
	return &Lister{records: records, describe: describe}
}

// List returns every record newest first
func (s *Lister) List(ctx context.Context) ([]domain.FileRecord, error) {
	recs, err := s.records.List(ctx)
	if err != nil {
		f := s.describe.Describe(err)
		out := perr.FromFailure(err, f, "list files")
		o, clientFault, _ := perr.OutcomeOf(out)
		logger.C(ctx).Warn().
			Err(err).
			Str("outcome", o.String()).
			Bool("client_fault", clientFault).
			Str("sqlstate", f.Code).
			Msg("list failed")
		return nil, out
	}
	return recs, nil
}
