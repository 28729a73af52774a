package service

import (
	"context"
	"strings"

	perr "solna/internal/platform/errors"
	"solna/internal/platform/logger"
	"solna/internal/services/files/domain"
)

// Ingestor turns one change notification into one persisted record
type Ingestor struct {
	records  domain.RecordStore
	describe perr.Describer
	mirror   domain.MirrorPort
}

var _ domain.IngestPort = (*Ingestor)(nil)

// NewIngestor wires the store, the failure normalizer of its backend, and an optional mirror
func NewIngestor(records domain.RecordStore, describe perr.Describer, mirror domain.MirrorPort) *Ingestor {
	if records == nil {
		panic("files.Ingestor requires a non nil RecordStore")
	}
	if describe == nil {
		describe = perr.DescribeFunc(perr.DescribeGeneric)
	}
	return &Ingestor{records: records, describe: describe, mirror: mirror}
}

// Ingest validates n, persists it and classifies any storage failure
// no retries happen here; non client faults are marked retryable for the caller
func (s *Ingestor) Ingest(ctx context.Context, n domain.ChangeNotification) (domain.Ingested, error) {
	if strings.TrimSpace(n.File) == "" {
		return domain.Ingested{}, perr.WithField(perr.InvalidInputf("file is required"), "file")
	}
	if strings.TrimSpace(n.Event) == "" {
		return domain.Ingested{}, perr.WithField(perr.InvalidInputf("event is required"), "event")
	}

	rec, err := s.records.Insert(ctx, n.File)
	if err != nil {
		f := s.describe.Describe(err)
		out := perr.FromFailure(err, f, "insert file")
		o, clientFault, _ := perr.OutcomeOf(out)
		logger.C(ctx).Warn().
			Err(err).
			Str("outcome", o.String()).
			Bool("client_fault", clientFault).
			Str("sqlstate", f.Code).
			Str("file", n.File).
			Msg("ingest failed")
		return domain.Ingested{}, out
	}

	if s.mirror != nil {
		if err := s.mirror.Append(ctx, rec, n.Event); err != nil {
			logger.C(ctx).Warn().Err(err).Str("id", rec.ID.String()).Msg("mirror append failed")
		}
	}

	logger.C(ctx).Debug().
		Str("id", rec.ID.String()).
		Str("event", rec.Event).
		Str("change_type", n.Event).
		Msg("file ingested")
	return domain.Ingested{Record: rec, ChangeType: n.Event}, nil
}
