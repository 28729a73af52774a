// Package service implements the record store and the ingestion workflow
package service

import (
	"context"
	"fmt"
	"time"

	"solna/internal/core/eventclass"
	"solna/internal/modkit/repokit"
	perr "solna/internal/platform/errors"
	"solna/internal/platform/store"
	"solna/internal/services/files/domain"
	"solna/internal/services/files/repo"

	"github.com/google/uuid"
)

// ErrNoPool is returned by PoolStatus when the store has no pool to look at
var ErrNoPool = perr.Unavailablef("files: no connection pool")

// Records implements domain.RecordStore over a repo bound to the sql backend
type Records struct {
	Repo repo.Storage

	pool store.Pooler
	ping store.Pinger

	pingTimeout time.Duration
	now         func() time.Time
	newID       func() uuid.UUID
}

var _ domain.RecordStore = (*Records)(nil)

// RecordsConfig carries the optional introspection seams of the backend
type RecordsConfig struct {
	Pool        store.Pooler
	Ping        store.Pinger
	PingTimeout time.Duration
}

// NewRecords binds the files repo to db
func NewRecords(db repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg RecordsConfig) *Records {
	if db == nil {
		panic("files.Records requires a non nil TxRunner")
	}
	if binder == nil {
		panic("files.Records requires a non nil Repo binder")
	}
	if cfg.PingTimeout <= 0 {
		cfg.PingTimeout = 3 * time.Second
	}
	return &Records{
		Repo:        repokit.MustBind(binder, db),
		pool:        cfg.Pool,
		ping:        cfg.Ping,
		pingTimeout: cfg.PingTimeout,
		now:         time.Now,
		newID:       uuid.New,
	}
}

// Insert classifies path and persists a fresh record for it
// the timestamp is truncated to what postgres stores so the returned record equals the row
func (s *Records) Insert(ctx context.Context, path string) (domain.FileRecord, error) {
	rec := domain.FileRecord{
		ID:        s.newID(),
		Path:      path,
		Event:     eventclass.Classify(path),
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.Repo.Insert(ctx, rec); err != nil {
		return domain.FileRecord{}, err
	}
	return rec, nil
}

// List returns every record newest first
func (s *Records) List(ctx context.Context) ([]domain.FileRecord, error) {
	return s.Repo.List(ctx)
}

// TestConnectivity borrows one connection for a round trip
func (s *Records) TestConnectivity(ctx context.Context) bool {
	return repokit.Ping(ctx, "pg", s.ping, s.pingTimeout) == nil
}

// PoolStatus reads pool occupancy without borrowing a connection
func (s *Records) PoolStatus() (domain.PoolStatus, error) {
	if s.pool == nil {
		return domain.PoolStatus{}, ErrNoPool
	}
	st, err := s.pool.PoolStat()
	if err != nil {
		return domain.PoolStatus{}, fmt.Errorf("pool status: %w", err)
	}
	return domain.PoolStatus{
		TotalConnections: int(st.Total),
		IdleConnections:  int(st.Idle),
		WaitingRequests:  int(st.Waiting),
	}, nil
}
