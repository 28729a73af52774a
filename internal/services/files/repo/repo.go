// Package repo provides the files repository implementations
package repo

import (
	"context"
	"fmt"

	"solna/internal/modkit/repokit"
	"solna/internal/platform/store"
	"solna/internal/services/files/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage is the uploaded_files table
type Storage interface {
	Insert(ctx context.Context, rec domain.FileRecord) error
	List(ctx context.Context) ([]domain.FileRecord, error)
}

const (
	insertSQL = `INSERT INTO uploaded_files (id, filename, event, created_at) VALUES ($1, $2, $3, $4)`

	// unbounded: the whole table comes back, newest first
	listSQL = `SELECT id, filename, event, created_at FROM uploaded_files ORDER BY created_at DESC`
)

// Insert implements Storage
func (s *pg) Insert(ctx context.Context, rec domain.FileRecord) error {
	if err := store.ExecOne(ctx, s.q, insertSQL, rec.ID, rec.Path, rec.Event, rec.CreatedAt); err != nil {
		return fmt.Errorf("insert uploaded_files: %w", err)
	}
	return nil
}

// List implements Storage
func (s *pg) List(ctx context.Context) ([]domain.FileRecord, error) {
	out, err := store.Many(ctx, s.q, scanRecord, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list uploaded_files: %w", err)
	}
	return out, nil
}

func scanRecord(r store.Row) (domain.FileRecord, error) {
	var rec domain.FileRecord
	err := r.Scan(&rec.ID, &rec.Path, &rec.Event, &rec.CreatedAt)
	return rec, err
}
