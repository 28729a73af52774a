package domain

import "context"

// RecordStore persists and reads back file records
// errors are returned raw, interpretation happens in the ingestor
type RecordStore interface {
	Insert(ctx context.Context, path string) (FileRecord, error)
	List(ctx context.Context) ([]FileRecord, error)
	TestConnectivity(ctx context.Context) bool
	PoolStatus() (PoolStatus, error)
}

// IngestPort is consumed by handlers to ingest one notification
type IngestPort interface {
	Ingest(ctx context.Context, n ChangeNotification) (Ingested, error)
}

// QueryPort lists records newest first
type QueryPort interface {
	List(ctx context.Context) ([]FileRecord, error)
}

// HealthPort reports connectivity and pool occupancy
type HealthPort interface {
	TestConnectivity(ctx context.Context) bool
	PoolStatus() (PoolStatus, error)
}

// MirrorPort appends persisted records to a secondary sink
type MirrorPort interface {
	Append(ctx context.Context, rec FileRecord, changeType string) error
}
