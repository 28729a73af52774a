package repo

import (
	"context"

	"solna/internal/platform/store"
	"solna/internal/services/files/domain"
)

// DefaultMirrorTable is the clickhouse table persisted records are appended to
const DefaultMirrorTable = "file_events"

// CH appends records to clickhouse for analytics
// columns: id, filename, event, change_type, created_at
type CH struct {
	ch    store.Clickhouse
	table string
}

var _ domain.MirrorPort = (*CH)(nil)

// NewCH returns a mirror over ch, nil when ch is nil
func NewCH(ch store.Clickhouse, table string) *CH {
	if ch == nil {
		return nil
	}
	if table == "" {
		table = DefaultMirrorTable
	}
	return &CH{ch: ch, table: table}
}

// Append implements domain.MirrorPort
func (c *CH) Append(ctx context.Context, rec domain.FileRecord, changeType string) error {
	return c.ch.Insert(ctx, c.table, []any{
		rec.ID.String(), rec.Path, rec.Event, changeType, rec.CreatedAt,
	})
}
