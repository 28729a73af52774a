package store

import (
	"context"
	"errors"
	"testing"

	"solna/internal/platform/store/ch"
)

type fakeCH struct {
	table   string
	rows    [][]any
	pingErr error
	closed  bool
	q       *fakeCHRows
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	f.table, f.rows = table, rows
	return nil
}

func (f *fakeCH) Query(context.Context, string, ...any) (ch.Rows, error) {
	if f.q == nil {
		return nil, errors.New("no rows")
	}
	return f.q, nil
}

func (f *fakeCH) Ping(context.Context) error { return f.pingErr }
func (f *fakeCH) Close() error               { f.closed = true; return nil }

type fakeCHRows struct {
	left   int
	closed bool
}

func (r *fakeCHRows) Next() bool        { r.left--; return r.left >= 0 }
func (r *fakeCHRows) Scan(...any) error { return nil }
func (r *fakeCHRows) Err() error        { return nil }
func (r *fakeCHRows) Close() error      { r.closed = true; return nil }
func (r *fakeCHRows) Columns() []string { return []string{"id"} }

func TestCHAdapter_InsertShapes(t *testing.T) {
	t.Parallel()

	f := &fakeCH{}
	a := newCHAdapter(f)
	ctx := context.Background()

	if err := a.Insert(ctx, "file_events", []any{"id", "upload/a/x.jpg"}); err != nil {
		t.Fatalf("single row: %v", err)
	}
	if f.table != "file_events" || len(f.rows) != 1 || len(f.rows[0]) != 2 {
		t.Fatalf("single row shape = %s %v", f.table, f.rows)
	}
	if err := a.Insert(ctx, "file_events", [][]any{{1}, {2}}); err != nil || len(f.rows) != 2 {
		t.Fatalf("batch: %v %v", err, f.rows)
	}
	if err := a.Insert(ctx, "file_events", struct{}{}); err == nil {
		t.Fatalf("unsupported shape should fail")
	}
}

func TestCHAdapter_QueryPingClose(t *testing.T) {
	t.Parallel()

	rs := &fakeCHRows{left: 2}
	f := &fakeCH{q: rs, pingErr: errors.New("down")}
	a := newCHAdapter(f)
	ctx := context.Background()

	out, err := a.Query(ctx, "SELECT id FROM file_events")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	n := 0
	for out.Next() {
		n++
	}
	out.Close()
	if n != 2 || !rs.closed || out.Columns()[0] != "id" {
		t.Fatalf("rows n=%d closed=%v", n, rs.closed)
	}

	if err := a.(Pinger).Ping(ctx); err == nil {
		t.Fatalf("ping error lost")
	}
	if err := a.Close(); err != nil || !f.closed {
		t.Fatalf("Close = %v closed=%v", err, f.closed)
	}

	if _, err := newCHAdapter(&fakeCH{}).Query(ctx, "x"); err == nil {
		t.Fatalf("query error lost")
	}
}
