package ch

import (
	"context"
	"errors"
	"testing"

	kit "solna/internal/platform/testkit"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://nope"}); err == nil {
		t.Fatalf("expected dsn error")
	}
}

func TestOpen_PassesClientInfo(t *testing.T) {
	kit.Serial(t)

	var seen *clickhouse.Options
	kit.Swap(t, &openConn, func(o *clickhouse.Options) (driver.Conn, error) {
		seen = o
		return nil, errors.New("no server")
	})

	_, err := Open(context.Background(), Config{URL: "clickhouse://127.0.0.1:9000/default", Role: "api", Tag: "v1"})
	if err == nil {
		t.Fatalf("expected open error from seam")
	}
	if seen == nil || len(seen.ClientInfo.Products) == 0 {
		t.Fatalf("client info not set")
	}
	if p := seen.ClientInfo.Products[0]; p.Name != "solna" || p.Version != "v1" {
		t.Fatalf("first product = %+v", p)
	}
}

func TestInsert_RejectsBadTable(t *testing.T) {
	t.Parallel()

	c := &CH{}
	for _, tbl := range []string{"", "file_events; drop table x", "1abc", "a.b.c"} {
		if err := c.Insert(context.Background(), tbl, [][]any{{1}}); !errors.Is(err, ErrBadTable) {
			t.Fatalf("table %q: want ErrBadTable, got %v", tbl, err)
		}
	}
}

func TestInsert_EmptyIsNoop(t *testing.T) {
	t.Parallel()

	c := &CH{}
	if err := c.Insert(context.Background(), "analytics.file_events", nil); err != nil {
		t.Fatalf("empty insert = %v", err)
	}
}

func TestNilSafe(t *testing.T) {
	t.Parallel()

	var c *CH
	if err := c.Close(); err != nil {
		t.Fatalf("Close on nil = %v", err)
	}
	if err := c.Ping(context.Background()); err == nil {
		t.Fatalf("Ping on nil should fail")
	}
}

func TestBuildClientInfo(t *testing.T) {
	t.Parallel()

	ci := BuildClientInfo(" api ", " dev ")
	names := map[string]string{}
	for _, p := range ci.Products {
		names[p.Name] = p.Version
	}
	if names["role"] != "api" || names["solna"] != "dev" || names["go"] == "" || names["commit"] == "" {
		t.Fatalf("products = %+v", ci.Products)
	}
}
