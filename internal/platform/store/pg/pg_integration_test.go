//go:build integration_pg
// +build integration_pg

package pg

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	perr "solna/internal/platform/errors"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres gives the first image pull a generous deadline
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func TestPool_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	t.Run("exhausted pool is a connection failure", func(t *testing.T) {
		cfg := Config{URL: dsn, MaxConns: 1, AcquireTimeout: 300 * time.Millisecond}
		WithTestDB(t, cfg, nil, func(p *PG) {
			held := MustAcquire(t, p, ctx)

			var one int
			if err := held.QueryRow(ctx, "select 1").Scan(&one); err != nil || one != 1 {
				t.Fatalf("select 1 = %d, %v", one, err)
			}

			start := time.Now()
			_, err := p.Acquire(ctx)
			var acq *AcquireError
			if !errors.As(err, &acq) {
				t.Fatalf("want AcquireError, got %v", err)
			}
			if time.Since(start) > 3*time.Second {
				t.Fatalf("acquire did not honour its timeout")
			}
			if o, cf := perr.Classify(Describe(err)); o != perr.OutcomeStoreUnavailable || cf {
				t.Fatalf("classified as %v %v", o, cf)
			}

			st, err := p.Stat()
			if err != nil || st.Total != 1 || st.Idle != 0 || st.Max != 1 {
				t.Fatalf("Stat = %+v, %v", st, err)
			}
		})
	})

	t.Run("waiting gauge counts blocked acquirers", func(t *testing.T) {
		cfg := Config{URL: dsn, MaxConns: 1, AcquireTimeout: 2 * time.Second}
		WithTestDB(t, cfg, nil, func(p *PG) {
			held, err := p.Acquire(ctx)
			if err != nil {
				t.Fatalf("acquire: %v", err)
			}
			done := make(chan struct{})
			go func() {
				defer close(done)
				if c, err := p.Acquire(ctx); err == nil {
					c.Release()
				}
			}()

			deadline := time.Now().Add(time.Second)
			for p.Waiting() == 0 && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}
			if p.Waiting() != 1 {
				t.Fatalf("Waiting = %d, want 1", p.Waiting())
			}
			held.Release()
			<-done
			if p.Waiting() != 0 {
				t.Fatalf("Waiting after release = %d", p.Waiting())
			}
		})
	})

	t.Run("statement timeout is reported as such", func(t *testing.T) {
		cfg := Config{URL: dsn, StatementTimeout: 200 * time.Millisecond}
		WithTestDB(t, cfg, nil, func(p *PG) {
			conn := MustAcquire(t, p, ctx)
			_, err := conn.Exec(ctx, "select pg_sleep(2)")
			if err == nil {
				t.Fatalf("expected statement timeout")
			}
			f := Describe(err)
			if f.Kind != perr.FailureStatementTimeout || f.Code != "57014" {
				t.Fatalf("Describe = %+v", f)
			}
		})
	})

	t.Run("constraint violations keep their sqlstate", func(t *testing.T) {
		WithTestDB(t, Config{URL: dsn}, func(pc *pgxpool.Config) { pc.MinConns = 1 }, func(p *PG) {
			conn := MustAcquire(t, p, ctx)
			if _, err := conn.Exec(ctx, `create temporary table t (id int primary key, n int check (n > 0))`); err != nil {
				t.Fatalf("create: %v", err)
			}
			if _, err := conn.Exec(ctx, `insert into t values (1, 1)`); err != nil {
				t.Fatalf("insert: %v", err)
			}

			_, err := conn.Exec(ctx, `insert into t values (1, 2)`)
			if f := Describe(err); f.Kind != perr.FailureUniqueViolation {
				t.Fatalf("duplicate = %+v", f)
			}
			_, err = conn.Exec(ctx, `insert into t values (2, -1)`)
			if f := Describe(err); f.Kind != perr.FailureCheckViolation {
				t.Fatalf("check = %+v", f)
			}
		})
	})
}
