package store

import (
	"context"
	"errors"
	"sync"
	"time"

	perr "solna/internal/platform/errors"
	"solna/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgAdapter wraps pg.PG and implements RowQuerier, TxRunner, Pinger, Pooler and perr.Describer
// every call borrows its own connection through pg.PG.Acquire and gives it back on all paths
type pgAdapter struct {
	p *pg.PG
}

func newPGAdapter(p *pg.PG) *pgAdapter { return &pgAdapter{p: p} }

var (
	_ TxRunner       = (*pgAdapter)(nil)
	_ Pinger         = (*pgAdapter)(nil)
	_ Pooler         = (*pgAdapter)(nil)
	_ perr.Describer = (*pgAdapter)(nil)
)

// stmtCtx bounds one statement by the client-side statement timeout
func (a *pgAdapter) stmtCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.p.StatementTimeout > 0 {
		return context.WithTimeout(ctx, a.p.StatementTimeout)
	}
	return context.WithCancel(ctx)
}

// Ping borrows one connection, runs SELECT 1 and traces it
func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil {
		return errors.New("pg: nil adapter")
	}
	_, err := Scalar[int](ctx, a, "SELECT 1")
	return err
}

// ping is Ping without tracing, used while booting
func (a *pgAdapter) ping(ctx context.Context) error {
	conn, err := a.p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	sctx, cancel := a.stmtCtx(ctx)
	defer cancel()
	return conn.Ping(sctx)
}

// PoolStat reports pool occupancy without borrowing
func (a *pgAdapter) PoolStat() (PoolStat, error) {
	if a == nil {
		return PoolStat{}, pg.ErrNoPool
	}
	s, err := a.p.Stat()
	if err != nil {
		return PoolStat{}, err
	}
	return PoolStat{Total: s.Total, Idle: s.Idle, Acquired: s.Acquired, Max: s.Max, Waiting: s.Waiting}, nil
}

// Describe maps a raw error from this adapter to a perr.Failure
func (a *pgAdapter) Describe(err error) perr.Failure { return pg.Describe(err) }

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

func (a *pgAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	conn, err := a.p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	sctx, cancel := a.stmtCtx(ctx)
	defer cancel()
	start := time.Now()
	ct, err := conn.Exec(sctx, sql, args...)
	a.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return tag{ct}, nil
}

func (a *pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	conn, err := a.p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	sctx, cancel := a.stmtCtx(ctx)
	start := time.Now()
	rs, err := conn.Query(sctx, sql, args...)
	if err != nil {
		a.emit(ctx, sql, args, start, err)
		cancel()
		conn.Release()
		return nil, err
	}
	// emit once the set is drained so timing covers the scan
	return &rows{r: rs, done: func(iterErr error) {
		a.emit(ctx, sql, args, start, iterErr)
		cancel()
		conn.Release()
	}}, nil
}

func (a *pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	conn, err := a.p.Acquire(ctx)
	if err != nil {
		return errRow{err: err}
	}
	sctx, cancel := a.stmtCtx(ctx)
	start := time.Now()
	r := conn.QueryRow(sctx, sql, args...)
	return row{
		r: r,
		after: func(scanErr error) {
			a.emit(ctx, sql, args, start, scanErr)
			cancel()
			conn.Release()
		},
	}
}

func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	conn, err := a.p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	q := txQuerier{
		tx:     tx,
		tracer: a.p.Tracer,
		slowUS: int64(a.p.SlowMs) * 1000,
	}
	if err := fn(q); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// emit sends a query event to the configured tracer
func (a *pgAdapter) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if a == nil || a.p == nil || a.p.Tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	slow := a.p.SlowMs >= 0 && elapsedUS >= int64(a.p.SlowMs)*1000
	a.p.Tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      slow,
	})
}

// adapters for pgx to our tiny Row/Rows/CommandTag

type row struct {
	r     pgx.Row
	after func(error)
}

func (x row) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

// errRow is returned when no connection could be borrowed
type errRow struct{ err error }

func (x errRow) Scan(...any) error { return x.err }

// rows releases its connection exactly once, on exhaustion or Close
type rows struct {
	r    pgx.Rows
	done func(error)
	once sync.Once
}

func (x *rows) Next() bool {
	if x.r.Next() {
		return true
	}
	x.finish()
	return false
}

func (x *rows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x *rows) Err() error            { return x.r.Err() }

func (x *rows) Close() { x.finish() }

func (x *rows) finish() {
	x.once.Do(func() {
		x.r.Close()
		if x.done != nil {
			x.done(x.r.Err())
		}
	})
}

func (x *rows) Columns() []string {
	f := x.r.FieldDescriptions()
	out := make([]string, len(f))
	for i := range f {
		out[i] = f[i].Name
	}
	return out
}

// wrap pgconn.CommandTag so we satisfy our CommandTag interface
type tag struct{ t pgconn.CommandTag }

func (t tag) String() string      { return t.t.String() }
func (t tag) RowsAffected() int64 { return t.t.RowsAffected() }

// txQuerier uses pgx.Tx to satisfy RowQuerier inside a Tx
// it mirrors pgAdapter emit behavior so queries inside transactions are also traced
type txQuerier struct {
	tx     pgx.Tx
	tracer pg.QueryTracer
	slowUS int64
}

func (t txQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := t.tx.Exec(ctx, sql, args...)
	t.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return tag{ct}, nil
}

func (t txQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := t.tx.Query(ctx, sql, args...)
	if err != nil {
		t.emit(ctx, sql, args, start, err)
		return nil, err
	}
	return &rows{r: rs, done: func(iterErr error) { t.emit(ctx, sql, args, start, iterErr) }}, nil
}

func (t txQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := t.tx.QueryRow(ctx, sql, args...)
	return row{
		r: r,
		after: func(scanErr error) {
			t.emit(ctx, sql, args, start, scanErr)
		},
	}
}

func (t txQuerier) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if t.tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	slow := t.slowUS >= 0 && elapsedUS >= t.slowUS
	t.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      slow,
	})
}
