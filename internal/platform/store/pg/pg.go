// Package pg provides a Postgres client using pgxpool with bounded acquires and optional query tracing
package pg

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures pgxpool for pg
type Config struct {
	URL              string
	AppName          string
	MaxConns         int32
	MaxConnIdleTime  time.Duration
	ConnectTimeout   time.Duration
	StatementTimeout time.Duration
	AcquireTimeout   time.Duration
	SlowMs           int
}

// PG is a postgres client with pool and optional tracer
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	SlowMs int

	// StatementTimeout bounds each statement from the client side, zero disables
	StatementTimeout time.Duration
	// AcquireTimeout bounds the wait for a pooled connection, zero waits on ctx only
	AcquireTimeout time.Duration

	waiting atomic.Int64
	closed  atomic.Bool
}

var (
	// ErrNoPool is returned when the client was never opened
	ErrNoPool = errors.New("pg: no pool")
	// ErrPoolClosed is returned after Close
	ErrPoolClosed = errors.New("pg: pool closed")
)

// AcquireError reports a connection that could not be borrowed from the pool
type AcquireError struct {
	Waited time.Duration
	Err    error
}

func (e *AcquireError) Error() string {
	return fmt.Sprintf("pg: acquire connection after %s: %v", e.Waited.Round(time.Millisecond), e.Err)
}

func (e *AcquireError) Unwrap() error { return e.Err }

// Stat is a point-in-time pool snapshot
type Stat struct {
	Total    int32
	Idle     int32
	Acquired int32
	Max      int32
	Waiting  int64
}

var newPool = pgxpool.NewWithConfig

// Open creates a new PG client with the given config, optional tracer, and optional pool config mutator
// the pool connects lazily; callers ping to verify reachability
func Open(ctx context.Context, cfg Config, tracer QueryTracer, poolCfgMut func(*pgxpool.Config)) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnIdleTime > 0 {
		pcfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.ConnectTimeout > 0 {
		pcfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.StatementTimeout > 0 {
		if pcfg.ConnConfig.RuntimeParams == nil {
			pcfg.ConnConfig.RuntimeParams = map[string]string{}
		}
		pcfg.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10)
	}
	if cfg.AppName != "" {
		if pcfg.ConnConfig.RuntimeParams == nil {
			pcfg.ConnConfig.RuntimeParams = map[string]string{}
		}
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if poolCfgMut != nil {
		poolCfgMut(pcfg)
	}
	pool, err := newPool(ctx, pcfg) // use seam
	if err != nil {
		return nil, err
	}
	return &PG{
		Pool:             pool,
		Tracer:           tracer,
		SlowMs:           cfg.SlowMs,
		StatementTimeout: cfg.StatementTimeout,
		AcquireTimeout:   cfg.AcquireTimeout,
	}, nil
}

// Acquire borrows one connection, waiting at most AcquireTimeout
// the caller owns the returned conn and must Release it
func (p *PG) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	if p == nil || p.Pool == nil {
		return nil, &AcquireError{Err: ErrNoPool}
	}
	if p.closed.Load() {
		return nil, &AcquireError{Err: ErrPoolClosed}
	}
	if p.AcquireTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.AcquireTimeout)
		defer cancel()
	}

	start := time.Now()
	p.waiting.Add(1)
	conn, err := p.Pool.Acquire(ctx)
	p.waiting.Add(-1)
	if err != nil {
		return nil, &AcquireError{Waited: time.Since(start), Err: err}
	}
	return conn, nil
}

// Waiting reports how many callers are currently blocked in Acquire
func (p *PG) Waiting() int64 {
	if p == nil {
		return 0
	}
	return p.waiting.Load()
}

// Stat returns a snapshot of the pool without touching any connection
func (p *PG) Stat() (Stat, error) {
	if p == nil || p.Pool == nil {
		return Stat{}, ErrNoPool
	}
	if p.closed.Load() {
		return Stat{}, ErrPoolClosed
	}
	s := p.Pool.Stat()
	return Stat{
		Total:    s.TotalConns(),
		Idle:     s.IdleConns(),
		Acquired: s.AcquiredConns(),
		Max:      s.MaxConns(),
		Waiting:  p.waiting.Load(),
	}, nil
}

// Close closes the pool; later calls are no-ops
func (p *PG) Close() {
	if p == nil || p.Pool == nil {
		return
	}
	if p.closed.Swap(true) {
		return
	}
	p.Pool.Close()
}
