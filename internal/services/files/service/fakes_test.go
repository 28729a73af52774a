package service

import (
	"context"
	"errors"
	"sync"

	"solna/internal/modkit/repokit"
	perr "solna/internal/platform/errors"
	"solna/internal/platform/store"
	"solna/internal/services/files/domain"
	"solna/internal/services/files/repo"
)

// nopTx satisfies repokit.TxRunner; the fake repo never reaches it
type nopTx struct{}

var errNop = errors.New("nop tx")

func (nopTx) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, errNop }
func (nopTx) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, errNop }
func (nopTx) QueryRow(context.Context, string, ...any) store.Row             { return nil }
func (nopTx) Tx(context.Context, func(store.RowQuerier) error) error         { return errNop }

type fakeRepo struct {
	mu       sync.Mutex
	inserted []domain.FileRecord
	failWith error
	listed   []domain.FileRecord
}

func (f *fakeRepo) Insert(_ context.Context, rec domain.FileRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.inserted = append(f.inserted, rec)
	return nil
}

func (f *fakeRepo) List(context.Context) ([]domain.FileRecord, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.listed, nil
}

func bindFake(f *fakeRepo) repokit.Binder[repo.Storage] {
	return repokit.BindFunc[repo.Storage](func(repokit.Queryer) repo.Storage { return f })
}

// countingStore records how often the ingestor touched storage
type countingStore struct {
	calls int
	rec   domain.FileRecord
	err   error
}

func (c *countingStore) Insert(_ context.Context, path string) (domain.FileRecord, error) {
	c.calls++
	if c.err != nil {
		return domain.FileRecord{}, c.err
	}
	r := c.rec
	r.Path = path
	return r, nil
}

func (c *countingStore) List(context.Context) ([]domain.FileRecord, error) {
	c.calls++
	return nil, c.err
}

func (c *countingStore) TestConnectivity(context.Context) bool {
	c.calls++
	return c.err == nil
}

func (c *countingStore) PoolStatus() (domain.PoolStatus, error) {
	c.calls++
	return domain.PoolStatus{}, c.err
}

type fixedDescriber perr.Failure

func (d fixedDescriber) Describe(error) perr.Failure { return perr.Failure(d) }

type fakeMirror struct {
	got []string
	err error
}

func (m *fakeMirror) Append(_ context.Context, rec domain.FileRecord, changeType string) error {
	m.got = append(m.got, rec.Event+"/"+changeType)
	return m.err
}

type fakePool struct {
	st  store.PoolStat
	err error
}

func (p fakePool) PoolStat() (store.PoolStat, error) { return p.st, p.err }

type fakePing struct{ err error }

func (p fakePing) Ping(context.Context) error { return p.err }
