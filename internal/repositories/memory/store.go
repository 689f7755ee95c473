// Package memory provides an in-process implementation of the repository ports.
// It backs the service tests and the STORAGE_DRIVER=memory mode.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/SscSPs/gl_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backend/internal/core/ports/repositories"
)

type state struct {
	accounts   map[string]domain.Account
	journals   map[string]domain.Journal // headers only
	lines      map[string][]domain.EntryLine
	batches    map[string]domain.Batch
	mappings   map[string]domain.AccountMapping
	settings   map[string]domain.GLSettings
	importRows []domain.ImportRow
}

func newState() *state {
	return &state{
		accounts: make(map[string]domain.Account),
		journals: make(map[string]domain.Journal),
		lines:    make(map[string][]domain.EntryLine),
		batches:  make(map[string]domain.Batch),
		mappings: make(map[string]domain.AccountMapping),
		settings: make(map[string]domain.GLSettings),
	}
}

func (s *state) snapshot() *state {
	c := &state{
		accounts:   maps.Clone(s.accounts),
		journals:   maps.Clone(s.journals),
		lines:      make(map[string][]domain.EntryLine, len(s.lines)),
		batches:    maps.Clone(s.batches),
		mappings:   maps.Clone(s.mappings),
		settings:   make(map[string]domain.GLSettings, len(s.settings)),
		importRows: append([]domain.ImportRow(nil), s.importRows...),
	}
	for id, ls := range s.lines {
		c.lines[id] = append([]domain.EntryLine(nil), ls...)
	}
	for id, st := range s.settings {
		st.DefaultPostingRules = maps.Clone(st.DefaultPostingRules)
		c.settings[id] = st
	}
	return c
}

// Store is the in-memory database. Writes outside WithTx are applied
// immediately; WithTx holds the write lock for the whole unit of work and
// restores a snapshot when it fails.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{st: newState()}
}

// access abstracts over locked (pool-like) and unlocked (in-transaction) use.
type access interface {
	read(fn func(st *state))
	write(fn func(st *state) error) error
}

type lockedAccess struct{ s *Store }

func (a lockedAccess) read(fn func(st *state)) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	fn(a.s.st)
}

func (a lockedAccess) write(fn func(st *state) error) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return fn(a.s.st)
}

// txAccess is used while WithTx already holds the write lock.
type txAccess struct{ s *Store }

func (a txAccess) read(fn func(st *state)) { fn(a.s.st) }

func (a txAccess) write(fn func(st *state) error) error { return fn(a.s.st) }

func repositoriesFor(a access) portsrepo.Repositories {
	return portsrepo.Repositories{
		AccountRepo:   &accountRepository{a: a},
		JournalRepo:   &journalRepository{a: a},
		BatchRepo:     &batchRepository{a: a},
		MappingRepo:   &mappingRepository{a: a},
		SettingsRepo:  &settingsRepository{a: a},
		ImportRowRepo: &importRowRepository{a: a},
	}
}

// NewRepositoryProvider wires every repository port to the store.
func (s *Store) NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Repositories: repositoriesFor(lockedAccess{s: s}),
		TxManager:    s,
	}
}

var _ portsrepo.TransactionManager = (*Store)(nil)

// WithTx runs fn against the store with every other caller excluded. Units of
// work are serialized, which is at least as strong as any isolation level
// requested through opts.
func (s *Store) WithTx(ctx context.Context, _ portsrepo.TxOptions, fn portsrepo.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.snapshot()
	if err := fn(ctx, repositoriesFor(txAccess{s: s})); err != nil {
		s.st = snapshot
		return err
	}
	if err := ctx.Err(); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}
