package testutil

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"wordaday/internal/domain"
	"wordaday/internal/repository"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestWord creates a test word
func NewTestWord(word, date string) *domain.Word {
	return &domain.Word{Word: word, Date: date}
}

// NewTestSubmission creates a test submission
func NewTestSubmission(id, word, text, username string) domain.Submission {
	return domain.Submission{
		ID:        id,
		Word:      word,
		Text:      text,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
}

// MemoryLedgerStore is an in-memory repository.LedgerStore for tests:
// same serialization and snapshot semantics as the Postgres store, plus
// hooks for injecting failures and counting mutations.
type MemoryLedgerStore struct {
	mu        sync.Mutex
	ledger    domain.Ledger
	Mutations int

	// FailWith, when set, makes every Mutate fail without applying fn.
	FailWith error
}

// NewMemoryLedgerStore creates a store seeded with the given ledger.
func NewMemoryLedgerStore(seed domain.Ledger) *MemoryLedgerStore {
	return &MemoryLedgerStore{ledger: seed.Clone()}
}

func (m *MemoryLedgerStore) Read(ctx context.Context) (domain.Ledger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger.Clone(), nil
}

func (m *MemoryLedgerStore) Mutate(ctx context.Context, fn repository.MutateFunc) (domain.Ledger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return domain.Ledger{}, m.FailWith
	}

	next, err := fn(m.ledger.Clone())
	if err != nil {
		return domain.Ledger{}, err
	}

	m.ledger = next.Clone()
	m.Mutations++
	return next, nil
}

// Ledger returns a snapshot for assertions.
func (m *MemoryLedgerStore) Ledger() domain.Ledger {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger.Clone()
}
