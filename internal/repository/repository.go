package repository

import (
	"context"

	"wordaday/internal/domain"
)

// MutateFunc transforms one ledger state into the next. Returning an
// error aborts the mutation with no state change.
type MutateFunc func(domain.Ledger) (domain.Ledger, error)

// LedgerStore owns the persisted ledger document. It is the only
// component allowed to change ledger state.
type LedgerStore interface {
	// Read returns a consistent point-in-time snapshot of the ledger.
	Read(ctx context.Context) (domain.Ledger, error)

	// Mutate applies fn to the latest persisted state and stores the
	// result as one atomic unit. Concurrent calls are serialized. An
	// error from fn is passed through unchanged; storage failures wrap
	// domain.ErrPersistence. Either way the prior state stays intact.
	Mutate(ctx context.Context, fn MutateFunc) (domain.Ledger, error)
}
