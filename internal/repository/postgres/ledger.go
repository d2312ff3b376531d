package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"wordaday/internal/domain"
	"wordaday/internal/repository"
)

// LedgerRepo implements repository.LedgerStore on a single-row jsonb
// table. The SELECT ... FOR UPDATE on that row serializes writers, so a
// mutation always runs against the latest committed document.
type LedgerRepo struct {
	db *sql.DB
}

// NewLedgerRepo creates a new ledger repository.
func NewLedgerRepo(db *sql.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

// Read returns a snapshot of the persisted ledger. A missing row decodes
// as the empty ledger.
func (r *LedgerRepo) Read(ctx context.Context) (domain.Ledger, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM ledger WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Ledger{}, nil
	}
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("%w: read ledger: %v", domain.ErrPersistence, err)
	}

	return decodeLedger(raw)
}

// Mutate applies fn to the latest ledger inside one transaction and
// persists the result before returning. An error from fn rolls the
// transaction back and is returned verbatim.
func (r *LedgerRepo) Mutate(ctx context.Context, fn repository.MutateFunc) (domain.Ledger, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("%w: begin: %v", domain.ErrPersistence, err)
	}
	defer tx.Rollback()

	var raw []byte
	current := domain.Ledger{}
	err = tx.QueryRowContext(ctx, `SELECT doc FROM ledger WHERE id = 1 FOR UPDATE`).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// First mutation on a fresh database; the upsert below creates the row.
	case err != nil:
		return domain.Ledger{}, fmt.Errorf("%w: lock ledger: %v", domain.ErrPersistence, err)
	default:
		if current, err = decodeLedger(raw); err != nil {
			return domain.Ledger{}, err
		}
	}

	next, err := fn(current)
	if err != nil {
		return domain.Ledger{}, err
	}

	encoded, err := json.Marshal(next)
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("%w: encode ledger: %v", domain.ErrPersistence, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ledger (id, doc, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()
	`, encoded)
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("%w: write ledger: %v", domain.ErrPersistence, err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Ledger{}, fmt.Errorf("%w: commit: %v", domain.ErrPersistence, err)
	}

	return next, nil
}

func decodeLedger(raw []byte) (domain.Ledger, error) {
	var l domain.Ledger
	if err := json.Unmarshal(raw, &l); err != nil {
		return domain.Ledger{}, fmt.Errorf("%w: decode ledger: %v", domain.ErrPersistence, err)
	}
	return l, nil
}
