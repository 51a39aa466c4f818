package postgres

import (
	"context"
	"fmt"

	"safenode/internal/core/domain"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Append inserts a ledger record. Records are immutable once written; there
// is no update path.
func (r *TransactionRepo) Append(ctx context.Context, t *domain.TransactionRecord) error {
	query := `INSERT INTO transactions (id, account_id, email, kind, amount, currency, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.AccountID, t.Email, t.Kind,
		t.Amount, t.Currency, t.Note, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger record: %w", err)
	}
	return nil
}
