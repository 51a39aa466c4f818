package ports

import (
	"context"

	"safenode/internal/core/domain"
)

// AccountRepository is the sweep pipeline's view of the user directory.
// The pipeline lists every account at cycle start and persists balance
// credits; it never creates or deletes accounts.
type AccountRepository interface {
	FindAll(ctx context.Context) ([]*domain.Account, error)
	// Save persists the account's ledger balance. Other fields are owned by
	// the marketplace and are not written here.
	Save(ctx context.Context, account *domain.Account) error
}

// TransactionRepository is the append-only transaction ledger.
type TransactionRepository interface {
	Append(ctx context.Context, record *domain.TransactionRecord) error
}
