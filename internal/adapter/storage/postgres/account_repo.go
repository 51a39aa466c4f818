package postgres

import (
	"context"
	"fmt"
	"time"

	"safenode/internal/core/domain"

	"github.com/shopspring/decimal"
)

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// FindAll returns every account with its custodial wallet fields. The sweep
// cycle walks the full directory, so there is no pagination here.
func (r *AccountRepo) FindAll(ctx context.Context) ([]*domain.Account, error) {
	query := `SELECT id, email, settlement_currency, ledger_balance::text,
		COALESCE(wallet_address, ''), COALESCE(wallet_encrypted_key, ''), COALESCE(wallet_iv, ''),
		created_at, updated_at
		FROM accounts ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		a := &domain.Account{}
		var balance string
		err := rows.Scan(
			&a.ID, &a.Email, &a.SettlementCurrency, &balance,
			&a.Wallet.Address, &a.Wallet.EncryptedPrivateKey, &a.Wallet.IV,
			&a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		a.LedgerBalance, err = decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("parse ledger balance for %s: %w", a.Email, err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}
	return accounts, nil
}

// Save persists an account's ledger balance.
func (r *AccountRepo) Save(ctx context.Context, a *domain.Account) error {
	query := `UPDATE accounts SET ledger_balance = $1, updated_at = $2 WHERE id = $3`

	a.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, query, a.LedgerBalance.String(), a.UpdatedAt, a.ID)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account not found: %s", a.ID)
	}
	return nil
}
