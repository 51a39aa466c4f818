package service

import (
	"context"
	"fmt"
	"time"

	"safenode/internal/core/domain"
	"safenode/internal/core/ports"
	"safenode/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LedgerServiceImpl implements ports.LedgerWriter. The account save and the
// record append hit different stores and are not wrapped in a cross-store
// transaction; a crash between them leaves the balance credited without a
// record, which is surfaced loudly for manual reconciliation.
type LedgerServiceImpl struct {
	accounts ports.AccountRepository
	records  ports.TransactionRepository
	log      zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(accounts ports.AccountRepository, records ports.TransactionRepository, log zerolog.Logger) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		accounts: accounts,
		records:  records,
		log:      log,
	}
}

// Credit bumps the account's ledger balance by amount, persists it, and
// appends exactly one deposit record carrying the same amount.
func (s *LedgerServiceImpl) Credit(ctx context.Context, account *domain.Account, amount decimal.Decimal, currency domain.SettlementCurrency, note string) error {
	if amount.IsNegative() {
		return apperror.ErrLedgerWrite(fmt.Errorf("credit amount %s is negative", amount))
	}

	account.LedgerBalance = account.LedgerBalance.Add(amount)
	if err := s.accounts.Save(ctx, account); err != nil {
		return apperror.ErrLedgerWrite(fmt.Errorf("saving account %s: %w", account.ID, err))
	}

	record := &domain.TransactionRecord{
		ID:        uuid.New(),
		AccountID: account.ID,
		Email:     account.Email,
		Kind:      domain.TransactionKindDeposit,
		Amount:    amount.String(),
		Currency:  currency,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.records.Append(ctx, record); err != nil {
		// The balance is already persisted and the on-chain transfer has
		// settled; this credit now lacks its ledger record.
		s.log.Error().
			Err(err).
			Bool("reconciliation_gap", true).
			Str("account_id", account.ID.String()).
			Str("email", account.Email).
			Str("amount", amount.String()).
			Str("currency", string(currency)).
			Msg("transaction append failed after balance credit")
		return apperror.ErrLedgerWrite(fmt.Errorf("appending record for account %s: %w", account.ID, err))
	}

	s.log.Info().
		Str("account_id", account.ID.String()).
		Str("amount", amount.String()).
		Str("currency", string(currency)).
		Msg("ledger credited")
	return nil
}
