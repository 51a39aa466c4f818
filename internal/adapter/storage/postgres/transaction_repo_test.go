package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"safenode/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord() *domain.TransactionRecord {
	return &domain.TransactionRecord{
		ID:        uuid.New(),
		AccountID: uuid.New(),
		Email:     "seller@example.com",
		Kind:      domain.TransactionKindDeposit,
		Amount:    "49",
		Currency:  domain.CurrencyUSDT,
		Note:      domain.NoteAutoCreditAfterSweep,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestTransactionRepo_Append(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	rec := newTestRecord()

	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(rec.ID, rec.AccountID, rec.Email, rec.Kind,
			rec.Amount, rec.Currency, rec.Note, rec.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Append(context.Background(), rec)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_Append_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	rec := newTestRecord()

	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(rec.ID, rec.AccountID, rec.Email, rec.Kind,
			rec.Amount, rec.Currency, rec.Note, rec.CreatedAt).
		WillReturnError(errors.New("connection reset"))

	err = repo.Append(context.Background(), rec)
	assert.ErrorContains(t, err, "insert ledger record")
}
