package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionKind tags a ledger record.
type TransactionKind string

const (
	// TransactionKindDeposit is the only kind the sweep pipeline writes.
	TransactionKindDeposit TransactionKind = "deposit"
)

// NoteAutoCreditAfterSweep identifies a post-sweep auto-credit record.
const NoteAutoCreditAfterSweep = "Auto credit after sweep"

// TransactionRecord is an immutable, append-only ledger entry. The sweep
// pipeline creates exactly one per successful sweep credit and never mutates
// or deletes existing records.
type TransactionRecord struct {
	ID        uuid.UUID          `json:"id"`
	AccountID uuid.UUID          `json:"account_id"`
	Email     string             `json:"email"`
	Kind      TransactionKind    `json:"kind"`
	Amount    string             `json:"amount"` // stringified decimal
	Currency  SettlementCurrency `json:"currency"`
	Note      string             `json:"note"`
	CreatedAt time.Time          `json:"created_at"`
}
