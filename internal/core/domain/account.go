package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementCurrency is the unit an account's ledger balance is denominated in.
type SettlementCurrency string

const (
	// CurrencyUSDT keeps the balance in the swept token's own unit.
	CurrencyUSDT SettlementCurrency = "USDT"
	// CurrencyNGN settles in naira at the configured cross-rate.
	CurrencyNGN SettlementCurrency = "NGN"
)

// IsFiat reports whether credits must be converted at the token-to-fiat rate.
func (c SettlementCurrency) IsFiat() bool {
	return c == CurrencyNGN
}

// CreditPrecision is the number of decimal places a ledger credit is rounded
// to: 2 for fiat, 6 for token-denominated balances (the token's minor unit).
func (c SettlementCurrency) CreditPrecision() int32 {
	if c.IsFiat() {
		return 2
	}
	return 6
}

// CustodialWallet holds the chain credentials the system keeps on behalf of
// the account owner. The private key is stored encrypted; only the vault can
// recover it.
type CustodialWallet struct {
	Address             string `json:"address"`
	EncryptedPrivateKey string `json:"-"`
	IV                  string `json:"-"`
}

// Eligibility reports whether the wallet has the complete material a sweep
// needs, with a reason when it does not. An ineligible wallet is a no-op for
// the sweep, not an error.
type Eligibility struct {
	Eligible bool
	Reason   string
}

// CheckEligibility validates the wallet's shape before any processing begins.
func (w CustodialWallet) CheckEligibility() Eligibility {
	switch {
	case w.Address == "":
		return Eligibility{Reason: "missing wallet address"}
	case w.EncryptedPrivateKey == "":
		return Eligibility{Reason: "missing encrypted private key"}
	case w.IV == "":
		return Eligibility{Reason: "missing initialization vector"}
	}
	return Eligibility{Eligible: true}
}

// Account is a user directory entry as seen by the sweep pipeline. The
// pipeline only ever credits LedgerBalance; external processes may mutate it
// concurrently, so every read is treated as possibly stale.
type Account struct {
	ID                 uuid.UUID          `json:"id"`
	Email              string             `json:"email"`
	SettlementCurrency SettlementCurrency `json:"settlement_currency"`
	LedgerBalance      decimal.Decimal    `json:"ledger_balance"`
	Wallet             CustodialWallet    `json:"wallet"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}
