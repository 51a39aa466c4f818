package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot is a fresh per-account chain read. Blockchain state is the
// single source of truth, so snapshots are never cached across cycles.
type BalanceSnapshot struct {
	Native decimal.Decimal // TRX
	Token  decimal.Decimal // stablecoin
}

// CycleResult summarizes one sweep batch run. It lives for the duration of
// the cycle and is kept only for the ops status endpoint and the summary log.
type CycleResult struct {
	Scanned     int             `json:"scanned"`
	Processed   int             `json:"processed"`
	TotalSwept  decimal.Decimal `json:"total_swept"` // net token units
	Concurrency int             `json:"concurrency"`
	StartedAt   time.Time       `json:"started_at"`
	Elapsed     time.Duration   `json:"elapsed"`
}
