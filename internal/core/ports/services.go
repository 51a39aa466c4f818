package ports

import (
	"context"
	"time"

	"safenode/internal/core/domain"

	"github.com/shopspring/decimal"
)

// KeyVault decrypts custodial private keys at rest. Implementations must
// surface decryption failures as typed errors so the orchestrator can skip
// the account instead of crashing the batch, and must never log key material.
type KeyVault interface {
	// Decrypt recovers the hex private key from hex ciphertext and IV.
	Decrypt(encryptedPrivateKey, iv string) (string, error)
	// Encrypt is the provisioning counterpart: it returns hex ciphertext and
	// a fresh hex IV for a new wallet's private key.
	Encrypt(privateKeyHex string) (encrypted string, iv string, err error)
}

// ChainClient wraps balance queries and transfers against a TRON-compatible
// node. Amounts are decimal asset units (TRX / token), not minor units.
// It is injected into the orchestrator so tests can substitute a fake.
type ChainClient interface {
	GetNativeBalance(ctx context.Context, address string) (decimal.Decimal, error)
	GetTokenBalance(ctx context.Context, address string) (decimal.Decimal, error)
	// FundNative transfers native asset from the master operational wallet.
	FundNative(ctx context.Context, toAddress string, amount decimal.Decimal) (string, error)
	// TransferToken sweeps amount (floored to integer minor units) from the
	// wallet behind privateKey to the master collection address.
	TransferToken(ctx context.Context, privateKey string, amount decimal.Decimal) (string, error)
	// TransferNative sweeps native asset to the master collection address.
	TransferNative(ctx context.Context, privateKey string, amount decimal.Decimal) (string, error)
}

// LedgerWriter credits an account's internal balance and appends the matching
// ledger record. The two writes are not atomic across stores; a failure after
// the balance write is surfaced as a reconciliation gap.
type LedgerWriter interface {
	Credit(ctx context.Context, account *domain.Account, amount decimal.Decimal, currency domain.SettlementCurrency, note string) error
}

// TaskRunner bounds per-account parallelism within a cycle.
type TaskRunner interface {
	// Concurrency computes the current safe parallelism bound.
	Concurrency() int
	// Run executes the tasks with at most Concurrency in flight and returns
	// after all have settled. One task's failure never aborts the rest.
	Run(ctx context.Context, tasks []func(context.Context))
}

// SweepRunner is the single inbound interface of the sweep pipeline.
type SweepRunner interface {
	// RunOnce executes one independent sweep cycle. Safe to call repeatedly.
	RunOnce(ctx context.Context) (*domain.CycleResult, error)
	// LastResult returns the most recent completed cycle, or nil.
	LastResult() *domain.CycleResult
}

// CycleLock serializes sweep cycles so a slow run is never overlapped by the
// next scheduled trigger, including across replicas.
type CycleLock interface {
	// TryAcquire takes the lock for runID. Returns false if it is held.
	TryAcquire(ctx context.Context, runID string, ttl time.Duration) (bool, error)
	// Release frees the lock if runID still owns it.
	Release(ctx context.Context, runID string) error
}
