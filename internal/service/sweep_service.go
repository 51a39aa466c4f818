package service

import (
	"context"
	"sync"
	"time"

	"safenode/internal/core/domain"
	"safenode/internal/core/ports"
	"safenode/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// SweepParams are the tuning knobs of the sweep pipeline, fixed at startup.
type SweepParams struct {
	// GasFloor is the minimum native balance (TRX) a wallet needs before a
	// token transfer can pay its own fee.
	GasFloor decimal.Decimal
	// SettlementDelay is how long to wait after a funding transfer before
	// re-reading the native balance.
	SettlementDelay time.Duration
	// FlatFeeNative is the per-sweep fee charged to the user, in TRX.
	FlatFeeNative decimal.Decimal
	// NativeToTokenRate converts the flat fee into token units.
	NativeToTokenRate decimal.Decimal
	// TokenToFiatRate converts a token credit into a fiat settlement currency.
	TokenToFiatRate decimal.Decimal
	// SweepNativeSurplus enables sweeping native balance above the floor.
	SweepNativeSurplus bool
	// NativeSurplusMargin is how far above the floor the native balance must
	// sit before a surplus sweep is worth submitting.
	NativeSurplusMargin decimal.Decimal
}

// SweepServiceImpl implements ports.SweepRunner: one call processes every
// account in the directory once, under bounded concurrency, with per-account
// failure isolation.
type SweepServiceImpl struct {
	accounts ports.AccountRepository
	ledger   ports.LedgerWriter
	vault    ports.KeyVault
	chain    ports.ChainClient
	pool     ports.TaskRunner
	params   SweepParams
	sleep    func(ctx context.Context, d time.Duration) // injectable for tests
	log      zerolog.Logger

	mu   sync.Mutex
	last *domain.CycleResult
}

// NewSweepService creates a new SweepServiceImpl.
func NewSweepService(
	accounts ports.AccountRepository,
	ledger ports.LedgerWriter,
	vault ports.KeyVault,
	chain ports.ChainClient,
	pool ports.TaskRunner,
	params SweepParams,
	log zerolog.Logger,
) *SweepServiceImpl {
	return &SweepServiceImpl{
		accounts: accounts,
		ledger:   ledger,
		vault:    vault,
		chain:    chain,
		pool:     pool,
		params:   params,
		sleep:    sleepCtx,
		log:      log,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// RunOnce executes one sweep cycle. Only a failed account listing aborts the
// cycle; every per-account error is logged and contained.
func (s *SweepServiceImpl) RunOnce(ctx context.Context) (*domain.CycleResult, error) {
	accounts, err := s.accounts.FindAll(ctx)
	if err != nil {
		return nil, apperror.ErrDirectoryUnavailable(err)
	}

	result := &domain.CycleResult{
		Scanned:    len(accounts),
		TotalSwept: decimal.Zero,
		StartedAt:  time.Now().UTC(),
	}
	if len(accounts) == 0 {
		s.storeResult(result)
		return result, nil
	}

	result.Concurrency = s.pool.Concurrency()
	s.log.Info().
		Int("accounts", len(accounts)).
		Int("concurrency", result.Concurrency).
		Msg("sweep cycle started")

	var mu sync.Mutex
	tasks := make([]func(context.Context), 0, len(accounts))
	for _, acct := range accounts {
		tasks = append(tasks, func(ctx context.Context) {
			swept, processed := s.processAccount(ctx, acct)
			if processed {
				mu.Lock()
				result.Processed++
				result.TotalSwept = result.TotalSwept.Add(swept)
				mu.Unlock()
			}
		})
	}
	s.pool.Run(ctx, tasks)

	result.Elapsed = time.Since(result.StartedAt)
	s.log.Info().
		Int("scanned", result.Scanned).
		Int("processed", result.Processed).
		Str("total_swept", result.TotalSwept.String()).
		Dur("elapsed", result.Elapsed).
		Msg("sweep cycle finished")

	s.storeResult(result)
	return result, nil
}

// LastResult returns the most recent completed cycle, or nil.
func (s *SweepServiceImpl) LastResult() *domain.CycleResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *SweepServiceImpl) storeResult(r *domain.CycleResult) {
	s.mu.Lock()
	s.last = r
	s.mu.Unlock()
}

// processAccount runs the per-account decision flow. It returns the net
// token amount swept and whether the account completed its pipeline. All
// failures are handled here; nothing propagates to the cycle.
func (s *SweepServiceImpl) processAccount(ctx context.Context, acct *domain.Account) (decimal.Decimal, bool) {
	log := s.log.With().
		Str("email", acct.Email).
		Str("address", acct.Wallet.Address).
		Logger()

	if e := acct.Wallet.CheckEligibility(); !e.Eligible {
		log.Debug().Str("reason", e.Reason).Msg("account not eligible for sweep, skipping")
		return decimal.Zero, false
	}

	privateKey, err := s.vault.Decrypt(acct.Wallet.EncryptedPrivateKey, acct.Wallet.IV)
	if err != nil {
		log.Warn().Err(err).Msg("key decryption failed, skipping account")
		return decimal.Zero, false
	}

	native, err := s.chain.GetNativeBalance(ctx, acct.Wallet.Address)
	if err != nil {
		log.Error().Err(err).Msg("native balance read failed")
		return decimal.Zero, false
	}
	token, err := s.chain.GetTokenBalance(ctx, acct.Wallet.Address)
	if err != nil {
		log.Error().Err(err).Msg("token balance read failed")
		return decimal.Zero, false
	}

	// Gas assurance: fund the exact shortfall, wait for settlement, re-read.
	if token.IsPositive() && native.LessThan(s.params.GasFloor) {
		shortfall := s.params.GasFloor.Sub(native).Round(6)
		log.Info().
			Str("shortfall", shortfall.String()).
			Str("native_balance", native.String()).
			Msg("funding gas")

		if _, err := s.chain.FundNative(ctx, acct.Wallet.Address, shortfall); err != nil {
			log.Error().Err(err).Msg("gas funding failed")
			return decimal.Zero, false
		}
		s.sleep(ctx, s.params.SettlementDelay)

		native, err = s.chain.GetNativeBalance(ctx, acct.Wallet.Address)
		if err != nil {
			log.Error().Err(err).Msg("post-funding balance read failed")
			return decimal.Zero, false
		}
		if native.LessThan(s.params.GasFloor) {
			log.Warn().
				Err(apperror.ErrInsufficientGasAfterFunding()).
				Str("native_balance", native.String()).
				Str("gas_floor", s.params.GasFloor.String()).
				Msg("native balance still below gas floor after funding")
			return decimal.Zero, false
		}
	}

	net := decimal.Zero
	if token.IsPositive() && native.GreaterThanOrEqual(s.params.GasFloor) {
		txID, err := s.chain.TransferToken(ctx, privateKey, token)
		if err != nil {
			log.Error().Err(err).Msg("token sweep failed")
			return decimal.Zero, false
		}

		feeInToken := s.params.FlatFeeNative.Mul(s.params.NativeToTokenRate)
		net = token.Sub(feeInToken)
		if net.IsNegative() {
			net = decimal.Zero
		}

		credit := net
		if acct.SettlementCurrency.IsFiat() {
			credit = net.Mul(s.params.TokenToFiatRate)
		}
		credit = credit.Round(acct.SettlementCurrency.CreditPrecision())

		if err := s.ledger.Credit(ctx, acct, credit, acct.SettlementCurrency, domain.NoteAutoCreditAfterSweep); err != nil {
			// The token transfer already settled on-chain; the ledger service
			// has logged the reconciliation gap.
			log.Error().Err(err).Str("tx_id", txID).Msg("ledger credit failed after sweep")
			return decimal.Zero, false
		}

		log.Info().
			Str("tx_id", txID).
			Str("gross", token.String()).
			Str("net", net.String()).
			Str("credited", credit.String()).
			Str("currency", string(acct.SettlementCurrency)).
			Msg("token balance swept")
	}

	// Optional native surplus sweep. Independent of the token sweep and
	// never touches the ledger balance, so a failure here must not undo the
	// accounting of a credit that already settled above.
	if s.params.SweepNativeSurplus && native.GreaterThan(s.params.GasFloor.Add(s.params.NativeSurplusMargin)) {
		surplus := native.Sub(s.params.GasFloor)
		txID, err := s.chain.TransferNative(ctx, privateKey, surplus)
		if err != nil {
			log.Error().Err(err).Msg("native surplus sweep failed")
			return net, true
		}
		log.Info().
			Str("tx_id", txID).
			Str("surplus", surplus.String()).
			Msg("native surplus swept")
	}

	return net, true
}
