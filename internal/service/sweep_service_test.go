package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"safenode/internal/core/domain"
	"safenode/internal/core/ports/mocks"
	"safenode/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// serialRunner executes tasks one by one so expectations stay ordered.
type serialRunner struct{ n int }

func (r serialRunner) Concurrency() int { return r.n }

func (r serialRunner) Run(ctx context.Context, tasks []func(context.Context)) {
	for _, task := range tasks {
		task(ctx)
	}
}

func testSweepParams() SweepParams {
	return SweepParams{
		GasFloor:            decimal.NewFromInt(10),
		SettlementDelay:     3 * time.Second,
		FlatFeeNative:       decimal.NewFromInt(10),
		NativeToTokenRate:   decimal.RequireFromString("0.1"),
		TokenToFiatRate:     decimal.NewFromInt(1600),
		SweepNativeSurplus:  false,
		NativeSurplusMargin: decimal.NewFromInt(1),
	}
}

type sweepTestDeps struct {
	svc      *SweepServiceImpl
	accounts *mocks.MockAccountRepository
	ledger   *mocks.MockLedgerWriter
	vault    *mocks.MockKeyVault
	chain    *mocks.MockChainClient
	ctrl     *gomock.Controller
	slept    []time.Duration
}

func setupSweepService(t *testing.T, params SweepParams) *sweepTestDeps {
	ctrl := gomock.NewController(t)
	d := &sweepTestDeps{
		accounts: mocks.NewMockAccountRepository(ctrl),
		ledger:   mocks.NewMockLedgerWriter(ctrl),
		vault:    mocks.NewMockKeyVault(ctrl),
		chain:    mocks.NewMockChainClient(ctrl),
		ctrl:     ctrl,
	}
	d.svc = NewSweepService(d.accounts, d.ledger, d.vault, d.chain, serialRunner{n: 1}, params, zerolog.Nop())
	d.svc.sleep = func(_ context.Context, dur time.Duration) {
		d.slept = append(d.slept, dur)
	}
	return d
}

func sweepAccount(currency domain.SettlementCurrency) *domain.Account {
	return &domain.Account{
		ID:                 uuid.New(),
		Email:              "seller@example.com",
		SettlementCurrency: currency,
		LedgerBalance:      decimal.Zero,
		Wallet: domain.CustodialWallet{
			Address:             "TKf35SckPPwv96UXZBWWVfLfLNtzhFkEvJ",
			EncryptedPrivateKey: "656e63",
			IV:                  "0102030405060708090a0b0c0d0e0f10",
		},
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// decEq matches a decimal argument by numeric value.
type decEq struct{ want decimal.Decimal }

func (m decEq) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decEq) String() string { return "decimal equal to " + m.want.String() }

func TestRunOnce_DirectoryUnavailableAbortsCycle(t *testing.T) {
	d := setupSweepService(t, testSweepParams())
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.accounts.EXPECT().FindAll(ctx).Return(nil, errors.New("pool closed"))

	_, err := d.svc.RunOnce(ctx)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DIR_001", appErr.Code)
	assert.Nil(t, d.svc.LastResult())
}

func TestRunOnce_EmptyDirectory(t *testing.T) {
	d := setupSweepService(t, testSweepParams())
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.accounts.EXPECT().FindAll(ctx).Return(nil, nil)

	res, err := d.svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Scanned)
	assert.Equal(t, 0, res.Processed)
	assert.Equal(t, res, d.svc.LastResult())
}

func TestRunOnce_IncompleteWalletSkipped(t *testing.T) {
	d := setupSweepService(t, testSweepParams())
	defer d.ctrl.Finish()

	ctx := context.Background()
	acct := sweepAccount(domain.CurrencyUSDT)
	acct.Wallet.IV = ""

	// No vault, chain, or ledger expectations: any call would fail the test.
	d.accounts.EXPECT().FindAll(ctx).Return([]*domain.Account{acct}, nil)

	res, err := d.svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Scanned)
	assert.Equal(t, 0, res.Processed)
	assert.True(t, res.TotalSwept.IsZero())
}

func TestRunOnce_FundGasThenSweep(t *testing.T) {
	// Account has 50 tokens, 2 TRX, floor 10: expect a funding transfer of 8,
	// a settlement wait, a re-read at 10, then a 50-token sweep. The flat fee
	// of 10 TRX at 0.1 token/TRX nets 49.
	d := setupSweepService(t, testSweepParams())
	defer d.ctrl.Finish()

	ctx := context.Background()
	acct := sweepAccount(domain.CurrencyUSDT)
	addr := acct.Wallet.Address

	d.accounts.EXPECT().FindAll(ctx).Return([]*domain.Account{acct}, nil)
	d.vault.EXPECT().Decrypt(acct.Wallet.EncryptedPrivateKey, acct.Wallet.IV).Return("priv", nil)

	first := d.chain.EXPECT().GetNativeBalance(ctx, addr).Return(dec("2"), nil)
	d.chain.EXPECT().GetTokenBalance(ctx, addr).Return(dec("50"), nil)
	d.chain.EXPECT().FundNative(ctx, addr, decEq{dec("8")}).Return("txfund", nil)
	d.chain.EXPECT().GetNativeBalance(ctx, addr).Return(dec("10"), nil).After(first)
	d.chain.EXPECT().TransferToken(ctx, "priv", decEq{dec("50")}).Return("txsweep", nil)
	d.ledger.EXPECT().
		Credit(ctx, acct, decEq{dec("49")}, domain.CurrencyUSDT, domain.NoteAutoCreditAfterSweep).
		Return(nil)

	res, err := d.svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.True(t, res.TotalSwept.Equal(dec("49")))
	assert.Equal(t, []time.Duration{3 * time.Second}, d.slept)
}

func TestRunOnce_FiatSettlementConversion(t *testing.T) {
	d := setupSweepService(t, testSweepParams())
	defer d.ctrl.Finish()

	ctx := context.Background()
	acct := sweepAccount(domain.CurrencyNGN)
	addr := acct.Wallet.Address

	d.accounts.EXPECT().FindAll(ctx).Return([]*domain.Account{acct}, nil)
	d.vault.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return("priv", nil)
	d.chain.EXPECT().GetNativeBalance(ctx, addr).Return(dec("15"), nil)
	d.chain.EXPECT().GetTokenBalance(ctx, addr).Return(dec("50"), nil)
	d.chain.EXPECT().TransferToken(ctx, "priv", decEq{dec("50")}).Return("tx", nil)
	// net 49 tokens × 1600 = 78400 NGN, rounded to 2 dp.
	d.ledger.EXPECT().
		Credit(ctx, acct, decEq{dec("78400")}, domain.CurrencyNGN, domain.NoteAutoCreditAfterSweep).
		Return(nil)

	res, err := d.svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.True(t, res.TotalSwept.Equal(dec("49")))
	assert.Empty(t, d.slept) // gas already above floor, no funding wait
}

func TestRunOnce_FeeExceedsBalance_CreditsZero(t *testing.T) {
	// 0.5 tokens gross, 1 token fee: the net credit clamps to exactly zero.
	d := setupSweepService(t, testSweepParams())
	defer d.ctrl.Finish()

	ctx := context.Background()
	acct := sweepAccount(domain.CurrencyUSDT)
	addr := acct.Wallet.Address

	d.accounts.EXPECT().FindAll(ctx).Return([]*domain.Account{acct}, nil)
	d.vault.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return("priv", nil)
	d.chain.EXPECT().GetNativeBalance(ctx, addr).Return(dec("15"), nil)
	d.chain.EXPECT().GetTokenBalance(ctx, addr).Return(dec("0.5"), nil)
	d.chain.EXPECT().TransferToken(ctx, "priv", decEq{dec("0.5")}).Return("tx", nil)
	d.ledger.EXPECT().
		Credit(ctx, acct, decEq{decimal.Zero}, domain.CurrencyUSDT, domain.NoteAutoCreditAfterSweep).
		Return(nil)

	res, err := d.svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.True(t, res.TotalSwept.IsZero())
}

func TestRunOnce_NoTokens_NoChainWrites(t *testing.T) {
	d := setupSweepService(t, testSweepParams())
	defer d.ctrl.Finish()

	ctx := context.Background()
	acct := sweepAccount(domain.CurrencyUSDT)
	addr := acct.Wallet.Address

	d.accounts.EXPECT().FindAll(ctx).Return([]*domain.Account{acct}, nil)
	d.vault.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return("priv", nil)
	d.chain.EXPECT().GetNativeBalance(ctx, addr).Return(dec("2"), nil)
	d.chain.EXPECT().GetTokenBalance(ctx, addr).Return(decimal.Zero, nil)
	// No FundNative, TransferToken, or Credit expectations.

	res, err := d.svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.True(t, res.TotalSwept.IsZero())
}

func TestRunOnce_StillBelowFloorAfterFunding_SkipsSweep(t *testing.T) {
	d := setupSweepService(t, testSweepParams())
	defer d.ctrl.Finish()

	ctx := context.Background()
	acct := sweepAccount(domain.CurrencyUSDT)
	addr := acct.Wallet.Address

	d.accounts.EXPECT().FindAll(ctx).Return([]*domain.Account{acct}, nil)
	d.vault.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return("priv", nil)
	first := d.chain.EXPECT().GetNativeBalance(ctx, addr).Return(dec("2"), nil)
	d.chain.EXPECT().GetTokenBalance(ctx, addr).Return(dec("50"), nil)
	d.chain.EXPECT().FundNative(ctx, addr, decEq{dec("8")}).Return("txfund", nil)
	// Funding has not settled yet.
	d.chain.EXPECT().GetNativeBalance(ctx, addr).Return(dec("2"), nil).After(first)

	res, err := d.svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Processed)
	assert.True(t, res.TotalSwept.IsZero())
}

func TestRunOnce_VaultFailureSkipsAccountOnly(t *testing.T) {
	d := setupSweepService(t, testSweepParams())
	defer d.ctrl.Finish()

	ctx := context.Background()
	bad := sweepAccount(domain.CurrencyUSDT)
	good := sweepAccount(domain.CurrencyUSDT)
	good.Email = "other@example.com"

	d.accounts.EXPECT().FindAll(ctx).Return([]*domain.Account{bad, good}, nil)
	d.vault.EXPECT().Decrypt(bad.Wallet.EncryptedPrivateKey, bad.Wallet.IV).
		Return("", apperror.ErrInvalidKeyMaterial(errors.New("invalid padding")))
	d.vault.EXPECT().Decrypt(good.Wallet.EncryptedPrivateKey, good.Wallet.IV).Return("priv", nil)
	d.chain.EXPECT().GetNativeBalance(ctx, good.Wallet.Address).Return(dec("2"), nil)
	d.chain.EXPECT().GetTokenBalance(ctx, good.Wallet.Address).Return(decimal.Zero, nil)

	res, err := d.svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Scanned)
	assert.Equal(t, 1, res.Processed)
}

func TestRunOnce_OneAccountFailureDoesNotAbortOthers(t *testing.T) {
	d := setupSweepService(t, testSweepParams())
	defer d.ctrl.Finish()

	ctx := context.Background()
	accounts := make([]*domain.Account, 3)
	for i := range accounts {
		accounts[i] = sweepAccount(domain.CurrencyUSDT)
	}
	accounts[1].Email = "failing@example.com"

	d.accounts.EXPECT().FindAll(ctx).Return(accounts, nil)
	d.vault.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return("priv", nil).Times(3)

	d.chain.EXPECT().GetNativeBalance(ctx, gomock.Any()).
		Return(dec("15"), nil).Times(2)
	d.chain.EXPECT().GetNativeBalance(ctx, gomock.Any()).
		Return(decimal.Zero, apperror.ErrChainUnavailable("getaccount", errors.New("timeout")))
	d.chain.EXPECT().GetTokenBalance(ctx, gomock.Any()).Return(decimal.Zero, nil).Times(2)

	res, err := d.svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Scanned)
	assert.Equal(t, 2, res.Processed)
}

func TestRunOnce_LedgerFailureNotCounted(t *testing.T) {
	d := setupSweepService(t, testSweepParams())
	defer d.ctrl.Finish()

	ctx := context.Background()
	acct := sweepAccount(domain.CurrencyUSDT)
	addr := acct.Wallet.Address

	d.accounts.EXPECT().FindAll(ctx).Return([]*domain.Account{acct}, nil)
	d.vault.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return("priv", nil)
	d.chain.EXPECT().GetNativeBalance(ctx, addr).Return(dec("15"), nil)
	d.chain.EXPECT().GetTokenBalance(ctx, addr).Return(dec("50"), nil)
	d.chain.EXPECT().TransferToken(ctx, "priv", decEq{dec("50")}).Return("tx", nil)
	d.ledger.EXPECT().Credit(ctx, acct, gomock.Any(), domain.CurrencyUSDT, gomock.Any()).
		Return(apperror.ErrLedgerWrite(errors.New("ledger down")))

	res, err := d.svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Processed)
}

func TestRunOnce_NativeSurplusSweep(t *testing.T) {
	params := testSweepParams()
	params.SweepNativeSurplus = true
	d := setupSweepService(t, params)
	defer d.ctrl.Finish()

	ctx := context.Background()
	acct := sweepAccount(domain.CurrencyUSDT)
	addr := acct.Wallet.Address

	d.accounts.EXPECT().FindAll(ctx).Return([]*domain.Account{acct}, nil)
	d.vault.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return("priv", nil)
	d.chain.EXPECT().GetNativeBalance(ctx, addr).Return(dec("20"), nil)
	d.chain.EXPECT().GetTokenBalance(ctx, addr).Return(decimal.Zero, nil)
	// 20 TRX against a floor of 10 and margin of 1: sweep the 10 surplus.
	d.chain.EXPECT().TransferNative(ctx, "priv", decEq{dec("10")}).Return("tx", nil)

	res, err := d.svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.True(t, res.TotalSwept.IsZero()) // surplus sweep never credits the ledger
}

func TestRunOnce_SurplusFailureKeepsCreditedTotal(t *testing.T) {
	// The token sweep and its ledger credit settle before the surplus
	// transfer runs; a surplus failure must not drop them from the cycle.
	params := testSweepParams()
	params.SweepNativeSurplus = true
	d := setupSweepService(t, params)
	defer d.ctrl.Finish()

	ctx := context.Background()
	acct := sweepAccount(domain.CurrencyUSDT)
	addr := acct.Wallet.Address

	d.accounts.EXPECT().FindAll(ctx).Return([]*domain.Account{acct}, nil)
	d.vault.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return("priv", nil)
	d.chain.EXPECT().GetNativeBalance(ctx, addr).Return(dec("20"), nil)
	d.chain.EXPECT().GetTokenBalance(ctx, addr).Return(dec("50"), nil)
	d.chain.EXPECT().TransferToken(ctx, "priv", decEq{dec("50")}).Return("txsweep", nil)
	d.ledger.EXPECT().
		Credit(ctx, acct, decEq{dec("49")}, domain.CurrencyUSDT, domain.NoteAutoCreditAfterSweep).
		Return(nil)
	d.chain.EXPECT().TransferNative(ctx, "priv", decEq{dec("10")}).
		Return("", apperror.ErrChainUnavailable("createtransaction", errors.New("timeout")))

	res, err := d.svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.True(t, res.TotalSwept.Equal(dec("49")))
}

func TestRunOnce_SurplusBelowMarginNotSwept(t *testing.T) {
	params := testSweepParams()
	params.SweepNativeSurplus = true
	d := setupSweepService(t, params)
	defer d.ctrl.Finish()

	ctx := context.Background()
	acct := sweepAccount(domain.CurrencyUSDT)
	addr := acct.Wallet.Address

	d.accounts.EXPECT().FindAll(ctx).Return([]*domain.Account{acct}, nil)
	d.vault.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Return("priv", nil)
	d.chain.EXPECT().GetNativeBalance(ctx, addr).Return(dec("10.5"), nil)
	d.chain.EXPECT().GetTokenBalance(ctx, addr).Return(decimal.Zero, nil)
	// 10.5 is within floor+margin (11): no TransferNative expectation.

	res, err := d.svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
}
