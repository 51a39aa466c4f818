package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckEligibility_Complete(t *testing.T) {
	w := CustodialWallet{
		Address:             "TKf35SckPPwv96UXZBWWVfLfLNtzhFkEvJ",
		EncryptedPrivateKey: "deadbeef",
		IV:                  "0102030405060708090a0b0c0d0e0f10",
	}
	e := w.CheckEligibility()
	assert.True(t, e.Eligible)
	assert.Empty(t, e.Reason)
}

func TestCheckEligibility_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		wallet CustodialWallet
		reason string
	}{
		{"no address", CustodialWallet{EncryptedPrivateKey: "aa", IV: "bb"}, "missing wallet address"},
		{"no key", CustodialWallet{Address: "T...", IV: "bb"}, "missing encrypted private key"},
		{"no iv", CustodialWallet{Address: "T...", EncryptedPrivateKey: "aa"}, "missing initialization vector"},
		{"empty", CustodialWallet{}, "missing wallet address"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := c.wallet.CheckEligibility()
			assert.False(t, e.Eligible)
			assert.Equal(t, c.reason, e.Reason)
		})
	}
}

func TestSettlementCurrency_CreditPrecision(t *testing.T) {
	assert.Equal(t, int32(2), CurrencyNGN.CreditPrecision())
	assert.Equal(t, int32(6), CurrencyUSDT.CreditPrecision())
	assert.True(t, CurrencyNGN.IsFiat())
	assert.False(t, CurrencyUSDT.IsFiat())
}
