package service

import (
	"encoding/hex"
	"strings"
	"testing"

	"safenode/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrivateKey = "b5a4cea271ff424d7c31dc12a3e43e401df7a40d7412a15750f3f0b6b5449a28"

func newTestVault(t *testing.T) *AESKeyVault {
	t.Helper()
	v, err := NewAESKeyVault("correct horse battery staple")
	require.NoError(t, err)
	return v
}

func TestNewAESKeyVault_EmptyPassphrase(t *testing.T) {
	_, err := NewAESKeyVault("")
	assert.Error(t, err)
}

func TestVault_EncryptDecryptRoundtrip(t *testing.T) {
	v := newTestVault(t)

	enc, iv, err := v.Encrypt(testPrivateKey)
	require.NoError(t, err)
	assert.NotEmpty(t, enc)
	assert.Len(t, iv, 32) // 16 bytes hex-encoded
	assert.NotContains(t, enc, testPrivateKey)

	got, err := v.Decrypt(enc, iv)
	require.NoError(t, err)
	assert.Equal(t, testPrivateKey, got)
}

func TestVault_Decrypt_TamperedCiphertext(t *testing.T) {
	v := newTestVault(t)

	enc, iv, err := v.Encrypt(testPrivateKey)
	require.NoError(t, err)

	// Flip a byte in the final block so the padding no longer verifies.
	raw, err := hex.DecodeString(enc)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	tampered := hex.EncodeToString(raw)

	_, err = v.Decrypt(tampered, iv)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VLT_001", appErr.Code)
}

func TestVault_Decrypt_WrongPassphrase(t *testing.T) {
	v1 := newTestVault(t)
	v2, err := NewAESKeyVault("another passphrase entirely")
	require.NoError(t, err)

	enc, iv, err := v1.Encrypt(testPrivateKey)
	require.NoError(t, err)

	_, err = v2.Decrypt(enc, iv)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VLT_001", appErr.Code)
}

func TestVault_Decrypt_BadInputs(t *testing.T) {
	v := newTestVault(t)

	enc, iv, err := v.Encrypt(testPrivateKey)
	require.NoError(t, err)

	cases := []struct {
		name string
		enc  string
		iv   string
	}{
		{"non-hex ciphertext", "zz" + enc[2:], iv},
		{"non-hex iv", enc, "zz" + iv[2:]},
		{"short iv", enc, iv[:16]},
		{"empty ciphertext", "", iv},
		{"partial block", enc[:30], iv},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := v.Decrypt(c.enc, c.iv)
			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VLT_001", appErr.Code)
		})
	}
}

func TestVault_Encrypt_RejectsMalformedKey(t *testing.T) {
	v := newTestVault(t)

	_, _, err := v.Encrypt("not a key")
	assert.Error(t, err)

	_, _, err = v.Encrypt(strings.Repeat("g", 64))
	assert.Error(t, err)
}

func TestVault_Encrypt_FreshIVPerCall(t *testing.T) {
	v := newTestVault(t)

	_, iv1, err := v.Encrypt(testPrivateKey)
	require.NoError(t, err)
	_, iv2, err := v.Encrypt(testPrivateKey)
	require.NoError(t, err)
	assert.NotEqual(t, iv1, iv2)
}
