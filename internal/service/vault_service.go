package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"

	"safenode/pkg/apperror"
)

var privateKeyPattern = regexp.MustCompile(`^[A-Fa-f0-9]{64}$`)

// AESKeyVault implements ports.KeyVault using AES-256-CBC with a key derived
// once from the operator passphrase (sha256). Ciphertext and IV are hex, the
// format the directory stores wallets in. No key material is ever logged.
type AESKeyVault struct {
	key []byte // sha256(passphrase), 32 bytes
}

// NewAESKeyVault derives the process-wide vault key from the passphrase.
func NewAESKeyVault(passphrase string) (*AESKeyVault, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("vault passphrase must not be empty")
	}
	sum := sha256.Sum256([]byte(passphrase))
	return &AESKeyVault{key: sum[:]}, nil
}

// Decrypt recovers a wallet's hex private key. Any failure — bad hex, wrong
// IV length, tampered ciphertext, bad padding, or a plaintext that is not a
// 32-byte key — surfaces as a typed InvalidKeyMaterial error so the caller
// can skip the account instead of crashing the batch.
func (v *AESKeyVault) Decrypt(encryptedPrivateKey, ivHex string) (string, error) {
	ciphertext, err := hex.DecodeString(encryptedPrivateKey)
	if err != nil {
		return "", apperror.ErrInvalidKeyMaterial(fmt.Errorf("decoding ciphertext: %w", err))
	}
	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return "", apperror.ErrInvalidKeyMaterial(fmt.Errorf("decoding iv: %w", err))
	}
	if len(iv) != aes.BlockSize {
		return "", apperror.ErrInvalidKeyMaterial(fmt.Errorf("iv must be %d bytes, got %d", aes.BlockSize, len(iv)))
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", apperror.ErrInvalidKeyMaterial(fmt.Errorf("ciphertext length %d is not a positive multiple of the block size", len(ciphertext)))
	}

	block, err := aes.NewCipher(v.key)
	if err != nil {
		return "", apperror.ErrInvalidKeyMaterial(fmt.Errorf("creating cipher: %w", err))
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	plaintext, err = stripPKCS7(plaintext)
	if err != nil {
		return "", apperror.ErrInvalidKeyMaterial(err)
	}

	privateKey := hex.EncodeToString(plaintext)
	if !privateKeyPattern.MatchString(privateKey) {
		return "", apperror.ErrInvalidKeyMaterial(fmt.Errorf("decrypted key is not a 32-byte hex key"))
	}
	return privateKey, nil
}

// Encrypt is the provisioning counterpart: it encrypts a new wallet's hex
// private key under a fresh random IV and returns both hex-encoded.
func (v *AESKeyVault) Encrypt(privateKeyHex string) (string, string, error) {
	if !privateKeyPattern.MatchString(privateKeyHex) {
		return "", "", apperror.ErrInvalidKeyMaterial(fmt.Errorf("private key is not a 32-byte hex key"))
	}
	raw, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return "", "", apperror.ErrInvalidKeyMaterial(fmt.Errorf("decoding private key: %w", err))
	}

	block, err := aes.NewCipher(v.key)
	if err != nil {
		return "", "", apperror.ErrInvalidKeyMaterial(fmt.Errorf("creating cipher: %w", err))
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", "", fmt.Errorf("generating iv: %w", err)
	}

	padded := padPKCS7(raw, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(ciphertext), hex.EncodeToString(iv), nil
}

func padPKCS7(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func stripPKCS7(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty plaintext")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > aes.BlockSize || n > len(data) {
		return nil, fmt.Errorf("invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("invalid padding")
		}
	}
	return data[:len(data)-n], nil
}
