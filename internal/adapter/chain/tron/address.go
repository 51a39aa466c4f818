package tron

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
)

// addressPrefix is the mainnet byte prepended to the 20-byte account hash.
const addressPrefix = 0x41

// encodeBase58Check serializes a raw 21-byte address into the familiar
// T-prefixed form: payload followed by the first four bytes of a double
// SHA-256 checksum.
func encodeBase58Check(payload []byte) string {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return base58.Encode(append(payload, second[:4]...))
}

// decodeBase58Check reverses encodeBase58Check, verifying the checksum and
// the mainnet prefix. It returns the 21-byte payload.
func decodeBase58Check(address string) ([]byte, error) {
	raw, err := base58.Decode(address)
	if err != nil {
		return nil, fmt.Errorf("decode base58: %w", err)
	}
	if len(raw) != 25 {
		return nil, fmt.Errorf("address payload is %d bytes, want 25", len(raw))
	}
	payload, checksum := raw[:21], raw[21:]
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	if !bytes.Equal(checksum, second[:4]) {
		return nil, fmt.Errorf("checksum mismatch")
	}
	if payload[0] != addressPrefix {
		return nil, fmt.Errorf("unexpected address prefix 0x%02x", payload[0])
	}
	return payload, nil
}

// addressFromKey derives the base58check account address controlled by the
// given key: the last 20 bytes of the Keccak-256 public key hash, behind the
// mainnet prefix.
func addressFromKey(key *ecdsa.PrivateKey) string {
	ethAddr := crypto.PubkeyToAddress(key.PublicKey)
	payload := append([]byte{addressPrefix}, ethAddr.Bytes()...)
	return encodeBase58Check(payload)
}

// encodeTransferParams packs the transfer(address,uint256) calldata: the
// 20-byte recipient hash and the amount in minor units, each left-padded to
// a 32-byte word.
func encodeTransferParams(toAddress string, amountSun int64) (string, error) {
	payload, err := decodeBase58Check(toAddress)
	if err != nil {
		return "", fmt.Errorf("recipient address: %w", err)
	}
	var words [64]byte
	copy(words[12:32], payload[1:]) // strip the network prefix
	amount := make([]byte, 8)
	for i := 0; i < 8; i++ {
		amount[7-i] = byte(amountSun >> (8 * i))
	}
	copy(words[56:64], amount)
	return hex.EncodeToString(words[:]), nil
}
