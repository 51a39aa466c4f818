package tron

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"safenode/pkg/apperror"
	"safenode/pkg/retry"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// sunPerUnit converts whole-asset amounts to minor units. TRX and the swept
// token both carry six decimals.
const sunPerUnit = 1_000_000

// Config carries the node endpoint and the master wallet identity.
type Config struct {
	FullNodeURL      string
	TokenContract    string
	MasterAddress    string
	MasterPrivateKey string
	FeeLimitSun      int64
	RequestTimeout   time.Duration
	Retry            retry.Policy
}

// Client implements ports.ChainClient against a TRON full-node HTTP API.
// Every node round-trip runs under the retry policy; a response the node
// itself rejects (bad signature, reverted contract) is terminal and is not
// retried.
type Client struct {
	baseURL       string
	http          *http.Client
	tokenContract string
	masterAddress string
	masterKey     *ecdsa.PrivateKey
	feeLimit      int64
	retry         retry.Policy
	log           zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	if cfg.FullNodeURL == "" {
		return nil, fmt.Errorf("full node URL is required")
	}
	if _, err := decodeBase58Check(cfg.TokenContract); err != nil {
		return nil, fmt.Errorf("token contract address: %w", err)
	}
	masterKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.MasterPrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("master private key: %w", err)
	}
	masterAddress := cfg.MasterAddress
	if masterAddress == "" {
		masterAddress = addressFromKey(masterKey)
	} else if _, err := decodeBase58Check(masterAddress); err != nil {
		return nil, fmt.Errorf("master address: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	policy := cfg.Retry
	if policy.MaxAttempts <= 0 {
		policy = retry.Default
	}
	feeLimit := cfg.FeeLimitSun
	if feeLimit <= 0 {
		feeLimit = 100 * sunPerUnit
	}

	return &Client{
		baseURL:       strings.TrimRight(cfg.FullNodeURL, "/"),
		http:          &http.Client{Timeout: timeout},
		tokenContract: cfg.TokenContract,
		masterAddress: masterAddress,
		masterKey:     masterKey,
		feeLimit:      feeLimit,
		retry:         policy,
		log:           log,
	}, nil
}

// GetNativeBalance returns the TRX balance in whole units. An account the
// node has never seen reports zero.
func (c *Client) GetNativeBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	if _, err := decodeBase58Check(address); err != nil {
		return decimal.Zero, apperror.ErrInvalidAddress(address)
	}

	var resp getAccountResponse
	err := c.retry.Do(ctx, "getaccount", func() error {
		resp = getAccountResponse{}
		return c.post(ctx, "/wallet/getaccount", getAccountRequest{Address: address, Visible: true}, &resp)
	})
	if err != nil {
		return decimal.Zero, apperror.ErrChainUnavailable("getaccount", err)
	}
	return fromSun(big.NewInt(resp.Balance)), nil
}

// GetTokenBalance calls balanceOf(address) as a constant contract trigger.
func (c *Client) GetTokenBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	payload, err := decodeBase58Check(address)
	if err != nil {
		return decimal.Zero, apperror.ErrInvalidAddress(address)
	}
	var param [32]byte
	copy(param[12:], payload[1:])

	req := triggerContractRequest{
		OwnerAddress:     address,
		ContractAddress:  c.tokenContract,
		FunctionSelector: "balanceOf(address)",
		Parameter:        hex.EncodeToString(param[:]),
		Visible:          true,
	}

	var resp triggerConstantResponse
	err = c.retry.Do(ctx, "triggerconstantcontract", func() error {
		resp = triggerConstantResponse{}
		return c.post(ctx, "/wallet/triggerconstantcontract", req, &resp)
	})
	if err != nil {
		return decimal.Zero, apperror.ErrChainUnavailable("triggerconstantcontract", err)
	}
	if !resp.Result.Result {
		return decimal.Zero, apperror.ErrChainUnavailable("triggerconstantcontract",
			fmt.Errorf("node rejected call: %s", decodeNodeMessage(resp.Result.Message)))
	}
	if len(resp.ConstantResult) == 0 {
		return decimal.Zero, apperror.ErrChainUnavailable("triggerconstantcontract",
			fmt.Errorf("empty constant_result"))
	}

	raw, ok := new(big.Int).SetString(strings.TrimPrefix(resp.ConstantResult[0], "0x"), 16)
	if !ok {
		return decimal.Zero, apperror.ErrChainUnavailable("triggerconstantcontract",
			fmt.Errorf("malformed balance word %q", resp.ConstantResult[0]))
	}
	return fromSun(raw), nil
}

// FundNative sends TRX from the master operational wallet and returns the
// transaction ID.
func (c *Client) FundNative(ctx context.Context, toAddress string, amount decimal.Decimal) (string, error) {
	return c.sendNative(ctx, c.masterKey, c.masterAddress, toAddress, amount)
}

// TransferNative sweeps TRX from the wallet behind privateKey to the master
// collection address.
func (c *Client) TransferNative(ctx context.Context, privateKey string, amount decimal.Decimal) (string, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return "", apperror.ErrInvalidKeyMaterial(err)
	}
	return c.sendNative(ctx, key, addressFromKey(key), c.masterAddress, amount)
}

// TransferToken sweeps the token amount to the master collection address via
// transfer(address,uint256). The amount is floored to integer minor units.
func (c *Client) TransferToken(ctx context.Context, privateKey string, amount decimal.Decimal) (string, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return "", apperror.ErrInvalidKeyMaterial(err)
	}
	ownerAddress := addressFromKey(key)

	sun := toSun(amount)
	if sun <= 0 {
		return "", apperror.ErrTransactionRejected("token amount rounds to zero minor units")
	}
	parameter, err := encodeTransferParams(c.masterAddress, sun)
	if err != nil {
		return "", apperror.ErrInvalidAddress(c.masterAddress)
	}

	req := triggerContractRequest{
		OwnerAddress:     ownerAddress,
		ContractAddress:  c.tokenContract,
		FunctionSelector: "transfer(address,uint256)",
		Parameter:        parameter,
		FeeLimit:         c.feeLimit,
		Visible:          true,
	}

	var resp triggerContractResponse
	err = c.retry.Do(ctx, "triggersmartcontract", func() error {
		resp = triggerContractResponse{}
		return c.post(ctx, "/wallet/triggersmartcontract", req, &resp)
	})
	if err != nil {
		return "", apperror.ErrChainUnavailable("triggersmartcontract", err)
	}
	if !resp.Result.Result || resp.Transaction == nil {
		return "", apperror.ErrTransactionRejected(decodeNodeMessage(resp.Result.Message))
	}

	return c.signAndBroadcast(ctx, resp.Transaction, key)
}

func (c *Client) sendNative(ctx context.Context, key *ecdsa.PrivateKey, from, to string, amount decimal.Decimal) (string, error) {
	if _, err := decodeBase58Check(to); err != nil {
		return "", apperror.ErrInvalidAddress(to)
	}
	sun := toSun(amount)
	if sun <= 0 {
		return "", apperror.ErrTransactionRejected("native amount rounds to zero sun")
	}

	req := createTransactionRequest{
		OwnerAddress: from,
		ToAddress:    to,
		Amount:       sun,
		Visible:      true,
	}

	var tx transaction
	err := c.retry.Do(ctx, "createtransaction", func() error {
		tx = transaction{}
		return c.post(ctx, "/wallet/createtransaction", req, &tx)
	})
	if err != nil {
		return "", apperror.ErrChainUnavailable("createtransaction", err)
	}
	if tx.Error != "" {
		return "", apperror.ErrTransactionRejected(tx.Error)
	}
	if tx.TxID == "" {
		return "", apperror.ErrChainUnavailable("createtransaction", fmt.Errorf("node returned no transaction"))
	}

	return c.signAndBroadcast(ctx, &tx, key)
}

// signAndBroadcast signs the node-built transaction ID (the SHA-256 of its
// raw data) and submits it.
func (c *Client) signAndBroadcast(ctx context.Context, tx *transaction, key *ecdsa.PrivateKey) (string, error) {
	hash, err := hex.DecodeString(tx.TxID)
	if err != nil || len(hash) != 32 {
		return "", apperror.ErrChainUnavailable("sign", fmt.Errorf("malformed transaction id %q", tx.TxID))
	}
	sig, err := crypto.Sign(hash, key)
	if err != nil {
		return "", apperror.ErrChainUnavailable("sign", err)
	}
	tx.Signature = []string{hex.EncodeToString(sig)}

	var resp broadcastResponse
	err = c.retry.Do(ctx, "broadcasttransaction", func() error {
		resp = broadcastResponse{}
		return c.post(ctx, "/wallet/broadcasttransaction", tx, &resp)
	})
	if err != nil {
		return "", apperror.ErrChainUnavailable("broadcasttransaction", err)
	}
	if !resp.Result {
		return "", apperror.ErrTransactionRejected(
			fmt.Sprintf("%s: %s", resp.Code, decodeNodeMessage(resp.Message)))
	}

	c.log.Debug().Str("tx_id", tx.TxID).Msg("transaction broadcast accepted")
	return tx.TxID, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("node returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeNodeMessage unwraps the hex-encoded message field the node attaches
// to rejections.
func decodeNodeMessage(message string) string {
	if raw, err := hex.DecodeString(message); err == nil && len(raw) > 0 {
		return string(raw)
	}
	return message
}

func toSun(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(sunPerUnit)).IntPart()
}

func fromSun(sun *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(sun, -6)
}
