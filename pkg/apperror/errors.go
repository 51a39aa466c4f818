package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses on the ops
// surface and carries a stable code for log filtering.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Custodial Key Vault (VLT) ----

// ErrInvalidKeyMaterial signals that a wallet's encrypted private key could
// not be decrypted (bad hex, wrong IV, tampered ciphertext, bad padding).
// Local to one account: the orchestrator skips it and continues the batch.
func ErrInvalidKeyMaterial(err error) *AppError {
	return Wrap("VLT_001", "Invalid custodial key material", http.StatusUnprocessableEntity, err)
}

// ---- Chain Client (CHN) ----

// ErrChainUnavailable signals a chain RPC call that exhausted its retries.
func ErrChainUnavailable(op string, err error) *AppError {
	return Wrap("CHN_001", fmt.Sprintf("Chain call %s failed after retries", op), http.StatusBadGateway, err)
}

// ErrInvalidAddress signals a malformed chain address.
func ErrInvalidAddress(address string) *AppError {
	return New("CHN_002", fmt.Sprintf("Invalid chain address %q", address), http.StatusBadRequest)
}

// ErrTransactionRejected signals that the node accepted the request but
// rejected the transaction (bad contract result, broadcast failure).
func ErrTransactionRejected(reason string) *AppError {
	return New("CHN_003", fmt.Sprintf("Transaction rejected: %s", reason), http.StatusBadGateway)
}

// ---- Sweep Pipeline (SWP) ----

// ErrInsufficientGasAfterFunding signals that an account's native balance is
// still below the gas floor after a funding transfer settled. The account is
// skipped this cycle and retried on the next.
func ErrInsufficientGasAfterFunding() *AppError {
	return New("SWP_001", "Native balance below gas floor after funding", http.StatusConflict)
}

// ---- Ledger (LGR) ----

// ErrLedgerWrite signals that an account save or transaction append failed.
// When the on-chain transfer already settled this is a reconciliation gap.
func ErrLedgerWrite(err error) *AppError {
	return Wrap("LGR_001", "Ledger write failure", http.StatusInternalServerError, err)
}

// ---- Account Directory (DIR) ----

// ErrDirectoryUnavailable signals that the account listing failed; the whole
// cycle is aborted before any account is touched.
func ErrDirectoryUnavailable(err error) *AppError {
	return Wrap("DIR_001", "Account directory unavailable", http.StatusServiceUnavailable, err)
}

// ---- Ops Surface (OPS) ----

func ErrUnauthorized() *AppError {
	return New("OPS_001", "Invalid or missing operator token", http.StatusUnauthorized)
}

func ErrCycleInProgress() *AppError {
	return New("OPS_002", "A sweep cycle is already running", http.StatusConflict)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
