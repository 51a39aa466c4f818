package tron

import "encoding/json"

// transaction is the full-node transaction envelope. raw_data is kept opaque
// so signing and broadcasting round-trip the node's exact encoding.
type transaction struct {
	TxID       string          `json:"txID"`
	RawData    json.RawMessage `json:"raw_data"`
	RawDataHex string          `json:"raw_data_hex"`
	Visible    bool            `json:"visible"`
	Signature  []string        `json:"signature,omitempty"`
	Error      string          `json:"Error,omitempty"`
}

type getAccountRequest struct {
	Address string `json:"address"`
	Visible bool   `json:"visible"`
}

type getAccountResponse struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

type createTransactionRequest struct {
	OwnerAddress string `json:"owner_address"`
	ToAddress    string `json:"to_address"`
	Amount       int64  `json:"amount"`
	Visible      bool   `json:"visible"`
}

type triggerContractRequest struct {
	OwnerAddress     string `json:"owner_address"`
	ContractAddress  string `json:"contract_address"`
	FunctionSelector string `json:"function_selector"`
	Parameter        string `json:"parameter"`
	FeeLimit         int64  `json:"fee_limit,omitempty"`
	Visible          bool   `json:"visible"`
}

type triggerResult struct {
	Result  bool   `json:"result"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type triggerConstantResponse struct {
	Result         triggerResult `json:"result"`
	ConstantResult []string      `json:"constant_result"`
}

type triggerContractResponse struct {
	Result      triggerResult `json:"result"`
	Transaction *transaction  `json:"transaction"`
}

type broadcastResponse struct {
	Result  bool   `json:"result"`
	TxID    string `json:"txid"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
