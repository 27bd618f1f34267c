// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package node

import (
	"encoding/json"

	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
)

// Transaction types reported by the node.
const (
	TypePendingTransaction = "pending_transaction"
	TypeUserTransaction    = "user_transaction"
)

// Node error codes that callers branch on.
const (
	ErrCodeAccountNotFound     = "account_not_found"
	ErrCodeResourceNotFound    = "resource_not_found"
	ErrCodeTransactionNotFound = "transaction_not_found"
	ErrCodeInvalidInput        = "invalid_input"
	ErrCodeVMError             = "vm_error"
)

// LedgerInfo is the response to GET /.
type LedgerInfo struct {
	ChainID             uint8    `json:"chain_id"`
	Epoch               move.U64 `json:"epoch"`
	LedgerVersion       move.U64 `json:"ledger_version"`
	OldestLedgerVersion move.U64 `json:"oldest_ledger_version"`
	LedgerTimestamp     move.U64 `json:"ledger_timestamp"`
	NodeRole            string   `json:"node_role"`
	BlockHeight         move.U64 `json:"block_height"`
}

// AccountData is the response to GET /accounts/{address}.
type AccountData struct {
	SequenceNumber    move.U64 `json:"sequence_number"`
	AuthenticationKey string   `json:"authentication_key"`
}

// PendingTransaction is the response to a submission.
type PendingTransaction struct {
	Hash                    string          `json:"hash"`
	Sender                  string          `json:"sender"`
	SequenceNumber          move.U64        `json:"sequence_number"`
	MaxGasAmount            move.U64        `json:"max_gas_amount"`
	GasUnitPrice            move.U64        `json:"gas_unit_price"`
	ExpirationTimestampSecs move.U64        `json:"expiration_timestamp_secs"`
	Payload                 json.RawMessage `json:"payload,omitempty"`
}

// Transaction is a transaction as reported by GET /transactions/by_hash.
// Committed fields are empty while the transaction is pending.
type Transaction struct {
	Type                    string          `json:"type"`
	Hash                    string          `json:"hash"`
	Sender                  string          `json:"sender,omitempty"`
	SequenceNumber          move.U64        `json:"sequence_number"`
	MaxGasAmount            move.U64        `json:"max_gas_amount"`
	GasUnitPrice            move.U64        `json:"gas_unit_price"`
	ExpirationTimestampSecs move.U64        `json:"expiration_timestamp_secs"`
	Version                 move.U64        `json:"version,omitempty"`
	Success                 bool            `json:"success"`
	VMStatus                string          `json:"vm_status,omitempty"`
	GasUsed                 move.U64        `json:"gas_used,omitempty"`
	Timestamp               move.U64        `json:"timestamp,omitempty"`
	Payload                 json.RawMessage `json:"payload,omitempty"`
	Events                  json.RawMessage `json:"events,omitempty"`
}

// IsPending returns true if the transaction has not been committed.
func (t *Transaction) IsPending() bool {
	return t.Type == TypePendingTransaction
}

// Resource is the response to GET /accounts/{address}/resource/{type}.
type Resource struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// GasEstimate is the response to GET /estimate_gas_price.
type GasEstimate struct {
	DeprioritizedGasEstimate uint64 `json:"deprioritized_gas_estimate,omitempty"`
	GasEstimate              uint64 `json:"gas_estimate"`
	PrioritizedGasEstimate   uint64 `json:"prioritized_gas_estimate,omitempty"`
}
