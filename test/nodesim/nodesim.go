// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package nodesim is an in-process node for tests. It serves the REST API
// the client consumes, verifies signatures and sequence numbers, and
// executes the coin, message, payment channel, and package publishing entry
// functions against an in-memory ledger.
//
// Transactions execute when they are accepted. They are reported as pending
// for a configurable number of status queries before they are reported as
// committed. A sequence number ahead of the account's is rejected rather
// than parked.
package nodesim

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"gitlab.com/accumulatenetwork/moveclient/pkg/client/signing"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"gitlab.com/accumulatenetwork/moveclient/pkg/node"
	"gitlab.com/accumulatenetwork/moveclient/pkg/txn"
)

const (
	DefaultChainID  = 4
	DefaultGasPrice = 100
	GasUsed         = 10
)

// Simulator is a simulated node.
type Simulator struct {
	chainID      uint8
	pendingPolls int

	mu          sync.Mutex
	server      *httptest.Server
	version     uint64
	accounts    map[move.Address]*accountState
	txns        map[string]*entry
	hold        bool
	failPolls   int
	queries     map[string]int
	submissions int
}

type accountState struct {
	seq       uint64
	resources map[string]json.RawMessage
}

type entry struct {
	tx    node.Transaction
	polls int
}

// Option configures a simulator.
type Option func(*Simulator)

// WithChainID sets the chain id.
func WithChainID(id uint8) Option {
	return func(s *Simulator) { s.chainID = id }
}

// WithPendingPolls sets how many status queries report a transaction as
// pending before it is reported as committed.
func WithPendingPolls(n int) Option {
	return func(s *Simulator) { s.pendingPolls = n }
}

// New starts a simulator. It is stopped when the test completes.
func New(t testing.TB, opts ...Option) *Simulator {
	s := new(Simulator)
	s.chainID = DefaultChainID
	s.pendingPolls = 1
	s.accounts = map[move.Address]*accountState{}
	s.txns = map[string]*entry{}
	s.queries = map[string]int{}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/{$}", s.getLedgerInfo)
	mux.HandleFunc("GET /v1/accounts/{addr}", s.getAccount)
	mux.HandleFunc("GET /v1/accounts/{addr}/resource/{type}", s.getResource)
	mux.HandleFunc("POST /v1/transactions", s.postTransaction)
	mux.HandleFunc("POST /v1/transactions/simulate", s.postSimulate)
	mux.HandleFunc("GET /v1/transactions/by_hash/{hash}", s.getTransaction)
	mux.HandleFunc("GET /v1/estimate_gas_price", s.getGasEstimate)

	s.server = httptest.NewServer(mux)
	t.Cleanup(s.server.Close)
	return s
}

// URL returns the base URL of the API.
func (s *Simulator) URL() string { return s.server.URL + "/v1" }

// Client returns a node client for the simulator.
func (s *Simulator) Client() *node.Client { return node.NewClient(s.URL()) }

// ChainID returns the chain id.
func (s *Simulator) ChainID() uint8 { return s.chainID }

// Hold stops or resumes committing transactions. Held transactions stay
// pending.
func (s *Simulator) Hold(hold bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hold = hold
}

// FailPolls makes the next n status queries fail with a server error.
func (s *Simulator) FailPolls(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPolls = n
}

// Queries returns the number of status queries for the hash.
func (s *Simulator) Queries(hash string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries[strings.ToLower(hash)]
}

// Submissions returns the number of submissions received, including
// rejected ones.
func (s *Simulator) Submissions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submissions
}

// Forget drops a transaction, as if it were evicted from the mempool.
func (s *Simulator) Forget(hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.txns, strings.ToLower(hash))
}

// SequenceNumber returns the account's sequence number.
func (s *Simulator) SequenceNumber(addr move.Address) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[addr]; ok {
		return a.seq
	}
	return 0
}

// Fund creates the account's coin store if needed and adds amount to it.
func (s *Simulator) Fund(addr move.Address, coinType move.TypeTag, amount uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := ledger(s.accounts)
	store, _ := l.coinStore(addr, coinType)
	store.Coin.Value += move.U64(amount)
	l.putCoinStore(addr, coinType, store)
}

// Balance returns the account's coin balance and whether it has a coin
// store.
func (s *Simulator) Balance(addr move.Address, coinType move.TypeTag) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	store, ok := ledger(s.accounts).coinStore(addr, coinType)
	return uint64(store.Coin.Value), ok
}

func (s *Simulator) getLedgerInfo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, node.LedgerInfo{
		ChainID:         s.chainID,
		LedgerVersion:   move.U64(s.version),
		LedgerTimestamp: move.U64(time.Now().UnixMicro()),
		NodeRole:        "full_node",
		BlockHeight:     move.U64(s.version),
	})
}

func (s *Simulator) getAccount(w http.ResponseWriter, r *http.Request) {
	addr, ok := pathAddress(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[addr]
	if !ok {
		writeError(w, http.StatusNotFound, node.ErrCodeAccountNotFound, "Account not found by Address(%v)", addr)
		return
	}
	writeJSON(w, http.StatusOK, node.AccountData{
		SequenceNumber:    move.U64(a.seq),
		AuthenticationKey: addr.StringLong(),
	})
}

func (s *Simulator) getResource(w http.ResponseWriter, r *http.Request) {
	addr, ok := pathAddress(w, r)
	if !ok {
		return
	}
	tag, err := move.ParseStructTag(r.PathValue("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, node.ErrCodeInvalidInput, "invalid resource type: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[addr]
	if !ok {
		writeError(w, http.StatusNotFound, node.ErrCodeAccountNotFound, "Account not found by Address(%v)", addr)
		return
	}
	data, ok := a.resources[tag.String()]
	if !ok {
		writeError(w, http.StatusNotFound, node.ErrCodeResourceNotFound, "Resource not found by Address(%v), Struct tag(%v)", addr, tag)
		return
	}
	writeJSON(w, http.StatusOK, node.Resource{Type: tag.String(), Data: data})
}

func (s *Simulator) getGasEstimate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, node.GasEstimate{
		DeprioritizedGasEstimate: DefaultGasPrice,
		GasEstimate:              DefaultGasPrice,
		PrioritizedGasEstimate:   DefaultGasPrice * 2,
	})
}

func (s *Simulator) postTransaction(w http.ResponseWriter, r *http.Request) {
	signed, ok := readSigned(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions++

	if err := signing.Verify(signed); err != nil {
		writeVMError(w, 1, "INVALID_SIGNATURE")
		return
	}
	if !s.validate(w, signed) {
		return
	}

	hash, err := txn.Hash(signed)
	if err != nil {
		writeError(w, http.StatusBadRequest, node.ErrCodeInvalidInput, "%v", err)
		return
	}

	tx := execute(ledger(s.accounts), signed)
	tx.Hash = txn.HashString(hash)
	s.version++
	tx.Version = move.U64(s.version)
	s.txns[tx.Hash] = &entry{tx: tx}

	writeJSON(w, http.StatusAccepted, node.PendingTransaction{
		Hash:                    tx.Hash,
		Sender:                  tx.Sender,
		SequenceNumber:          tx.SequenceNumber,
		MaxGasAmount:            tx.MaxGasAmount,
		GasUnitPrice:            tx.GasUnitPrice,
		ExpirationTimestampSecs: tx.ExpirationTimestampSecs,
	})
}

func (s *Simulator) postSimulate(w http.ResponseWriter, r *http.Request) {
	signed, ok := readSigned(w, r)
	if !ok {
		return
	}

	auth := signed.Authenticator.Ed25519
	if auth == nil || signing.Verify(signed) == nil {
		writeError(w, http.StatusBadRequest, node.ErrCodeInvalidInput, "Simulated transactions must not have a valid signature")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.validate(w, signed) {
		return
	}

	tx := execute(ledger(s.accounts).clone(), signed)
	tx.Type = node.TypeUserTransaction
	writeJSON(w, http.StatusOK, []node.Transaction{tx})
}

func (s *Simulator) getTransaction(w http.ResponseWriter, r *http.Request) {
	hash := strings.ToLower(r.PathValue("hash"))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries[hash]++

	if s.failPolls > 0 {
		s.failPolls--
		writeError(w, http.StatusServiceUnavailable, "internal_error", "service unavailable")
		return
	}

	e, ok := s.txns[hash]
	if !ok {
		writeError(w, http.StatusNotFound, node.ErrCodeTransactionNotFound, "Transaction not found by Transaction hash(%s)", hash)
		return
	}

	tx := e.tx
	if s.hold || e.polls < s.pendingPolls {
		e.polls++
		tx = node.Transaction{
			Type:                    node.TypePendingTransaction,
			Hash:                    tx.Hash,
			Sender:                  tx.Sender,
			SequenceNumber:          tx.SequenceNumber,
			MaxGasAmount:            tx.MaxGasAmount,
			GasUnitPrice:            tx.GasUnitPrice,
			ExpirationTimestampSecs: tx.ExpirationTimestampSecs,
		}
	}
	writeJSON(w, http.StatusOK, tx)
}

// validate applies the mempool's admission checks. Callers must hold the
// lock.
func (s *Simulator) validate(w http.ResponseWriter, signed *txn.SignedTransaction) bool {
	raw := &signed.Raw
	if raw.ChainID != s.chainID {
		writeVMError(w, 16, "BAD_CHAIN_ID")
		return false
	}
	if raw.ExpirationTimestampSecs <= uint64(time.Now().Unix()) {
		writeVMError(w, 6, "TRANSACTION_EXPIRED")
		return false
	}
	if raw.MaxGasAmount < GasUsed {
		writeVMError(w, 14, "MAX_GAS_UNITS_BELOW_MIN_TRANSACTION_GAS_UNITS")
		return false
	}

	var seq uint64
	if a, ok := s.accounts[raw.Sender]; ok {
		seq = a.seq
	}
	switch {
	case raw.SequenceNumber < seq:
		writeVMError(w, 3, "SEQUENCE_NUMBER_TOO_OLD")
		return false
	case raw.SequenceNumber > seq:
		writeVMError(w, 4, "SEQUENCE_NUMBER_TOO_NEW")
		return false
	}
	return true
}

func readSigned(w http.ResponseWriter, r *http.Request) (*txn.SignedTransaction, bool) {
	if ct := r.Header.Get("Content-Type"); ct != node.ContentTypeSignedTransaction {
		writeError(w, http.StatusUnsupportedMediaType, node.ErrCodeInvalidInput, "unsupported content type %q", ct)
		return nil, false
	}
	b, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, node.ErrCodeInvalidInput, "read body: %v", err)
		return nil, false
	}
	signed, err := txn.DecodeSigned(b)
	if err != nil {
		writeError(w, http.StatusBadRequest, node.ErrCodeInvalidInput, "Failed to deserialize input into SignedTransaction: %v", err)
		return nil, false
	}
	return signed, true
}

func pathAddress(w http.ResponseWriter, r *http.Request) (move.Address, bool) {
	addr, err := move.ParseAddress(r.PathValue("addr"))
	if err != nil {
		writeError(w, http.StatusBadRequest, node.ErrCodeInvalidInput, "invalid address: %v", err)
		return move.Address{}, false
	}
	return addr, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, format string, args ...any) {
	writeJSON(w, status, node.Error{Message: fmt.Sprintf(format, args...), ErrorCode: code})
}

func writeVMError(w http.ResponseWriter, code uint64, name string) {
	writeJSON(w, http.StatusBadRequest, node.Error{
		Message:     "Invalid transaction: Type: Validation Code: " + name,
		ErrorCode:   node.ErrCodeVMError,
		VMErrorCode: &code,
	})
}
