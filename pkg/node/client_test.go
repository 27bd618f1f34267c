// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package node

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"gitlab.com/accumulatenetwork/moveclient/pkg/txn"
)

var alice = move.MustParseAddress("0xbc20b78cf1a1c79c1e9c50a8771d2184ede92d659672f3e89ac899165ebf471f")

func newServer(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	s := httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return NewClient(s.URL + "/v1/")
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func signedTransfer() *txn.SignedTransaction {
	return &txn.SignedTransaction{
		Raw: txn.RawTransaction{
			Sender:  alice,
			Payload: txn.NewEntryFunction(move.MustParseFunctionID("0x1::coin::transfer"), nil, nil),
			ChainID: 4,
		},
		Authenticator: txn.Authenticator{Ed25519: &txn.Ed25519Authenticator{
			PublicKey: make([]byte, 32),
			Signature: make([]byte, 64),
		}},
	}
}

func TestQueries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/{$}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"chain_id":4,"epoch":"2","ledger_version":"100","ledger_timestamp":"1700000000000000","node_role":"full_node","block_height":"50"}`)
	})
	mux.HandleFunc("GET /v1/accounts/{addr}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("addr") != alice.String() {
			writeJSON(w, 404, `{"message":"Account not found","error_code":"account_not_found"}`)
			return
		}
		writeJSON(w, 200, `{"sequence_number":"12","authentication_key":"0x00"}`)
	})
	mux.HandleFunc("GET /v1/accounts/{addr}/resource/{type}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("type") != "0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin>" {
			writeJSON(w, 404, `{"message":"Resource not found","error_code":"resource_not_found"}`)
			return
		}
		writeJSON(w, 200, `{"type":"0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin>","data":{"coin":{"value":"10000"}}}`)
	})
	mux.HandleFunc("GET /v1/estimate_gas_price", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"gas_estimate":150}`)
	})
	c := newServer(t, mux)
	ctx := context.Background()

	id, err := c.ChainID(ctx)
	require.NoError(t, err)
	require.Equal(t, uint8(4), id)

	seq, err := c.SequenceNumber(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, uint64(12), seq)

	// A missing account has sequence number zero
	seq, err = c.SequenceNumber(ctx, move.AddressOne)
	require.NoError(t, err)
	require.Zero(t, seq)

	res, err := c.Resource(ctx, alice, "0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin>")
	require.NoError(t, err)
	require.JSONEq(t, `{"coin":{"value":"10000"}}`, string(res.Data))

	_, err = c.Resource(ctx, alice, "0x1::coin::CoinStore<0xcafe::moon_coin::MoonCoin>")
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.NotFound))
	require.True(t, IsNotFound(err, ErrCodeResourceNotFound))
	require.False(t, IsNotFound(err, ErrCodeAccountNotFound))

	gas, err := c.EstimateGasPrice(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(150), gas.GasEstimate)
}

func TestSubmit(t *testing.T) {
	var body []byte
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/transactions", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, ContentTypeSignedTransaction, r.Header.Get("Content-Type"))
		require.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "moveclient"))
		body, _ = io.ReadAll(r.Body)
		writeJSON(w, 202, `{"hash":"0xabc","sender":"`+alice.String()+`","sequence_number":"0"}`)
	})
	c := newServer(t, mux)

	pending, err := c.Submit(context.Background(), signedTransfer())
	require.NoError(t, err)
	require.Equal(t, "0xabc", pending.Hash)

	expect, err := txn.EncodeSigned(signedTransfer())
	require.NoError(t, err)
	require.Equal(t, expect, body)
}

func TestSubmitRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/transactions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 400, `{"message":"Invalid transaction: Type: Validation Code: SEQUENCE_NUMBER_TOO_OLD","error_code":"vm_error","vm_error_code":3}`)
	})
	c := newServer(t, mux)

	_, err := c.Submit(context.Background(), signedTransfer())
	require.Error(t, err)
	require.Equal(t, errors.Rejected, errors.Code(err))
	require.ErrorContains(t, err, "Invalid transaction: Type: Validation Code: SEQUENCE_NUMBER_TOO_OLD")
	require.Equal(t, ErrCodeVMError, ErrorCode(err))

	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, uint64(3), *e.VMErrorCode)
}

func TestServerErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/transactions/by_hash/{hash}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("hash") {
		case "0x1":
			http.Error(w, "upstream unavailable", 503)
		case "0x2":
			writeJSON(w, 200, `{"type":`)
		case "0x4":
			writeJSON(w, 200, `null`)
		default:
			writeJSON(w, 404, `{"message":"Transaction not found","error_code":"transaction_not_found"}`)
		}
	})
	c := newServer(t, mux)
	ctx := context.Background()

	_, err := c.TransactionByHash(ctx, "0x1")
	require.Equal(t, errors.NetworkError, errors.Code(err))
	require.ErrorContains(t, err, "upstream unavailable")

	_, err = c.TransactionByHash(ctx, "0x2")
	require.Equal(t, errors.EncodingError, errors.Code(err))

	_, err = c.TransactionByHash(ctx, "0x3")
	require.True(t, IsNotFound(err, ErrCodeTransactionNotFound))

	res, err := c.TransactionByHash(ctx, "0x4")
	require.Nil(t, res)
	require.Equal(t, errors.EncodingError, errors.Code(err))
}

func TestSubmitNullResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/transactions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 202, `null`)
	})
	c := newServer(t, mux)

	pending, err := c.Submit(context.Background(), signedTransfer())
	require.Nil(t, pending)
	require.Equal(t, errors.EncodingError, errors.Code(err))
}

func TestTransportFailure(t *testing.T) {
	s := httptest.NewServer(http.NewServeMux())
	c := NewClient(s.URL)
	s.Close()

	_, err := c.LedgerInfo(context.Background())
	require.Error(t, err)
	require.Equal(t, errors.NetworkError, errors.Code(err))

	_, err = c.Submit(context.Background(), signedTransfer())
	require.Equal(t, errors.NetworkError, errors.Code(err))
}

func TestCanceledContext(t *testing.T) {
	mux := http.NewServeMux()
	c := newServer(t, mux)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.LedgerInfo(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
