// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package node

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gitlab.com/accumulatenetwork/moveclient"
	"gitlab.com/accumulatenetwork/moveclient/internal/logging"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"gitlab.com/accumulatenetwork/moveclient/pkg/txn"
	"golang.org/x/exp/slog"
)

// ContentTypeSignedTransaction is the content type of a BCS-encoded signed
// transaction.
const ContentTypeSignedTransaction = "application/x.aptos.signed_transaction+bcs"

const maxResponseSize = 16 << 20

// Querier reads node state.
type Querier interface {
	LedgerInfo(ctx context.Context) (*LedgerInfo, error)
	Account(ctx context.Context, address move.Address) (*AccountData, error)
	TransactionByHash(ctx context.Context, hash string) (*Transaction, error)
	Resource(ctx context.Context, address move.Address, resourceType string) (*Resource, error)
	EstimateGasPrice(ctx context.Context) (*GasEstimate, error)
}

// Submitter sends transactions to the node.
type Submitter interface {
	Submit(ctx context.Context, signed *txn.SignedTransaction) (*PendingTransaction, error)
	Simulate(ctx context.Context, signed *txn.SignedTransaction) ([]*Transaction, error)
}

// Connection is everything the client needs from a node. It is stateless
// request/response.
type Connection interface {
	Querier
	Submitter
}

// Client is a REST client for a full node.
type Client struct {
	Client http.Client
	Server string
	Logger *slog.Logger
}

var _ Connection = (*Client)(nil)

// NewClient creates a new client with the default timeout. server is the
// base URL of the REST API, for example http://localhost:8080/v1.
func NewClient(server string) *Client {
	c := new(Client)
	c.Client.Timeout = 15 * time.Second
	c.Server = strings.TrimSuffix(server, "/")
	return c
}

func (c *Client) LedgerInfo(ctx context.Context) (*LedgerInfo, error) {
	return getAs[LedgerInfo](c, ctx, "/")
}

func (c *Client) Account(ctx context.Context, address move.Address) (*AccountData, error) {
	return getAs[AccountData](c, ctx, "/accounts/"+address.String())
}

func (c *Client) TransactionByHash(ctx context.Context, hash string) (*Transaction, error) {
	return getAs[Transaction](c, ctx, "/transactions/by_hash/"+url.PathEscape(hash))
}

func (c *Client) Resource(ctx context.Context, address move.Address, resourceType string) (*Resource, error) {
	return getAs[Resource](c, ctx, "/accounts/"+address.String()+"/resource/"+url.PathEscape(resourceType))
}

func (c *Client) EstimateGasPrice(ctx context.Context) (*GasEstimate, error) {
	return getAs[GasEstimate](c, ctx, "/estimate_gas_price")
}

// Submit submits a signed transaction. A 4xx response means the node
// rejected the transaction and is reported as [errors.Rejected] with the
// node's message.
func (c *Client) Submit(ctx context.Context, signed *txn.SignedTransaction) (*PendingTransaction, error) {
	body, err := txn.EncodeSigned(signed)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	var pending *PendingTransaction
	err = c.do(ctx, http.MethodPost, "/transactions", body, &pending)
	if err != nil {
		return nil, rejected(err)
	}
	if pending == nil {
		return nil, errors.EncodingError.With("POST /transactions: empty response")
	}
	return pending, nil
}

// Simulate executes a transaction without committing it. The transaction
// must carry a zeroed signature.
func (c *Client) Simulate(ctx context.Context, signed *txn.SignedTransaction) ([]*Transaction, error) {
	body, err := txn.EncodeSigned(signed)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	var results []*Transaction
	err = c.do(ctx, http.MethodPost, "/transactions/simulate", body, &results)
	if err != nil {
		return nil, rejected(err)
	}
	return results, nil
}

// SequenceNumber returns the account's sequence number. An account that
// does not exist yet has sequence number zero.
func (c *Client) SequenceNumber(ctx context.Context, address move.Address) (uint64, error) {
	return SequenceNumber(ctx, c, address)
}

// ChainID returns the chain id from the ledger info.
func (c *Client) ChainID(ctx context.Context) (uint8, error) {
	info, err := c.LedgerInfo(ctx)
	if err != nil {
		return 0, err
	}
	return info.ChainID, nil
}

// SequenceNumber reads an account's sequence number from any querier.
func SequenceNumber(ctx context.Context, q Querier, address move.Address) (uint64, error) {
	acct, err := q.Account(ctx, address)
	switch {
	case err == nil:
		return uint64(acct.SequenceNumber), nil
	case IsNotFound(err, ErrCodeAccountNotFound):
		return 0, nil
	default:
		return 0, err
	}
}

func rejected(err error) error {
	var e *Error
	if errors.As(err, &e) && e.HTTPStatus >= 400 && e.HTTPStatus < 500 {
		return errors.Rejected.WithCauseAndFormat(err, "transaction rejected: %s", e.Message)
	}
	return err
}

func getAs[T any](c *Client, ctx context.Context, path string) (*T, error) {
	var v *T
	err := c.do(ctx, http.MethodGet, path, nil, &v)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.EncodingError.WithFormat("GET %s: empty response", path)
	}
	return v, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, resp any) error {
	logger := logging.OrDiscard(c.Logger)

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Server+path, rd)
	if err != nil {
		return errors.BadRequest.WithFormat("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", moveclient.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", ContentTypeSignedTransaction)
	}

	start := time.Now()
	res, err := c.Client.Do(req)
	if err != nil {
		logger.DebugContext(ctx, "Request failed", "module", "node", "method", method, "path", path, "error", err)
		return errors.NetworkError.WithFormat("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return errors.NetworkError.WithFormat("%s %s: read response: %w", method, path, err)
	}
	logger.DebugContext(ctx, "Request", "module", "node", "method", method, "path", path, "status", res.StatusCode, "duration", time.Since(start))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		e := &Error{HTTPStatus: res.StatusCode}
		if json.Unmarshal(b, e) != nil || e.Message == "" {
			e.Message = strings.TrimSpace(string(b))
			if e.Message == "" {
				e.Message = http.StatusText(res.StatusCode)
			}
		}
		return statusFor(res.StatusCode).WithCauseAndFormat(e, "%s %s: %v", method, path, e)
	}

	err = json.Unmarshal(b, resp)
	if err != nil {
		return errors.EncodingError.WithFormat("%s %s: unmarshal response: %w", method, path, err)
	}
	return nil
}
