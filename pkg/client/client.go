// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package client drives transactions through their lifecycle: build, sign,
// submit, and wait for finality. It also reads resources.
package client

import (
	"context"
	"time"

	"gitlab.com/accumulatenetwork/moveclient/internal/logging"
	"gitlab.com/accumulatenetwork/moveclient/pkg/build"
	"gitlab.com/accumulatenetwork/moveclient/pkg/client/signing"
	"gitlab.com/accumulatenetwork/moveclient/pkg/journal"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"gitlab.com/accumulatenetwork/moveclient/pkg/node"
	"gitlab.com/accumulatenetwork/moveclient/pkg/resource"
	"gitlab.com/accumulatenetwork/moveclient/pkg/txn"
	"golang.org/x/exp/slog"
)

const (
	DefaultPollInterval = 250 * time.Millisecond
	DefaultTimeout      = 20 * time.Second
	DefaultMaxRetries   = 5
)

// Sender is an account that can sign for itself.
type Sender interface {
	signing.Signer
	Address() move.Address
}

// Options configures a client. Zero values select the defaults.
type Options struct {
	// Expiration is the window between building and expiring a transaction.
	Expiration time.Duration

	MaxGasAmount uint64
	GasUnitPrice uint64

	// PollInterval is the time between status queries.
	PollInterval time.Duration

	// Timeout bounds how long Wait polls. The caller's context may shorten
	// it.
	Timeout time.Duration

	// MaxRetries bounds consecutive retries of a failed status query.
	MaxRetries uint64

	// ChainID, if set, is used instead of querying the node.
	ChainID uint8

	Journal journal.Journal
	Logger  *slog.Logger
}

// Client is the transaction client. It is safe for concurrent use.
type Client struct {
	node    node.Connection
	opts    Options
	journal journal.Journal
	logger  *slog.Logger
	seq     *sequencer
	reader  *resource.Reader
}

// New returns a client that talks to the node.
func New(conn node.Connection, opts Options) *Client {
	if opts.Expiration <= 0 {
		opts.Expiration = build.DefaultExpiration
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = DefaultMaxRetries
	}

	c := new(Client)
	c.node = conn
	c.opts = opts
	c.journal = opts.Journal
	if c.journal == nil {
		c.journal = journal.NewMemory()
	}
	c.logger = logging.OrDiscard(opts.Logger).With("module", "client")
	c.seq = newSequencer(conn, opts.ChainID)
	c.reader = &resource.Reader{Node: conn, Logger: opts.Logger}
	return c
}

// Node returns the node connection.
func (c *Client) Node() node.Connection { return c.node }

// Journal returns the submission journal.
func (c *Client) Journal() journal.Journal { return c.journal }

// Transaction returns a transaction builder with the client's gas and
// expiration settings.
func (c *Client) Transaction() build.TransactionBuilder {
	b := build.Transaction().ExpiresIn(c.opts.Expiration)
	if c.opts.MaxGasAmount > 0 {
		b = b.WithMaxGas(c.opts.MaxGasAmount)
	}
	if c.opts.GasUnitPrice > 0 {
		b = b.WithGasPrice(c.opts.GasUnitPrice)
	}
	return b
}

// Call returns a transaction builder for an entry function call.
func (c *Client) Call(fn any) build.TransactionBuilder {
	return c.Transaction().Call(fn)
}

// Execute builds, signs, and submits the transaction, then waits for its
// outcome. The returned outcome is never nil. The error is nil only if the
// transaction was confirmed.
func (c *Client) Execute(ctx context.Context, sender Sender, b build.TransactionBuilder) (*Outcome, error) {
	out, err := c.SubmitTransaction(ctx, sender, b)
	if err != nil {
		return out, err
	}
	return c.Wait(ctx, out.Hash)
}

// Reader returns the resource reader.
func (c *Client) Reader() *resource.Reader { return c.reader }

// Read reads a resource into v. See [resource.Reader.Read].
func (c *Client) Read(ctx context.Context, account move.Address, path string, v any) (bool, error) {
	return c.reader.Read(ctx, account, path, v)
}

// GasPrice returns the node's gas price estimate.
func (c *Client) GasPrice(ctx context.Context) (uint64, error) {
	est, err := c.node.EstimateGasPrice(ctx)
	if err != nil {
		return 0, err
	}
	return est.GasEstimate, nil
}

// Outcome is the result of a transaction.
type Outcome struct {
	Hash           string
	Sender         move.Address
	SequenceNumber uint64
	State          txn.State

	// Transaction is the committed transaction, if it was found.
	Transaction *node.Transaction

	// VMStatus is the execution status reported by the node.
	VMStatus string

	// Abort is the parsed abort code, for transactions that aborted in
	// Move code.
	Abort *AbortCode

	// Err is the error that ended the lifecycle, if any.
	Err error
}

func (o *Outcome) fail(state txn.State, err error) (*Outcome, error) {
	o.State = state
	o.Err = err
	return o, err
}
