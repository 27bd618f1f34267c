// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package client

import (
	"context"
	"strings"
	"time"

	"gitlab.com/accumulatenetwork/moveclient/internal/logging"
	"gitlab.com/accumulatenetwork/moveclient/pkg/build"
	"gitlab.com/accumulatenetwork/moveclient/pkg/client/signing"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/journal"
	"gitlab.com/accumulatenetwork/moveclient/pkg/node"
	"gitlab.com/accumulatenetwork/moveclient/pkg/txn"
)

// SubmitTransaction builds the transaction for the sender, signs it, and
// submits it. It does not wait for the outcome. On success the outcome is
// SUBMITTED.
//
// The sender's lease is held from sequence allocation until the node
// accepts or rejects the transaction.
func (c *Client) SubmitTransaction(ctx context.Context, sender Sender, b build.TransactionBuilder) (*Outcome, error) {
	b = b.From(sender)
	out := &Outcome{Sender: sender.Address(), State: txn.StateBuilt}

	// Validate before touching the network
	if _, err := b.WithSequence(0).WithChainID(1).Build(); err != nil {
		return out.fail(txn.StateBuilt, err)
	}

	chainID, err := c.seq.ChainID(ctx)
	if err != nil {
		return out.fail(txn.StateBuilt, err)
	}

	lease, err := c.seq.acquire(ctx, sender.Address())
	if err != nil {
		return out.fail(txn.StateBuilt, err)
	}
	out.SequenceNumber = lease.Sequence

	raw, err := b.WithSequence(lease.Sequence).WithChainID(chainID).Build()
	if err != nil {
		lease.release()
		return out.fail(txn.StateBuilt, err)
	}

	signed, err := signing.Sign(raw, sender)
	if err != nil {
		lease.release()
		return out.fail(txn.StateBuilt, err)
	}

	out, err = c.submit(ctx, signed, out)
	switch out.State {
	case txn.StateSubmitted:
		lease.commit()
	default:
		lease.reset()
	}
	return out, err
}

// Submit submits a signed transaction. It does not allocate a sequence
// number; the caller is responsible for it.
func (c *Client) Submit(ctx context.Context, signed *txn.SignedTransaction) (*Outcome, error) {
	out := &Outcome{
		Sender:         signed.Raw.Sender,
		SequenceNumber: signed.Raw.SequenceNumber,
		State:          txn.StateBuilt,
	}
	return c.submit(ctx, signed, out)
}

func (c *Client) submit(ctx context.Context, signed *txn.SignedTransaction, out *Outcome) (*Outcome, error) {
	hash, err := txn.Hash(signed)
	if err != nil {
		return out.fail(txn.StateBuilt, err)
	}
	out.Hash = txn.HashString(hash)

	logger := c.logger.With("hash", out.Hash, "sender", out.Sender, "sequence", out.SequenceNumber)
	res, err := c.node.Submit(ctx, signed)
	if err != nil {
		state := txn.StateNetworkError
		if errors.Code(err) == errors.Rejected {
			state = txn.StateAborted
		}
		logger.InfoContext(ctx, "Submission failed", "state", state, "error", err)
		mSubmissions.WithLabelValues(state.String()).Inc()
		c.record(out, signed, state, err)
		return out.fail(state, err)
	}

	if !strings.EqualFold(res.Hash, out.Hash) {
		mHashMismatch.Inc()
		logger.WarnContext(ctx, "Node reported a different transaction hash", "node-hash", res.Hash)
		out.Hash = res.Hash
	}

	if auth := signed.Authenticator.Ed25519; auth != nil {
		logger.DebugContext(ctx, "Submitted", "public-key", logging.AsHex(auth.PublicKey))
	}
	mSubmissions.WithLabelValues(txn.StateSubmitted.String()).Inc()
	out.State = txn.StateSubmitted
	c.record(out, signed, txn.StateSubmitted, nil)
	return out, nil
}

func (c *Client) record(out *Outcome, signed *txn.SignedTransaction, state txn.State, cause error) {
	if out.Hash == "" {
		return
	}

	now := time.Now()
	e := &journal.Entry{
		Hash:           out.Hash,
		Sender:         out.Sender,
		SequenceNumber: out.SequenceNumber,
		State:          state,
		Submitted:      now,
		Updated:        now,
	}
	if signed != nil {
		e.Expiration = signed.Raw.Expiration()
		if ef := signed.Raw.Payload.EntryFunction; ef != nil {
			e.Function = ef.FunctionID().String()
		}
	} else if old, err := c.journal.Get(out.Hash); err == nil {
		e.Function = old.Function
		e.Expiration = old.Expiration
		e.Submitted = old.Submitted
	}
	if cause != nil {
		e.Error = cause.Error()
	}
	e.VMStatus = out.VMStatus

	err := c.journal.Put(e)
	if err != nil {
		c.logger.Error("Failed to record transaction", "hash", out.Hash, "error", err)
	}
}

// Simulate executes the transaction without committing it, using a zeroed
// signature, and returns the node's result. Gas used by the result is an
// estimate for the real transaction.
func (c *Client) Simulate(ctx context.Context, sender Sender, b build.TransactionBuilder) (*node.Transaction, error) {
	b = b.From(sender)
	if _, err := b.WithSequence(0).WithChainID(1).Build(); err != nil {
		return nil, err
	}

	chainID, err := c.seq.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	lease, err := c.seq.acquire(ctx, sender.Address())
	if err != nil {
		return nil, err
	}
	seq := lease.Sequence
	lease.release()

	raw, err := b.WithSequence(seq).WithChainID(chainID).Build()
	if err != nil {
		return nil, err
	}

	signed, err := new(signing.Builder).SetSigner(sender).ForSimulation().Sign(raw)
	if err != nil {
		return nil, err
	}

	results, err := c.node.Simulate(ctx, signed)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.InternalError.With("node returned no simulation result")
	}
	return results[0], nil
}
