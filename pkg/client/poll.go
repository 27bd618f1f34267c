// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package client

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gitlab.com/accumulatenetwork/moveclient/internal/logging"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/node"
	"gitlab.com/accumulatenetwork/moveclient/pkg/txn"
)

// MaxPollQueries returns the most status queries Wait issues for the given
// interval and timeout: ceil(timeout/interval) + 1.
func MaxPollQueries(interval, timeout time.Duration) int {
	if interval <= 0 {
		return 1
	}
	n := int(timeout / interval)
	if timeout%interval != 0 {
		n++
	}
	return n + 1
}

// Wait polls the node until the transaction is committed, the client's
// timeout elapses, or ctx is done. Polling stops without any attempt to
// revoke the transaction.
//
// A committed transaction is CONFIRMED or ABORTED. If no final status is
// seen in time the outcome is TIMEOUT: the transaction may still commit and
// must not be resubmitted blindly. If status queries keep failing the
// outcome is NETWORK_ERROR, which is equally inconclusive.
func (c *Client) Wait(ctx context.Context, hash string) (*Outcome, error) {
	out := &Outcome{Hash: hash, State: txn.StateSubmitted}
	if e, err := c.journal.Get(hash); err == nil {
		out.Sender = e.Sender
		out.SequenceNumber = e.SequenceNumber
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.opts.PollInterval
	bo.MaxInterval = 8 * c.opts.PollInterval
	bo.MaxElapsedTime = 0
	retry := backoff.WithContext(backoff.WithMaxRetries(bo, c.opts.MaxRetries), ctx)

	// Attach the hash to everything logged while waiting, including node
	// queries
	ctx = logging.With(ctx, "hash", hash)
	logger := c.logger
	maxQueries := MaxPollQueries(c.opts.PollInterval, c.opts.Timeout)
	for queries := 1; ; queries++ {
		mPollQueries.Inc()
		res, err := c.node.TransactionByHash(ctx, hash)

		var wait time.Duration
		switch {
		case err == nil && !res.IsPending():
			return c.finish(ctx, out, res, start)

		case err == nil, node.IsNotFound(err, node.ErrCodeTransactionNotFound):
			// Not yet committed
			retry.Reset()
			wait = c.opts.PollInterval

		case ctx.Err() != nil:
			return c.timeout(ctx, out, start)

		case errors.Code(err) == errors.NetworkError:
			wait = retry.NextBackOff()
			if wait == backoff.Stop {
				logger.InfoContext(ctx, "Giving up on status queries", "error", err)
				return c.end(out, txn.StateNetworkError, errors.NetworkError.WithFormat("query status of %s: %w", hash, err), start)
			}
			logger.DebugContext(ctx, "Status query failed, retrying", "error", err, "wait", wait)

		default:
			return c.end(out, txn.StateNetworkError, errors.UnknownError.WithFormat("query status of %s: %w", hash, err), start)
		}

		if queries >= maxQueries {
			return c.timeout(ctx, out, start)
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return c.timeout(ctx, out, start)
		case <-t.C:
		}
	}
}

func (c *Client) finish(ctx context.Context, out *Outcome, res *node.Transaction, start time.Time) (*Outcome, error) {
	out.Transaction = res
	out.VMStatus = res.VMStatus
	if res.Success {
		c.logger.DebugContext(ctx, "Confirmed", "version", uint64(res.Version))
		return c.end(out, txn.StateConfirmed, nil, start)
	}

	out.Abort = ParseAbortCode(res.VMStatus)
	return c.end(out, txn.StateAborted, errors.Aborted.WithFormat("transaction %s failed: %s", out.Hash, res.VMStatus), start)
}

func (c *Client) timeout(ctx context.Context, out *Outcome, start time.Time) (*Outcome, error) {
	cause := ctx.Err()
	if cause == nil {
		cause = context.DeadlineExceeded
	}
	err := errors.Timeout.WithFormat("transaction %s has no final status after %v, outcome unknown: %w", out.Hash, time.Since(start).Round(time.Millisecond), cause)
	return c.end(out, txn.StateTimeout, err, start)
}

func (c *Client) end(out *Outcome, state txn.State, err error, start time.Time) (*Outcome, error) {
	mFinality.WithLabelValues(state.String()).Observe(time.Since(start).Seconds())
	out.State = state
	out.Err = err
	c.record(out, nil, state, err)
	return out, err
}

// Reconcile checks every unresolved transaction in the journal once and
// records any outcome it learns. A transaction that is still unknown after
// its expiration has passed can no longer commit and is recorded as ABORTED.
func (c *Client) Reconcile(ctx context.Context) ([]*Outcome, error) {
	entries, err := c.journal.Unresolved()
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	var outcomes []*Outcome
	for _, e := range entries {
		out := &Outcome{Hash: e.Hash, Sender: e.Sender, SequenceNumber: e.SequenceNumber, State: e.State}
		res, err := c.node.TransactionByHash(ctx, e.Hash)
		switch {
		case err == nil && !res.IsPending():
			out.Transaction = res
			out.VMStatus = res.VMStatus
			out.State = txn.StateConfirmed
			if !res.Success {
				out.State = txn.StateAborted
				out.Abort = ParseAbortCode(res.VMStatus)
				out.Err = errors.Aborted.WithFormat("transaction %s failed: %s", e.Hash, res.VMStatus)
			}
			c.record(out, nil, out.State, out.Err)

		case err == nil:
			// Still pending

		case node.IsNotFound(err, node.ErrCodeTransactionNotFound):
			if !e.Expiration.IsZero() && time.Now().After(e.Expiration) {
				out.State = txn.StateAborted
				out.Err = errors.Aborted.WithFormat("transaction %s expired without committing", e.Hash)
				c.record(out, nil, out.State, out.Err)
			}

		default:
			if ctx.Err() != nil {
				return outcomes, errors.UnknownError.WithFormat("reconcile: %w", ctx.Err())
			}
			out.Err = err
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

// AbortCode is an abort raised by Move code.
type AbortCode struct {
	// Location is the module that aborted, if reported.
	Location string

	// Reason is the error constant name, if reported.
	Reason string

	Code uint64
}

var (
	reAbortIn   = regexp.MustCompile(`Move abort in ([0-9a-zA-Z_]+::[0-9a-zA-Z_]+)(?:: ([A-Za-z0-9_]+))?\((0x[0-9a-fA-F]+|[0-9]+)\)`)
	reAbortBare = regexp.MustCompile(`Move abort in ([0-9a-zA-Z_]+::[0-9a-zA-Z_]+): (0x[0-9a-fA-F]+|[0-9]+)\b`)
	reAbortCode = regexp.MustCompile(`Move abort(?: by [A-Za-z0-9_]+)?(?::| with)? code (0x[0-9a-fA-F]+|[0-9]+)`)
)

// ParseAbortCode extracts the abort code from a VM status string, or returns
// nil if the status is not a Move abort.
func ParseAbortCode(vmStatus string) *AbortCode {
	if m := reAbortIn.FindStringSubmatch(vmStatus); m != nil {
		code, err := strconv.ParseUint(m[3], 0, 64)
		if err != nil {
			return nil
		}
		return &AbortCode{Location: m[1], Reason: m[2], Code: code}
	}
	if m := reAbortBare.FindStringSubmatch(vmStatus); m != nil {
		code, err := strconv.ParseUint(m[2], 0, 64)
		if err != nil {
			return nil
		}
		return &AbortCode{Location: m[1], Code: code}
	}
	if m := reAbortCode.FindStringSubmatch(vmStatus); m != nil {
		code, err := strconv.ParseUint(m[1], 0, 64)
		if err != nil {
			return nil
		}
		return &AbortCode{Code: code}
	}
	return nil
}
