// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package client

import (
	"context"
	"sync"

	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"gitlab.com/accumulatenetwork/moveclient/pkg/node"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// sequencer allocates sequence numbers. A sender's transactions are
// serialized from allocation through submission by a per-sender lease, so
// concurrent callers sharing an account never embed the same number.
type sequencer struct {
	node node.Querier

	mu       sync.Mutex
	accounts map[move.Address]*accountSequence

	chainMu sync.Mutex
	chainID uint8
	haveID  bool
	flight  singleflight.Group
}

type accountSequence struct {
	lock  *semaphore.Weighted
	next  uint64
	valid bool
}

// lease holds a sender's lock and the sequence number allocated under it.
// Exactly one of commit, reset, or release must be called.
type lease struct {
	account  *accountSequence
	Sequence uint64
}

func newSequencer(q node.Querier, chainID uint8) *sequencer {
	s := new(sequencer)
	s.node = q
	s.accounts = map[move.Address]*accountSequence{}
	if chainID != 0 {
		s.chainID, s.haveID = chainID, true
	}
	return s
}

func (s *sequencer) account(addr move.Address) *accountSequence {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[addr]
	if !ok {
		a = &accountSequence{lock: semaphore.NewWeighted(1)}
		s.accounts[addr] = a
	}
	return a
}

// acquire waits for the sender's lease and allocates the next sequence
// number: the larger of the on-chain number and the next locally allocated
// number.
func (s *sequencer) acquire(ctx context.Context, addr move.Address) (*lease, error) {
	a := s.account(addr)
	err := a.lock.Acquire(ctx, 1)
	if err != nil {
		return nil, errors.SequenceQueryFailed.WithFormat("wait for the sequence lease of %v: %w", addr, err)
	}

	onChain, err := node.SequenceNumber(ctx, s.node, addr)
	if err != nil {
		a.lock.Release(1)
		return nil, errors.SequenceQueryFailed.WithCauseAndFormat(err, "query sequence number of %v: %v", addr, err)
	}

	seq := onChain
	if a.valid && a.next > seq {
		seq = a.next
	}
	return &lease{account: a, Sequence: seq}, nil
}

// commit records that the sequence number was used and releases the lease.
func (l *lease) commit() {
	l.account.next = l.Sequence + 1
	l.account.valid = true
	l.account.lock.Release(1)
}

// reset discards the local counter, so the next allocation follows the
// chain, and releases the lease.
func (l *lease) reset() {
	l.account.valid = false
	l.account.lock.Release(1)
}

// release releases the lease without changing the counter.
func (l *lease) release() {
	l.account.lock.Release(1)
}

// ChainID returns the chain id, querying the node at most once at a time
// until it succeeds.
func (s *sequencer) ChainID(ctx context.Context) (uint8, error) {
	s.chainMu.Lock()
	id, ok := s.chainID, s.haveID
	s.chainMu.Unlock()
	if ok {
		return id, nil
	}

	v, err, _ := s.flight.Do("chain-id", func() (interface{}, error) {
		info, err := s.node.LedgerInfo(ctx)
		if err != nil {
			return nil, err
		}
		s.chainMu.Lock()
		s.chainID, s.haveID = info.ChainID, true
		s.chainMu.Unlock()
		return info.ChainID, nil
	})
	if err != nil {
		return 0, errors.UnknownError.WithFormat("query chain id: %w", err)
	}
	return v.(uint8), nil
}
