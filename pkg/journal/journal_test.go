// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"gitlab.com/accumulatenetwork/moveclient/pkg/txn"
)

type opener func(t *testing.T) Journal

func TestMemory(t *testing.T) {
	testJournal(t, func(t *testing.T) Journal { return NewMemory() })
}

func TestBadger(t *testing.T) {
	testJournal(t, func(t *testing.T) Journal {
		j, err := OpenBadger(t.TempDir(), nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = j.Close() })
		return j
	})
}

func TestBadgerReopen(t *testing.T) {
	dir := t.TempDir()
	j, err := OpenBadger(dir, nil)
	require.NoError(t, err)
	require.NoError(t, j.Put(entry("0xAA", 1, txn.StateTimeout)))
	require.NoError(t, j.Close())

	_, err = j.Get("0xaa")
	require.Error(t, err, "closed journal")

	j, err = OpenBadger(dir, nil)
	require.NoError(t, err)
	defer j.Close()
	e, err := j.Get("0xaa")
	require.NoError(t, err)
	require.Equal(t, txn.StateTimeout, e.State)
	require.Equal(t, uint64(1), e.SequenceNumber)
}

var sender = move.MustParseAddress("0xbc20b78cf1a1c79c1e9c50a8771d2184ede92d659672f3e89ac899165ebf471f")

func entry(hash string, seq uint64, state txn.State) *Entry {
	now := time.Unix(1700000000, 0).UTC()
	return &Entry{
		Hash:           hash,
		Sender:         sender,
		SequenceNumber: seq,
		Function:       "0x1::coin::transfer",
		State:          state,
		Submitted:      now,
		Updated:        now,
		Expiration:     now.Add(30 * time.Second),
	}
}

func testJournal(t *testing.T, open opener) {
	j := open(t)

	_, err := j.Get("0x01")
	require.True(t, errors.Is(err, errors.NotFound))

	require.NoError(t, j.Put(entry("0x03", 3, txn.StateSubmitted)))
	require.NoError(t, j.Put(entry("0x01", 1, txn.StateConfirmed)))
	require.NoError(t, j.Put(entry("0x02", 2, txn.StateTimeout)))
	require.NoError(t, j.Put(entry("0x04", 4, txn.StateAborted)))

	e, err := j.Get("0x02")
	require.NoError(t, err)
	require.Equal(t, sender, e.Sender)
	require.Equal(t, "0x1::coin::transfer", e.Function)
	require.True(t, e.Expiration.Equal(time.Unix(1700000030, 0)))

	pending, err := j.Unresolved()
	require.NoError(t, err)
	require.Len(t, pending, 2)
	require.Equal(t, "0x02", pending[0].Hash)
	require.Equal(t, "0x03", pending[1].Hash)

	// Resolve one
	e.State = txn.StateConfirmed
	require.NoError(t, j.Put(e))
	pending, err = j.Unresolved()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "0x03", pending[0].Hash)
}
