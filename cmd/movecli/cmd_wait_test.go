// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/moveclient/pkg/client"
	"gitlab.com/accumulatenetwork/moveclient/pkg/journal"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"gitlab.com/accumulatenetwork/moveclient/pkg/txn"
)

func TestPrintPending(t *testing.T) {
	out := new(bytes.Buffer)
	cmd := new(cobra.Command)
	cmd.SetOut(out)

	printPending(cmd, []*journal.Entry{
		{Hash: "0xabc", Sender: move.AddressOne, SequenceNumber: 7, Function: "0x1::coin::transfer", State: txn.StateSubmitted, Submitted: time.Now().Add(-time.Minute)},
		{Hash: "0xdef", Sender: move.AddressOne, SequenceNumber: 8, Function: "0x1::coin::transfer", State: txn.StateSubmitted, Submitted: time.Now()},
	})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4) // header, separator, two rows
	require.Contains(t, lines[0], "HASH")
	require.Contains(t, lines[0], "SEQUENCE")
	require.Contains(t, lines[2], "0xabc")
	require.Contains(t, lines[2], "1 minute ago")
	require.Contains(t, lines[3], "0xdef")
	require.Contains(t, lines[3], "8")
}

func TestPrintReconciled(t *testing.T) {
	out := new(bytes.Buffer)
	cmd := new(cobra.Command)
	cmd.SetOut(out)

	printReconciled(cmd, []*client.Outcome{
		{Hash: "0xabc", Sender: move.AddressOne, SequenceNumber: 7, State: txn.StateAborted, VMStatus: "Move abort"},
	})
	require.Contains(t, out.String(), "VM STATUS")
	require.Contains(t, out.String(), "Move abort")
}
