// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/moveclient/pkg/client"
	"gitlab.com/accumulatenetwork/moveclient/pkg/txn"
)

var stateColor = map[txn.State]*color.Color{
	txn.StateConfirmed:    color.New(color.FgGreen, color.Bold),
	txn.StateAborted:      color.New(color.FgRed, color.Bold),
	txn.StateTimeout:      color.New(color.FgYellow, color.Bold),
	txn.StateNetworkError: color.New(color.FgYellow, color.Bold),
}

var fallbackColor = color.New(color.FgHiBlack)

func colorFor(state txn.State) *color.Color {
	if c, ok := stateColor[state]; ok {
		return c
	}
	return fallbackColor
}

type outcomeJSON struct {
	Hash           string    `json:"hash,omitempty"`
	Sender         string    `json:"sender"`
	SequenceNumber uint64    `json:"sequenceNumber"`
	State          txn.State `json:"state"`
	Version        uint64    `json:"version,omitempty"`
	GasUsed        uint64    `json:"gasUsed,omitempty"`
	VMStatus       string    `json:"vmStatus,omitempty"`
	Error          string    `json:"error,omitempty"`
}

func newOutcomeJSON(out *client.Outcome, err error) outcomeJSON {
	v := outcomeJSON{
		Hash:           out.Hash,
		Sender:         out.Sender.String(),
		SequenceNumber: out.SequenceNumber,
		State:          out.State,
		VMStatus:       out.VMStatus,
	}
	if out.Transaction != nil {
		v.Version = uint64(out.Transaction.Version)
		v.GasUsed = uint64(out.Transaction.GasUsed)
	}
	if err != nil {
		v.Error = err.Error()
	}
	return v
}

func printJSON(cmd *cobra.Command, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	check(err)
	cmd.Println(string(b))
}

// printOutcome prints the outcome and exits with status 1 if the
// transaction was not confirmed.
func printOutcome(cmd *cobra.Command, out *client.Outcome, err error) {
	if out == nil {
		check(err)
		return
	}

	if flagMain.JSON {
		printJSON(cmd, newOutcomeJSON(out, err))
	} else {
		cmd.Printf("%s %s\n", colorFor(out.State).Sprint(out.State), out.Hash)
		cmd.Printf("  Sender   : %v (sequence %d)\n", out.Sender, out.SequenceNumber)
		if out.Transaction != nil && !out.Transaction.IsPending() {
			cmd.Printf("  Version  : %s\n", humanize.Comma(int64(out.Transaction.Version)))
			cmd.Printf("  Gas used : %s\n", humanize.Comma(int64(out.Transaction.GasUsed)))
		}
		if out.VMStatus != "" {
			cmd.Printf("  VM status: %s\n", out.VMStatus)
		}
		if err != nil {
			cmd.PrintErrf("Error: %v\n", err)
		}
	}

	if err != nil {
		exit(1)
	}
}

func printValue(cmd *cobra.Command, label string, v any) {
	if flagMain.JSON {
		printJSON(cmd, map[string]any{label: v})
		return
	}
	cmd.Println(fmt.Sprint(v))
}
