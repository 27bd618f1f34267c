// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/moveclient/pkg/client"
	"gitlab.com/accumulatenetwork/moveclient/pkg/journal"
)

var cmdWait = &cobra.Command{
	Use:   "wait [hash]",
	Short: "Wait for a submitted transaction's outcome",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, _, done := openClient(cmd.Context())
		defer done()
		out, err := c.Wait(cmd.Context(), args[0])
		printOutcome(cmd, out, err)
	},
}

var cmdPending = &cobra.Command{
	Use:   "pending",
	Short: "List journaled transactions whose outcome is unknown",
	Long: `List journaled transactions whose outcome is unknown. This requires a
persistent journal (journal.type = "badger").`,
	Args: cobra.NoArgs,
	Run:  listPending,
}

var flagPending struct {
	Reconcile bool
}

func init() {
	cmdMain.AddCommand(cmdWait, cmdPending)
	cmdPending.Flags().BoolVar(&flagPending.Reconcile, "reconcile", false, "Query the node once for each transaction and record what is learned")
}

func listPending(cmd *cobra.Command, _ []string) {
	c, _, done := openClient(cmd.Context())
	defer done()

	if flagPending.Reconcile {
		outcomes, err := c.Reconcile(cmd.Context())
		check(err)
		printReconciled(cmd, outcomes)
		return
	}

	entries, err := c.Journal().Unresolved()
	check(err)
	if flagMain.JSON {
		printJSON(cmd, entries)
		return
	}
	if len(entries) == 0 {
		cmd.Println("No pending transactions")
		return
	}
	printPending(cmd, entries)
}

func newTable(cmd *cobra.Command, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	return table
}

func printPending(cmd *cobra.Command, entries []*journal.Entry) {
	table := newTable(cmd, "State", "Hash", "Sender", "Sequence", "Function", "Submitted")
	for _, e := range entries {
		table.Append([]string{
			colorFor(e.State).Sprint(e.State),
			e.Hash,
			e.Sender.String(),
			strconv.FormatUint(e.SequenceNumber, 10),
			e.Function,
			humanize.Time(e.Submitted),
		})
	}
	table.Render()
}

func printReconciled(cmd *cobra.Command, outcomes []*client.Outcome) {
	if flagMain.JSON {
		v := make([]outcomeJSON, len(outcomes))
		for i, out := range outcomes {
			v[i] = newOutcomeJSON(out, nil)
		}
		printJSON(cmd, v)
		return
	}

	table := newTable(cmd, "State", "Hash", "Sender", "Sequence", "VM Status")
	for _, out := range outcomes {
		table.Append([]string{
			colorFor(out.State).Sprint(out.State),
			out.Hash,
			out.Sender.String(),
			strconv.FormatUint(out.SequenceNumber, 10),
			out.VMStatus,
		})
	}
	table.Render()
}
