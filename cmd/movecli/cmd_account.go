// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"encoding/hex"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/moveclient/pkg/account"
	"gitlab.com/accumulatenetwork/moveclient/pkg/contract"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"gitlab.com/accumulatenetwork/moveclient/pkg/node"
)

var cmdAccount = &cobra.Command{
	Use:   "account",
	Short: "Manage and inspect accounts",
}

var cmdAccountGenerate = &cobra.Command{
	Use:   "generate",
	Short: "Generate a key and print its seed and address",
	Args:  cobra.NoArgs,
	Run:   generateAccount,
}

var cmdAccountShow = &cobra.Command{
	Use:   "show [address or key name]",
	Short: "Show an account's sequence number and balance",
	Args:  cobra.MaximumNArgs(1),
	Run:   showAccount,
}

var flagAccount struct {
	Coin string
}

func init() {
	cmdMain.AddCommand(cmdAccount)
	cmdAccount.AddCommand(cmdAccountGenerate, cmdAccountShow)
	cmdAccountShow.Flags().StringVar(&flagAccount.Coin, "coin", move.AptosCoin.String(), "Coin type")
}

func generateAccount(cmd *cobra.Command, _ []string) {
	a, err := account.Generate()
	check(err)

	seed := hex.EncodeToString(a.Seed())
	if flagMain.JSON {
		printJSON(cmd, map[string]string{"address": a.Address().String(), "seed": seed})
		return
	}
	cmd.Printf("Address: %v\n", a.Address())
	cmd.Printf("Seed   : %s\n", seed)
	cmd.Println("Store the seed in a secret store or an environment variable, and reference it from the configuration.")
}

func showAccount(cmd *cobra.Command, args []string) {
	c, cfg, done := openClient(cmd.Context())
	defer done()

	var addr move.Address
	if len(args) == 0 {
		addr = signer(cfg).Address()
	} else {
		addr = resolveAddress(cfg, args[0])
	}

	seq, err := node.SequenceNumber(cmd.Context(), c.Node(), addr)
	check(err)
	balance, err := contract.Balance(cmd.Context(), c.Reader(), addr, parseCoin(flagAccount.Coin))
	check(err)

	if flagMain.JSON {
		printJSON(cmd, map[string]any{"address": addr.String(), "sequenceNumber": seq, "balance": balance})
		return
	}
	cmd.Printf("Address : %v\n", addr)
	cmd.Printf("Sequence: %d\n", seq)
	cmd.Printf("Balance : %s\n", humanize.Comma(int64(balance)))
}
