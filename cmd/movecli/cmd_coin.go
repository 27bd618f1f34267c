// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/moveclient/pkg/contract"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
)

var cmdBalance = &cobra.Command{
	Use:   "balance [address or key name]",
	Short: "Show a coin balance",
	Args:  cobra.ExactArgs(1),
	Run:   showBalance,
}

var cmdRegister = &cobra.Command{
	Use:   "register",
	Short: "Register the signer to hold a coin",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		runContract(cmd, &contract.Request{
			Operation: contract.OperationRegister,
			CoinType:  parseCoin(flagCoin.Coin),
		})
	},
}

var cmdTransfer = &cobra.Command{
	Use:   "transfer [recipient] [amount]",
	Short: "Transfer coins from the signer",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		runContract(cmd, &contract.Request{
			Operation: contract.OperationTransfer,
			CoinType:  parseCoin(flagCoin.Coin),
			Target:    resolveAddress(cfg, args[0]),
			Amount:    parseAmount(args[1]),
		})
	},
}

var flagCoin struct {
	Coin string
}

func init() {
	cmdMain.AddCommand(cmdBalance, cmdRegister, cmdTransfer)
	for _, cmd := range []*cobra.Command{cmdBalance, cmdRegister, cmdTransfer} {
		cmd.Flags().StringVar(&flagCoin.Coin, "coin", move.AptosCoin.String(), "Coin type")
	}
}

func showBalance(cmd *cobra.Command, args []string) {
	c, cfg, done := openClient(cmd.Context())
	defer done()

	balance, err := contract.Balance(cmd.Context(), c.Reader(), resolveAddress(cfg, args[0]), parseCoin(flagCoin.Coin))
	check(err)
	if flagMain.JSON {
		printValue(cmd, "balance", balance)
		return
	}
	cmd.Println(humanize.Comma(int64(balance)))
}

func parseAmount(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	checkf(err, "invalid amount %q", s)
	return v
}

// runContract executes a contract request with the configured signer.
func runContract(cmd *cobra.Command, req *contract.Request) {
	c, cfg, done := openClient(cmd.Context())
	defer done()

	out, err := contract.Run(cmd.Context(), c, signer(cfg), req)
	printOutcome(cmd, out, err)
}
