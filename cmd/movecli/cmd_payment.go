// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/moveclient/pkg/contract"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
)

var cmdPayment = &cobra.Command{
	Use:   "payment",
	Short: "Use paymentChannel payment channels",
}

var cmdPaymentSetAddress = &cobra.Command{
	Use:   "set-address [module address] [name] [payee]",
	Short: "Make the signer a payment channel that forwards to the payee",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		runContract(cmd, &contract.Request{
			Operation: contract.OperationSetPaymentAddress,
			Module:    resolveAddress(cfg, args[0]),
			Name:      args[1],
			Target:    resolveAddress(cfg, args[2]),
		})
	},
}

var cmdPaymentPay = &cobra.Command{
	Use:   "pay [module address] [channel] [amount]",
	Short: "Pay through a payment channel",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		runContract(cmd, &contract.Request{
			Operation: contract.OperationPayment,
			Module:    resolveAddress(cfg, args[0]),
			CoinType:  parseCoin(flagPayment.Coin),
			Target:    resolveAddress(cfg, args[1]),
			Amount:    parseAmount(args[2]),
		})
	},
}

var flagPayment struct {
	Coin string
}

func init() {
	cmdMain.AddCommand(cmdPayment)
	cmdPayment.AddCommand(cmdPaymentSetAddress, cmdPaymentPay)
	cmdPaymentPay.Flags().StringVar(&flagPayment.Coin, "coin", move.AptosCoin.String(), "Coin type")
}
