// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/moveclient/pkg/contract"
)

var cmdMessage = &cobra.Command{
	Use:   "message",
	Short: "Store and read messages with the appcolla module",
}

var cmdMessageWrite = &cobra.Command{
	Use:   "write [module address] [message]",
	Short: "Store a message under the signer",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		runContract(cmd, &contract.Request{
			Operation: contract.OperationWriteMessage,
			Module:    resolveAddress(cfg, args[0]),
			Message:   args[1],
		})
	},
}

var cmdMessageGet = &cobra.Command{
	Use:   "get [module address] [owner]",
	Short: "Call get for an owner's message",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		runContract(cmd, &contract.Request{
			Operation: contract.OperationGetMessage,
			Module:    resolveAddress(cfg, args[0]),
			Target:    resolveAddress(cfg, args[1]),
		})
	},
}

var cmdMessageRead = &cobra.Command{
	Use:   "read [module address] [owner]",
	Short: "Read an owner's message without a transaction",
	Args:  cobra.ExactArgs(2),
	Run:   readMessage,
}

func init() {
	cmdMain.AddCommand(cmdMessage)
	cmdMessage.AddCommand(cmdMessageWrite, cmdMessageGet, cmdMessageRead)
}

func readMessage(cmd *cobra.Command, args []string) {
	c, cfg, done := openClient(cmd.Context())
	defer done()

	msg, found, err := contract.ReadMessage(cmd.Context(), c.Reader(), resolveAddress(cfg, args[0]), resolveAddress(cfg, args[1]))
	check(err)
	if !found {
		cmd.PrintErrf("%s has no message\n", args[1])
		exit(2)
	}
	printValue(cmd, "message", msg)
}
