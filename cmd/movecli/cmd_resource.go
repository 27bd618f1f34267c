// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var cmdResource = &cobra.Command{
	Use:   "resource [address or key name] [type]",
	Short: "Read a resource",
	Args:  cobra.ExactArgs(2),
	Run:   readResource,
}

func init() {
	cmdMain.AddCommand(cmdResource)
}

func readResource(cmd *cobra.Command, args []string) {
	c, cfg, done := openClient(cmd.Context())
	defer done()

	var data json.RawMessage
	found, err := c.Read(cmd.Context(), resolveAddress(cfg, args[0]), args[1], &data)
	check(err)
	if !found {
		cmd.PrintErrf("%s has no %s\n", args[0], args[1])
		exit(2)
	}
	printJSON(cmd, data)
}
