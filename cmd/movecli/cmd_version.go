// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/moveclient"
)

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if !moveclient.IsVersionKnown() {
			cmd.Println("unknown")
			return
		}
		if moveclient.Commit == "" {
			cmd.Println(moveclient.Version)
			return
		}
		cmd.Printf("%s (%s)\n", moveclient.Version, moveclient.Commit)
	},
}

func init() {
	cmdMain.AddCommand(cmdVersion)
}
