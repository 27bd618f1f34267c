// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gitlab.com/accumulatenetwork/moveclient/pkg/contract"
)

var cmdPublish = &cobra.Command{
	Use:   "publish [package directory] [package name]",
	Short: "Publish a compiled package under the signer",
	Long: `Publish a compiled package under the signer. The package must have been
built: the metadata and modules are read from build/[name] in the package
directory.`,
	Args: cobra.ExactArgs(2),
	Run:  publishPackage,
}

func init() {
	cmdMain.AddCommand(cmdPublish)
}

func publishPackage(cmd *cobra.Command, args []string) {
	pkg, err := contract.LoadPackage(args[0], args[1])
	check(err)

	size := len(pkg.Metadata)
	for _, m := range pkg.Modules {
		size += len(m)
	}
	if !flagMain.JSON {
		cmd.Printf("Publishing %s: %d modules, %s\n", pkg.Name, len(pkg.Modules), humanize.Bytes(uint64(size)))
	}

	runContract(cmd, &contract.Request{Operation: contract.OperationPublish, Package: pkg})
}
