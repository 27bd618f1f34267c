// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package contract

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gitlab.com/accumulatenetwork/moveclient/pkg/client"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
)

var FnPublishPackage = move.MustParseFunctionID("0x1::code::publish_package_txn")

// Package is a compiled package. Its contents are opaque to the client.
type Package struct {
	Name     string
	Metadata []byte
	Modules  [][]byte
}

// LoadPackage loads a compiled package from the build output of a package
// directory: build/{name}/package-metadata.bcs and the modules in
// build/{name}/bytecode_modules, in file name order.
func LoadPackage(dir, name string) (*Package, error) {
	base := filepath.Join(dir, "build", name)
	metadata, err := os.ReadFile(filepath.Join(base, "package-metadata.bcs"))
	if err != nil {
		return nil, readError(err, "read package metadata")
	}

	files, err := filepath.Glob(filepath.Join(base, "bytecode_modules", "*.mv"))
	if err != nil {
		return nil, errors.BadRequest.WithFormat("list modules: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.BadRequest.WithFormat("package %s has no modules in %s", name, filepath.Join(base, "bytecode_modules"))
	}
	sort.Strings(files)

	pkg := &Package{Name: name, Metadata: metadata}
	for _, file := range files {
		code, err := os.ReadFile(file)
		if err != nil {
			return nil, readError(err, "read module")
		}
		pkg.Modules = append(pkg.Modules, code)
	}
	return pkg, nil
}

func readError(err error, msg string) error {
	if errors.Is(err, fs.ErrNotExist) {
		return errors.NotFound.WithFormat("%s: %w", msg, err)
	}
	return errors.UnknownError.WithFormat("%s: %w", msg, err)
}

// Publish publishes the package under the sender.
func Publish(ctx context.Context, x Executor, sender client.Sender, pkg *Package) (*client.Outcome, error) {
	return x.Execute(ctx, sender, x.Call(FnPublishPackage).WithArgs(pkg.Metadata, pkg.Modules))
}
