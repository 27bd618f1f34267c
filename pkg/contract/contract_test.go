// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package contract_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/moveclient/pkg/account"
	"gitlab.com/accumulatenetwork/moveclient/pkg/client"
	. "gitlab.com/accumulatenetwork/moveclient/pkg/contract"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"gitlab.com/accumulatenetwork/moveclient/pkg/node"
	"gitlab.com/accumulatenetwork/moveclient/pkg/resource"
	"gitlab.com/accumulatenetwork/moveclient/pkg/txn"
	"gitlab.com/accumulatenetwork/moveclient/test/nodesim"
)

func setup(t *testing.T) (*nodesim.Simulator, *client.Client) {
	t.Helper()
	sim := nodesim.New(t)
	c := client.New(sim.Client(), client.Options{PollInterval: 5 * time.Millisecond, Timeout: 5 * time.Second})
	return sim, c
}

func generate(t *testing.T) *account.Account {
	t.Helper()
	a, err := account.Generate()
	require.NoError(t, err)
	return a
}

func confirmed(t *testing.T) func(*client.Outcome, error) {
	return func(out *client.Outcome, err error) {
		t.Helper()
		require.NoError(t, err)
		require.Equal(t, txn.StateConfirmed, out.State)
	}
}

func TestBalanceScenario(t *testing.T) {
	sim, c := setup(t)
	ctx := context.Background()
	alice, bob := generate(t), generate(t)
	sim.Fund(alice.Address(), move.AptosCoin, 20000)

	balance, err := Balance(ctx, c.Reader(), bob.Address(), move.AptosCoin)
	require.NoError(t, err)
	require.Zero(t, balance)

	confirmed(t)(Register(ctx, c, bob, move.AptosCoin))
	balance, err = Balance(ctx, c.Reader(), bob.Address(), move.AptosCoin)
	require.NoError(t, err)
	require.Zero(t, balance)

	confirmed(t)(Transfer(ctx, c, alice, move.AptosCoin, bob.Address(), 10000))
	balance, err = Balance(ctx, c.Reader(), bob.Address(), move.AptosCoin)
	require.NoError(t, err)
	require.Equal(t, uint64(10000), balance)

	balance, err = Balance(ctx, c.Reader(), alice.Address(), move.AptosCoin)
	require.NoError(t, err)
	require.Equal(t, uint64(10000), balance)
}

func TestTransferToUnregistered(t *testing.T) {
	sim, c := setup(t)
	ctx := context.Background()
	alice, bob := generate(t), generate(t)
	sim.Fund(alice.Address(), move.AptosCoin, 20000)

	out, err := Transfer(ctx, c, alice, move.AptosCoin, bob.Address(), 10000)
	require.True(t, errors.Is(err, errors.Aborted))
	require.Equal(t, "ECOIN_STORE_NOT_PUBLISHED", out.Abort.Reason)
}

type failingNode struct{ node.Querier }

func (failingNode) Resource(context.Context, move.Address, string) (*node.Resource, error) {
	return nil, errors.NetworkError.With("connection reset")
}

func TestBalanceReadFailure(t *testing.T) {
	r := &resource.Reader{Node: failingNode{}}
	_, err := Balance(context.Background(), r, move.AddressOne, move.AptosCoin)
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ReadFailed))
}

func TestMessageScenario(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()
	alice, bob := generate(t), generate(t)
	module := alice.Address()

	_, ok, err := ReadMessage(ctx, c.Reader(), module, alice.Address())
	require.NoError(t, err)
	require.False(t, ok)

	confirmed(t)(WriteMessage(ctx, c, alice, module, "apple"))
	msg, ok, err := ReadMessage(ctx, c.Reader(), module, alice.Address())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "apple", msg)

	confirmed(t)(GetMessage(ctx, c, alice, module, alice.Address()))

	out, err := GetMessage(ctx, c, alice, module, bob.Address())
	require.True(t, errors.Is(err, errors.Aborted))
	require.Equal(t, txn.StateAborted, out.State)
}

func TestPaymentChannel(t *testing.T) {
	sim, c := setup(t)
	ctx := context.Background()
	alice, bob, carol := generate(t), generate(t), generate(t)
	module := alice.Address()
	sim.Fund(carol.Address(), move.AptosCoin, 15000)
	sim.Fund(bob.Address(), move.AptosCoin, 0)

	out, err := Pay(ctx, c, carol, module, move.AptosCoin, alice.Address(), 10000)
	require.True(t, errors.Is(err, errors.Aborted))
	require.Equal(t, "ECHANNEL_NOT_FOUND", out.Abort.Reason)

	confirmed(t)(SetPaymentAddress(ctx, c, alice, module, "testPay", bob.Address()))
	confirmed(t)(Pay(ctx, c, carol, module, move.AptosCoin, alice.Address(), 10000))

	balance, err := Balance(ctx, c.Reader(), bob.Address(), move.AptosCoin)
	require.NoError(t, err)
	require.Equal(t, uint64(10000), balance)
}

func writePackage(t *testing.T, name string, modules map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	base := filepath.Join(dir, "build", name)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "bytecode_modules"), 0700))

	metadata := append([]byte{byte(len(name))}, name...)
	require.NoError(t, os.WriteFile(filepath.Join(base, "package-metadata.bcs"), metadata, 0600))
	for file, code := range modules {
		require.NoError(t, os.WriteFile(filepath.Join(base, "bytecode_modules", file), code, 0600))
	}
	return dir
}

func TestLoadPackage(t *testing.T) {
	dir := writePackage(t, "dynamicPayment", map[string][]byte{
		"paymentChannel.mv": {0xa1, 0x1c, 0xeb, 0x0b, 2},
		"appcolla.mv":       {0xa1, 0x1c, 0xeb, 0x0b, 1},
		"README.md":         []byte("not a module"),
	})

	pkg, err := LoadPackage(dir, "dynamicPayment")
	require.NoError(t, err)
	require.Equal(t, "dynamicPayment", pkg.Name)
	require.Equal(t, [][]byte{
		{0xa1, 0x1c, 0xeb, 0x0b, 1},
		{0xa1, 0x1c, 0xeb, 0x0b, 2},
	}, pkg.Modules)

	_, err = LoadPackage(dir, "missing")
	require.True(t, errors.Is(err, errors.NotFound))

	empty := writePackage(t, "empty", nil)
	_, err = LoadPackage(empty, "empty")
	require.True(t, errors.Is(err, errors.BadRequest))
}

func TestPublish(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()
	alice := generate(t)

	dir := writePackage(t, "collection", map[string][]byte{"appcolla.mv": {0xa1, 0x1c, 0xeb, 0x0b, 6}})
	pkg, err := LoadPackage(dir, "collection")
	require.NoError(t, err)

	confirmed(t)(Run(ctx, c, alice, &Request{Operation: OperationPublish, Package: pkg}))

	reg, ok, err := resource.Get[nodesim.PackageRegistry](ctx, c.Reader(), alice.Address(), nodesim.PackageRegistryPath)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, reg.Packages, 1)
	require.Equal(t, "collection", reg.Packages[0].Name)
}

func TestRun(t *testing.T) {
	sim, c := setup(t)
	ctx := context.Background()
	alice, bob := generate(t), generate(t)
	sim.Fund(alice.Address(), move.AptosCoin, 100)

	confirmed(t)(Run(ctx, c, bob, &Request{Operation: OperationRegister, CoinType: move.AptosCoin}))
	confirmed(t)(Run(ctx, c, alice, &Request{Operation: OperationTransfer, CoinType: move.AptosCoin, Target: bob.Address(), Amount: 40}))
	confirmed(t)(Run(ctx, c, alice, &Request{Operation: OperationWriteMessage, Module: alice.Address(), Message: "apple"}))

	_, err := Run(ctx, c, alice, &Request{})
	require.True(t, errors.Is(err, errors.BadRequest))
	_, err = Run(ctx, c, alice, &Request{Operation: OperationPublish})
	require.True(t, errors.Is(err, errors.BadRequest))
}

func TestParseOperation(t *testing.T) {
	for op := OperationRegister; op <= OperationPublish; op++ {
		parsed, ok := ParseOperation(op.String())
		require.True(t, ok)
		require.Equal(t, op, parsed)
	}
	_, ok := ParseOperation("mint")
	require.False(t, ok)
	require.Equal(t, "unknown", OperationUnknown.String())
}
