// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package contract

import (
	"context"

	"gitlab.com/accumulatenetwork/moveclient/pkg/client"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"gitlab.com/accumulatenetwork/moveclient/pkg/resource"
)

var (
	FnRegister = move.MustParseFunctionID("0x1::managed_coin::register")
	FnTransfer = move.MustParseFunctionID("0x1::coin::transfer")
)

// Register registers the sender to hold coinType.
func Register(ctx context.Context, x Executor, sender client.Sender, coinType move.TypeTag) (*client.Outcome, error) {
	return x.Execute(ctx, sender, x.Call(FnRegister).WithTypeArgs(coinType))
}

// Transfer transfers amount of coinType from the sender to the recipient,
// who must be registered for the coin.
func Transfer(ctx context.Context, x Executor, sender client.Sender, coinType move.TypeTag, to move.Address, amount uint64) (*client.Outcome, error) {
	return x.Execute(ctx, sender, x.Call(FnTransfer).WithTypeArgs(coinType).WithArgs(to, amount))
}

// Balance returns the owner's balance of coinType. An owner with no coin
// store has a balance of zero. A failed read is an error, never zero.
func Balance(ctx context.Context, r *resource.Reader, owner move.Address, coinType move.TypeTag) (uint64, error) {
	store, ok, err := resource.Get[resource.CoinStore](ctx, r, owner, resource.CoinStorePath(coinType))
	if err != nil || !ok {
		return 0, err
	}
	return uint64(store.Coin.Value), nil
}
