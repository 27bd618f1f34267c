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
)

const PaymentModule = "paymentChannel"

// SetPaymentAddress makes the sender a payment channel that forwards
// payments to payee.
func SetPaymentAddress(ctx context.Context, x Executor, sender client.Sender, module move.Address, name string, payee move.Address) (*client.Outcome, error) {
	fn := move.NewFunctionID(module, PaymentModule, "set_payment_address")
	return x.Execute(ctx, sender, x.Call(fn).WithArgs(name, payee))
}

// Pay pays amount of coinType through the channel.
func Pay(ctx context.Context, x Executor, sender client.Sender, module move.Address, coinType move.TypeTag, channel move.Address, amount uint64) (*client.Outcome, error) {
	fn := move.NewFunctionID(module, PaymentModule, "payment")
	return x.Execute(ctx, sender, x.Call(fn).WithTypeArgs(coinType).WithArgs(channel, amount))
}
