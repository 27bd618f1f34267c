// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package build

import (
	"context"
	"time"

	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
)

const (
	DefaultExpiration   = 30 * time.Second
	DefaultMaxGasAmount = 200_000
	DefaultGasUnitPrice = 100
)

// Chain is the node state a builder reads when loading a transaction.
type Chain interface {
	// SequenceNumber returns the account's current on-chain sequence number.
	SequenceNumber(ctx context.Context, account move.Address) (uint64, error)

	// ChainID returns the chain id of the network.
	ChainID(ctx context.Context) (uint8, error)
}

func Transaction() TransactionBuilder {
	return TransactionBuilder{}
}

// EntryFunction starts a transaction that calls fn.
func EntryFunction(fn any) TransactionBuilder {
	return Transaction().Call(fn)
}

// UnixTimeNow returns the current time as seconds since the Unix epoch,
// the unit of transaction expiration.
func UnixTimeNow() uint64 {
	return uint64(time.Now().UTC().Unix())
}
