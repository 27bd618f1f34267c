// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package resource

import (
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
)

// CoinStore is 0x1::coin::CoinStore<T>.
type CoinStore struct {
	Coin struct {
		Value move.U64 `json:"value"`
	} `json:"coin"`
	Frozen bool `json:"frozen"`
}

// CoinStorePath returns the resource path of the coin store for coinType.
func CoinStorePath(coinType move.TypeTag) string {
	return move.StructOf(move.AddressOne, "coin", "CoinStore", coinType).String()
}
