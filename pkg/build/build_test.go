// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package build_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	. "gitlab.com/accumulatenetwork/moveclient/pkg/build"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
)

var (
	alice = move.MustParseAddress("0xbc20b78cf1a1c79c1e9c50a8771d2184ede92d659672f3e89ac899165ebf471f")
	bob   = move.MustParseAddress("0x5758138fa408e00258b2d86a03799ffdcc6d48830055a767476619b6305d45b5")
)

type fakeChain struct {
	seq     uint64
	chainID uint8
	err     error
	calls   int
}

func (c *fakeChain) SequenceNumber(context.Context, move.Address) (uint64, error) {
	c.calls++
	return c.seq, c.err
}

func (c *fakeChain) ChainID(context.Context) (uint8, error) {
	c.calls++
	return c.chainID, nil
}

func TestBuildEntryFunction(t *testing.T) {
	raw, err := Transaction().
		From(alice).
		Call("0x1::coin::transfer").
		WithTypeArgs("0x1::aptos_coin::AptosCoin").
		WithArgs(bob, uint64(10000)).
		WithSequence(3).
		WithChainID(4).
		Build()
	require.NoError(t, err)

	require.Equal(t, alice, raw.Sender)
	require.Equal(t, uint64(3), raw.SequenceNumber)
	require.Equal(t, uint8(4), raw.ChainID)
	require.Equal(t, uint64(DefaultMaxGasAmount), raw.MaxGasAmount)
	require.Equal(t, uint64(DefaultGasUnitPrice), raw.GasUnitPrice)

	ef := raw.Payload.EntryFunction
	require.NotNil(t, ef)
	require.Equal(t, "0x1::coin::transfer", ef.FunctionID().String())
	require.Len(t, ef.TypeArgs, 1)
	require.True(t, ef.TypeArgs[0].Equal(move.AptosCoin))
	require.Equal(t, bob[:], ef.Args[0])
	require.Equal(t, []byte{0x10, 0x27, 0, 0, 0, 0, 0, 0}, ef.Args[1])

	exp := time.Unix(int64(raw.ExpirationTimestampSecs), 0)
	require.WithinDuration(t, time.Now().Add(DefaultExpiration), exp, 2*time.Second)
}

func TestBadFunctionIDBeforeNetwork(t *testing.T) {
	chain := &fakeChain{seq: 1}
	_, err := Transaction().
		From(alice).
		Call("0x1::coin").
		Load(context.Background(), chain).
		Build()
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.BadFunctionID))
	require.Zero(t, chain.calls, "the node must not be queried")
}

func TestLoad(t *testing.T) {
	chain := &fakeChain{seq: 7, chainID: 2}
	raw, err := EntryFunction("0xcafe::appcolla::write").
		From(alice).
		WithArgs("apple").
		Load(context.Background(), chain).
		Build()
	require.NoError(t, err)
	require.Equal(t, uint64(7), raw.SequenceNumber)
	require.Equal(t, uint8(2), raw.ChainID)
	require.Equal(t, append([]byte{5}, "apple"...), raw.Payload.EntryFunction.Args[0])

	// Explicit values are not overwritten
	chain.calls = 0
	raw, err = EntryFunction("0xcafe::appcolla::write").
		From(alice).
		WithSequence(9).
		WithChainID(1).
		Load(context.Background(), chain).
		Build()
	require.NoError(t, err)
	require.Equal(t, uint64(9), raw.SequenceNumber)
	require.Zero(t, chain.calls)
}

func TestLoadFailure(t *testing.T) {
	chain := &fakeChain{err: errors.NetworkError.With("connection refused")}
	_, err := EntryFunction("0x1::coin::transfer").
		From(alice).
		Load(context.Background(), chain).
		Build()
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.SequenceQueryFailed))
	require.ErrorContains(t, err, "connection refused")
}

func TestMissingFields(t *testing.T) {
	_, err := Transaction().Build()
	require.ErrorContains(t, err, "missing sender")
	require.ErrorContains(t, err, "missing entry function")
	require.ErrorContains(t, err, "missing sequence number")
	require.ErrorContains(t, err, "missing chain id")
}

func TestTemplateReuse(t *testing.T) {
	base := EntryFunction("0x1::coin::transfer").
		From(alice).
		WithTypeArgs(move.AptosCoin).
		WithArgs(bob).
		WithSequence(1).
		WithChainID(4)

	a, err := base.WithArgs(uint64(1)).Build()
	require.NoError(t, err)
	b, err := base.WithArgs(uint64(2)).Build()
	require.NoError(t, err)
	require.Len(t, a.Payload.EntryFunction.Args, 2)
	require.Len(t, b.Payload.EntryFunction.Args, 2)
	require.Equal(t, byte(1), a.Payload.EntryFunction.Args[1][0])
	require.Equal(t, byte(2), b.Payload.EntryFunction.Args[1][0])
}

func TestExpiration(t *testing.T) {
	at := time.Unix(1700000000, 0)
	raw, err := EntryFunction("0x1::coin::transfer").From(alice).WithSequence(0).WithChainID(1).ExpiresAt(at).Build()
	require.NoError(t, err)
	require.Equal(t, uint64(1700000000), raw.ExpirationTimestampSecs)

	raw, err = EntryFunction("0x1::coin::transfer").From(alice).WithSequence(0).WithChainID(1).ExpiresIn(time.Hour).Build()
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), raw.Expiration(), 2*time.Second)
}

func TestEncode(t *testing.T) {
	max128, _ := new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	cases := []struct {
		name   string
		value  any
		expect []byte
	}{
		{"bool", true, []byte{1}},
		{"u8", uint8(7), []byte{7}},
		{"u16", uint16(0x0102), []byte{2, 1}},
		{"u32", uint32(1), []byte{1, 0, 0, 0}},
		{"u64", move.U64(1), []byte{1, 0, 0, 0, 0, 0, 0, 0}},
		{"u128", move.NewU128(1), append([]byte{1}, make([]byte, 15)...)},
		{"big u128", max128, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		{"string", "testPay", append([]byte{7}, "testPay"...)},
		{"bytes", []byte{1, 2}, []byte{2, 1, 2}},
		{"strings", []string{"a", "bc"}, []byte{2, 1, 'a', 2, 'b', 'c'}},
		{"byte vectors", [][]byte{{1}, {}}, []byte{2, 1, 1, 0}},
		{"addresses", []move.Address{move.AddressOne}, append([]byte{1}, move.AddressOne[:]...)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b, err := Encode(c.value)
			require.NoError(t, err)
			require.Equal(t, c.expect, b)
		})
	}

	for _, v := range []any{10, int64(1), nil, 1.5, new(big.Int).Lsh(big.NewInt(1), 128)} {
		_, err := Encode(v)
		require.Error(t, err, "%T", v)
	}
}

func TestBuildCollectsErrors(t *testing.T) {
	_, err := EntryFunction("0x1::coin::transfer").
		From("0xzz").
		WithTypeArgs("vector<").
		WithArgs(10).
		WithSequence(0).
		WithChainID(1).
		Build()
	require.Error(t, err)
	var errs Errors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 3)
	require.True(t, errors.Is(err, errors.BadRequest))
}
