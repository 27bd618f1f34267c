// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package txn

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
)

var bob = move.MustParseAddress("0x5758138fa408e00258b2d86a03799ffdcc6d48830055a767476619b6305d45b5")

func u64(v uint64) []byte {
	return binary.LittleEndian.AppendUint64(nil, v)
}

func str(s string) []byte {
	return append([]byte{byte(len(s))}, s...)
}

func transfer() *RawTransaction {
	return &RawTransaction{
		Sender:         bob,
		SequenceNumber: 5,
		Payload: NewEntryFunction(
			move.MustParseFunctionID("0x1::coin::transfer"),
			[]move.TypeTag{move.AptosCoin},
			[][]byte{move.AddressOne[:], u64(10000)},
		),
		MaxGasAmount:            2000,
		GasUnitPrice:            100,
		ExpirationTimestampSecs: 1700000000,
		ChainID:                 4,
	}
}

func TestEncodeLayout(t *testing.T) {
	var want bytes.Buffer
	want.Write(bob[:])             // sender
	want.Write(u64(5))             // sequence number
	want.WriteByte(2)              // payload: entry function
	want.Write(move.AddressOne[:]) // module address
	want.Write(str("coin"))        // module name
	want.Write(str("transfer"))    // function
	want.WriteByte(1)              // one type argument
	want.WriteByte(7)              // struct tag
	want.Write(move.AddressOne[:]) //   address
	want.Write(str("aptos_coin"))  //   module
	want.Write(str("AptosCoin"))   //   name
	want.WriteByte(0)              //   no type arguments
	want.WriteByte(2)              // two arguments
	want.WriteByte(32)             //   address, length prefixed
	want.Write(move.AddressOne[:]) //
	want.WriteByte(8)              //   u64, length prefixed
	want.Write(u64(10000))         //
	want.Write(u64(2000))          // max gas
	want.Write(u64(100))           // gas unit price
	want.Write(u64(1700000000))    // expiration
	want.WriteByte(4)              // chain id

	got, err := Encode(transfer())
	require.NoError(t, err)
	require.Equal(t, want.Bytes(), got)
}

func TestEncodeDeterministic(t *testing.T) {
	a, err := Encode(transfer())
	require.NoError(t, err)
	b, err := Encode(transfer())
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestEncodeRoundTrip(t *testing.T) {
	cases := map[string]*RawTransaction{
		"transfer": transfer(),
		"no arguments": {
			Sender:  bob,
			Payload: NewEntryFunction(move.MustParseFunctionID("0x1::managed_coin::register"), []move.TypeTag{move.MustParseTypeTag("0xcafe::moon_coin::MoonCoin")}, nil),
			ChainID: 1,
		},
		"nested type arguments": {
			Sender:         bob,
			SequenceNumber: 1 << 40,
			Payload: NewEntryFunction(move.MustParseFunctionID("0xcafe::pair::make"), []move.TypeTag{
				move.MustParseTypeTag("vector<vector<u8>>"),
				move.MustParseTypeTag("0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin>"),
				move.TagBool, move.TagU16, move.TagU32, move.TagU128, move.TagU256, move.TagAddress, move.TagSigner,
			}, [][]byte{{}, {1, 2, 3}}),
			MaxGasAmount: 1,
			ChainID:      255,
		},
		"vector type argument": {
			Sender:  bob,
			Payload: NewEntryFunction(move.MustParseFunctionID("0x1::aptos_account::transfer_coins"), []move.TypeTag{move.VectorOf(move.TagU8)}, [][]byte{{0}}),
			ChainID: 2,
		},
		"script": {
			Sender: bob,
			Payload: TransactionPayload{Script: &Script{
				Code:     []byte{0xa1, 0x1c, 0xeb, 0x0b},
				TypeArgs: []move.TypeTag{},
				Args:     []ScriptArgument{{U64: new(uint64)}, {Address: &bob}},
			}},
		},
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			b, err := Encode(raw)
			require.NoError(t, err)

			decoded, err := Decode(b)
			require.NoError(t, err)
			require.Equal(t, raw.Sender, decoded.Sender)
			require.Equal(t, raw.SequenceNumber, decoded.SequenceNumber)
			require.Equal(t, raw.MaxGasAmount, decoded.MaxGasAmount)
			require.Equal(t, raw.ChainID, decoded.ChainID)
			if raw.Payload.EntryFunction != nil {
				require.NotNil(t, decoded.Payload.EntryFunction)
				require.True(t, raw.Payload.EntryFunction.FunctionID().Equal(decoded.Payload.EntryFunction.FunctionID()))
				require.Len(t, decoded.Payload.EntryFunction.TypeArgs, len(raw.Payload.EntryFunction.TypeArgs))
				for i, tag := range raw.Payload.EntryFunction.TypeArgs {
					require.Equal(t, tag.String(), decoded.Payload.EntryFunction.TypeArgs[i].String())
				}
			}

			again, err := Encode(decoded)
			require.NoError(t, err)
			require.Equal(t, b, again)
		})
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	b, err := Encode(transfer())
	require.NoError(t, err)
	_, err = Decode(append(b, 0))
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.EncodingError))
}

func TestDecodeMalformed(t *testing.T) {
	good, err := Encode(transfer())
	require.NoError(t, err)

	mutate := func(i int, v byte) []byte {
		b := append([]byte(nil), good...)
		b[i] = v
		return b
	}

	cases := map[string][]byte{
		"payload variant out of range":  mutate(40, 9),
		"type tag variant out of range": mutate(40+1+32+5+9+1, 11),
		"oversized argument count":      mutate(len(good)-(8+8+8+1)-(1+8)-(1+32)-1, 0x7f),
		"unterminated varint":           append(good[:40:40], 0xff, 0xff, 0xff),
		"empty":                         {},
	}

	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			require.NotPanics(t, func() {
				_, err = Decode(b)
			})
			require.Error(t, err)
			require.True(t, errors.Is(err, errors.EncodingError))
		})
	}
}

func TestDecodeEveryTruncation(t *testing.T) {
	raw := transfer()
	raw.Payload.EntryFunction.TypeArgs = []move.TypeTag{move.MustParseTypeTag("vector<0x1::coin::CoinStore<vector<u64>>>")}
	b, err := Encode(raw)
	require.NoError(t, err)

	for i := 0; i < len(b); i++ {
		require.NotPanics(t, func() {
			_, err = Decode(b[:i])
		}, "length %d", i)
		require.Error(t, err, "length %d", i)
	}
}

func TestDecodeTypeTagDepth(t *testing.T) {
	tag := move.TagU8
	for i := 0; i < maxTypeDepth+2; i++ {
		tag = move.VectorOf(tag)
	}
	raw := transfer()
	raw.Payload.EntryFunction.TypeArgs = []move.TypeTag{tag}
	b, err := Encode(raw)
	require.NoError(t, err)

	_, err = Decode(b)
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.EncodingError))
}

func TestDecodeSignedBadAuthenticator(t *testing.T) {
	signed := &SignedTransaction{
		Raw: *transfer(),
		Authenticator: Authenticator{Ed25519: &Ed25519Authenticator{
			PublicKey: bytes.Repeat([]byte{1}, 32),
			Signature: bytes.Repeat([]byte{2}, 64),
		}},
	}
	b, err := EncodeSigned(signed)
	require.NoError(t, err)
	raw, err := Encode(&signed.Raw)
	require.NoError(t, err)

	b[len(raw)] = 7
	require.NotPanics(t, func() {
		_, err = DecodeSigned(b)
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.EncodingError))
}

func TestEncodeRequiresOnePayload(t *testing.T) {
	raw := transfer()
	raw.Payload.Script = &Script{}
	_, err := Encode(raw)
	require.Error(t, err)

	raw.Payload = TransactionPayload{}
	_, err = Encode(raw)
	require.Error(t, err)
}

func TestSignedRoundTripAndHash(t *testing.T) {
	signed := &SignedTransaction{
		Raw: *transfer(),
		Authenticator: Authenticator{Ed25519: &Ed25519Authenticator{
			PublicKey: bytes.Repeat([]byte{1}, 32),
			Signature: bytes.Repeat([]byte{2}, 64),
		}},
	}

	b, err := EncodeSigned(signed)
	require.NoError(t, err)

	raw, err := Encode(&signed.Raw)
	require.NoError(t, err)
	require.Equal(t, raw, b[:len(raw)])
	tail := b[len(raw):]
	require.Equal(t, byte(0), tail[0])  // ed25519 variant
	require.Equal(t, byte(32), tail[1]) // public key length
	require.Equal(t, byte(64), tail[34])
	require.Len(t, tail, 1+1+32+1+64)

	decoded, err := DecodeSigned(b)
	require.NoError(t, err)
	require.NotNil(t, decoded.Authenticator.Ed25519)
	require.Equal(t, signed.Authenticator.Ed25519.Signature, decoded.Authenticator.Ed25519.Signature)

	h1, err := Hash(signed)
	require.NoError(t, err)
	signed.Authenticator.Ed25519.Signature[0] ^= 1
	h2, err := Hash(signed)
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
	require.Len(t, HashString(h1), 66)
}

func TestSigningMessagePrefix(t *testing.T) {
	msg, err := SigningMessage(transfer())
	require.NoError(t, err)
	require.Equal(t, rawTransactionPrefix[:], msg[:32])
	b, err := Encode(transfer())
	require.NoError(t, err)
	require.Equal(t, b, msg[32:])
}
