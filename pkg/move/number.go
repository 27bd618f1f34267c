// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package move

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
)

// U64 is a uint64 that the node's JSON API renders as a decimal string. It
// also accepts a bare JSON number.
type U64 uint64

func (u U64) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(u), 10))
}

func (u *U64) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid u64 %s: %w", b, err)
	}
	*u = U64(v)
	return nil
}

var maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// U128 is an unsigned 128-bit integer. The zero value is 0.
type U128 struct {
	v big.Int
}

// NewU128 returns a U128 with the given value.
func NewU128(v uint64) U128 {
	var u U128
	u.v.SetUint64(v)
	return u
}

// NewU128FromBig returns a U128 with the value of v, which must be in range.
func NewU128FromBig(v *big.Int) (U128, error) {
	if v == nil || v.Sign() < 0 || v.Cmp(maxU128) > 0 {
		return U128{}, fmt.Errorf("u128 %v out of range", v)
	}
	var u U128
	u.v.Set(v)
	return u, nil
}

// ParseU128 parses a decimal string.
func ParseU128(s string) (U128, error) {
	var u U128
	if _, ok := u.v.SetString(s, 10); !ok {
		return U128{}, fmt.Errorf("invalid u128 %q", s)
	}
	if u.v.Sign() < 0 || u.v.Cmp(maxU128) > 0 {
		return U128{}, fmt.Errorf("u128 %q out of range", s)
	}
	return u, nil
}

func (u U128) String() string { return u.v.String() }

// LittleEndian returns the 16-byte little-endian form used on the wire.
func (u U128) LittleEndian() [16]byte {
	var b [16]byte
	be := u.v.Bytes()
	for i := range be {
		b[i] = be[len(be)-1-i]
	}
	return b
}

func (u U128) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.v.String())
}

func (u *U128) UnmarshalJSON(b []byte) error {
	v, err := ParseU128(string(bytes.Trim(b, `"`)))
	if err != nil {
		return err
	}
	*u = v
	return nil
}
