// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package move

import (
	"encoding/hex"
	"strings"
)

// AddressLength is the length of an account address in bytes.
const AddressLength = 32

// Address is an account address. It is encoded as 32 raw bytes with no
// length prefix.
type Address [AddressLength]byte

// Well known framework addresses.
var (
	AddressZero = Address{}
	AddressOne  = Address{31: 0x1}
)

// ParseAddress parses a hex address. The 0x prefix is optional. Short forms
// are zero-padded on the left, so 0x1 is the framework address.
func ParseAddress(s string) (Address, error) {
	var a Address
	h := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	switch {
	case h == "":
		return a, badAddress(s, "empty")
	case len(h) > 2*AddressLength:
		return a, badAddress(s, "too long")
	}
	if len(h)%2 == 1 {
		h = "0" + h
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return a, badAddress(s, "not hex")
	}
	copy(a[AddressLength-len(b):], b)
	return a, nil
}

// MustParseAddress calls ParseAddress and panics if it returns an error.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsSpecial returns true for the reserved addresses 0x0 through 0xf.
func (a Address) IsSpecial() bool {
	for _, b := range a[:AddressLength-1] {
		if b != 0 {
			return false
		}
	}
	return a[AddressLength-1] < 0x10
}

// String returns the canonical form: special addresses are printed short
// (0x1), all others as 64 hex digits.
func (a Address) String() string {
	if a.IsSpecial() {
		return "0x" + hex.EncodeToString(a[AddressLength-1:])[1:]
	}
	return a.StringLong()
}

// StringLong returns the address as 0x followed by 64 hex digits.
func (a Address) StringLong() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(b []byte) error {
	v, err := ParseAddress(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
