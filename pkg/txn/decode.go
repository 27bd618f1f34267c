// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package txn

import (
	"fmt"

	"github.com/fardream/go-bcs/bcs"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
)

// maxTypeDepth bounds type tag nesting, as the verifier does.
const maxTypeDepth = 8

// decoder walks the enums and sequences of a transaction itself and hands
// fixed-width values to go-bcs. go-bcs cannot allocate recursive enum
// variants such as vector<T>, panics on out-of-range variant indices, and
// trusts length prefixes, so none of those reach it.
type decoder struct {
	buf []byte
	pos int
}

func (d *decoder) fail(format string, args ...any) error {
	return errors.EncodingError.WithFormat("offset %d: %s", d.pos, fmt.Sprintf(format, args...))
}

// value decodes a fixed-width integer or a bool.
func (d *decoder) value(v any) error {
	n, err := bcs.Unmarshal(d.buf[d.pos:], v)
	if err != nil {
		return d.fail("%T: %v", v, err)
	}
	d.pos += n
	return nil
}

func (d *decoder) uleb128() (uint64, error) {
	var v uint64
	for shift := 0; shift < 64; shift += 7 {
		if d.pos >= len(d.buf) {
			return 0, d.fail("truncated varint")
		}
		b := d.buf[d.pos]
		d.pos++
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, d.fail("varint overflows 64 bits")
}

// length reads a sequence length. Every element takes at least one byte,
// so a length longer than the rest of the input is malformed.
func (d *decoder) length() (int, error) {
	n, err := d.uleb128()
	if err != nil {
		return 0, err
	}
	if n > uint64(len(d.buf)-d.pos) {
		return 0, d.fail("length %d exceeds the remaining %d bytes", n, len(d.buf)-d.pos)
	}
	return int(n), nil
}

func (d *decoder) bytes() ([]byte, error) {
	n, err := d.length()
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, d.buf[d.pos:])
	d.pos += n
	return b, nil
}

func (d *decoder) str() (string, error) {
	b, err := d.bytes()
	return string(b), err
}

func (d *decoder) variant(enum string, count uint64) (uint64, error) {
	i, err := d.uleb128()
	if err != nil {
		return 0, err
	}
	if i >= count {
		return 0, d.fail("%s has no variant %d", enum, i)
	}
	return i, nil
}

func (d *decoder) address() (move.Address, error) {
	var a move.Address
	if len(d.buf)-d.pos < len(a) {
		return a, d.fail("truncated address")
	}
	copy(a[:], d.buf[d.pos:])
	d.pos += len(a)
	return a, nil
}

func (d *decoder) rawTransaction(raw *RawTransaction) error {
	var err error
	raw.Sender, err = d.address()
	if err != nil {
		return err
	}
	if err = d.value(&raw.SequenceNumber); err != nil {
		return err
	}
	if err = d.payload(&raw.Payload); err != nil {
		return err
	}
	for _, v := range []any{&raw.MaxGasAmount, &raw.GasUnitPrice, &raw.ExpirationTimestampSecs, &raw.ChainID} {
		if err = d.value(v); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) payload(p *TransactionPayload) error {
	i, err := d.variant("TransactionPayload", 3)
	if err != nil {
		return err
	}

	switch i {
	case 0:
		s := new(Script)
		if s.Code, err = d.bytes(); err != nil {
			return err
		}
		if s.TypeArgs, err = d.typeTags(0); err != nil {
			return err
		}
		n, err := d.length()
		if err != nil {
			return err
		}
		s.Args = make([]ScriptArgument, n)
		for j := range s.Args {
			if err = d.scriptArgument(&s.Args[j]); err != nil {
				return err
			}
		}
		p.Script = s

	case 1:
		n, err := d.length()
		if err != nil {
			return err
		}
		b := &ModuleBundle{Modules: make([]Module, n)}
		for j := range b.Modules {
			if b.Modules[j].Code, err = d.bytes(); err != nil {
				return err
			}
		}
		p.ModuleBundle = b

	case 2:
		e := new(EntryFunction)
		if e.Module.Address, err = d.address(); err != nil {
			return err
		}
		if e.Module.Name, err = d.str(); err != nil {
			return err
		}
		if e.Function, err = d.str(); err != nil {
			return err
		}
		if e.TypeArgs, err = d.typeTags(0); err != nil {
			return err
		}
		n, err := d.length()
		if err != nil {
			return err
		}
		e.Args = make([][]byte, n)
		for j := range e.Args {
			if e.Args[j], err = d.bytes(); err != nil {
				return err
			}
		}
		p.EntryFunction = e
	}
	return nil
}

func (d *decoder) scriptArgument(a *ScriptArgument) error {
	i, err := d.variant("ScriptArgument", 6)
	if err != nil {
		return err
	}

	switch i {
	case 0:
		a.U8 = new(uint8)
		return d.value(a.U8)
	case 1:
		a.U64 = new(uint64)
		return d.value(a.U64)
	case 2:
		a.U128 = new([16]byte)
		if len(d.buf)-d.pos < 16 {
			return d.fail("truncated u128")
		}
		copy(a.U128[:], d.buf[d.pos:])
		d.pos += 16
		return nil
	case 3:
		addr, err := d.address()
		a.Address = &addr
		return err
	case 4:
		b, err := d.bytes()
		a.U8Vector = &b
		return err
	default:
		a.Bool = new(bool)
		return d.value(a.Bool)
	}
}

func (d *decoder) typeTags(depth int) ([]move.TypeTag, error) {
	n, err := d.length()
	if err != nil {
		return nil, err
	}
	tags := make([]move.TypeTag, n)
	for i := range tags {
		if err = d.typeTag(&tags[i], depth); err != nil {
			return nil, err
		}
	}
	return tags, nil
}

func (d *decoder) typeTag(t *move.TypeTag, depth int) error {
	if depth > maxTypeDepth {
		return d.fail("type tag nested deeper than %d", maxTypeDepth)
	}

	i, err := d.variant("TypeTag", 11)
	if err != nil {
		return err
	}

	switch i {
	case 0:
		*t = move.TagBool
	case 1:
		*t = move.TagU8
	case 2:
		*t = move.TagU64
	case 3:
		*t = move.TagU128
	case 4:
		*t = move.TagAddress
	case 5:
		*t = move.TagSigner
	case 6:
		elem := new(move.TypeTag)
		if err = d.typeTag(elem, depth+1); err != nil {
			return err
		}
		*t = move.TypeTag{Vector: elem}
	case 7:
		s := new(move.StructTag)
		if s.Address, err = d.address(); err != nil {
			return err
		}
		if s.Module, err = d.str(); err != nil {
			return err
		}
		if s.Name, err = d.str(); err != nil {
			return err
		}
		if s.TypeArgs, err = d.typeTags(depth + 1); err != nil {
			return err
		}
		*t = move.TypeTag{Struct: s}
	case 8:
		*t = move.TagU16
	case 9:
		*t = move.TagU32
	case 10:
		*t = move.TagU256
	}
	return nil
}

func (d *decoder) authenticator(a *Authenticator) error {
	i, err := d.variant("TransactionAuthenticator", 2)
	if err != nil {
		return err
	}

	pub, err := d.bytes()
	if err != nil {
		return err
	}
	sig, err := d.bytes()
	if err != nil {
		return err
	}
	if i == 0 {
		a.Ed25519 = &Ed25519Authenticator{PublicKey: pub, Signature: sig}
	} else {
		a.MultiEd25519 = &MultiEd25519Authenticator{PublicKey: pub, Signature: sig}
	}
	return nil
}
