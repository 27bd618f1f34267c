// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package build

import (
	"math/big"
	"strings"

	"github.com/fardream/go-bcs/bcs"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
)

type Errors []error

func (e Errors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var errs []string
	for _, e := range e {
		errs = append(errs, e.Error())
	}
	return strings.Join(errs, "; ")
}

// Is matches if any of the errors match, so callers can test a builder error
// for a status code.
func (e Errors) Is(target error) bool {
	for _, e := range e {
		if errors.Is(e, target) {
			return true
		}
	}
	return false
}

type parser struct {
	errs []error
}

func (p *parser) ok() bool {
	return len(p.errs) == 0
}

func (p *parser) err() error {
	switch len(p.errs) {
	case 0:
		return nil
	case 1:
		return p.errs[0]
	default:
		return Errors(p.errs)
	}
}

func (p *parser) record(err ...error) {
	errs := make([]error, 0, len(p.errs)+len(err))
	errs = append(errs, p.errs...)
	errs = append(errs, err...)
	p.errs = errs
}

func (p *parser) errorf(code errors.Status, format string, args ...interface{}) {
	p.record(code.Skip(1).WithFormat(format, args...))
}

func (p *parser) parseAddress(v any) move.Address {
	switch v := v.(type) {
	case move.Address:
		return v
	case *move.Address:
		return *v
	case interface{ Address() move.Address }:
		return v.Address()
	case string:
		a, err := move.ParseAddress(v)
		if err != nil {
			p.errorf(errors.BadRequest, "invalid address: %w", err)
		}
		return a
	case []byte:
		if len(v) != len(move.Address{}) {
			p.errorf(errors.BadRequest, "invalid address length %d", len(v))
			return move.Address{}
		}
		return move.Address(v)
	default:
		p.errorf(errors.BadRequest, "cannot convert %T to an address", v)
		return move.Address{}
	}
}

func (p *parser) parseFunctionID(v any) *move.FunctionID {
	switch v := v.(type) {
	case *move.FunctionID:
		return v
	case move.FunctionID:
		return &v
	case string:
		fn, err := move.ParseFunctionID(v)
		if err != nil {
			p.errorf(errors.BadFunctionID, "%w", err)
			return nil
		}
		return fn
	default:
		p.errorf(errors.BadFunctionID, "cannot convert %T to a function id", v)
		return nil
	}
}

func (p *parser) parseTypeTag(v any) (move.TypeTag, bool) {
	switch v := v.(type) {
	case move.TypeTag:
		return v, true
	case *move.StructTag:
		return move.TypeTag{Struct: v}, true
	case string:
		t, err := move.ParseTypeTag(v)
		if err != nil {
			p.errorf(errors.BadRequest, "invalid type argument: %w", err)
			return move.TypeTag{}, false
		}
		return t, true
	default:
		p.errorf(errors.BadRequest, "cannot convert %T to a type tag", v)
		return move.TypeTag{}, false
	}
}

func (p *parser) parseArg(v any) []byte {
	b, err := Encode(v)
	if err != nil {
		p.record(err)
	}
	return b
}

// Encode returns the canonical encoding of an entry function argument. The
// Move type is chosen by the Go type:
//
//	bool                      bool
//	uint8, 16, 32, 64         u8, u16, u32, u64
//	move.U64                  u64
//	move.U128, *big.Int       u128
//	move.Address              address
//	string                    0x1::string::String
//	[]byte                    vector<u8>
//	[]string, [][]byte        vector<String>, vector<vector<u8>>
//	[]move.Address, []uint64  vector<address>, vector<u64>
//
// Plain int is rejected because its Move width is ambiguous.
func Encode(v any) ([]byte, error) {
	switch x := v.(type) {
	case bool, uint8, uint16, uint32, uint64, string, []byte,
		[]string, [][]byte, []uint64, []bool:
		return marshal(x)
	case move.U64:
		return marshal(uint64(x))
	case move.Address:
		return x[:], nil
	case *move.Address:
		return x[:], nil
	case []move.Address:
		return marshal(x)
	case move.U128:
		b := x.LittleEndian()
		return b[:], nil
	case *move.U128:
		b := x.LittleEndian()
		return b[:], nil
	case *big.Int:
		u, err := move.NewU128FromBig(x)
		if err != nil {
			return nil, errors.BadRequest.WithFormat("u128 argument: %w", err)
		}
		b := u.LittleEndian()
		return b[:], nil
	case int, int8, int16, int32, int64:
		return nil, errors.BadRequest.WithFormat("cannot encode %T: use a sized unsigned type", v)
	case nil:
		return nil, errors.BadRequest.With("cannot encode a nil argument")
	default:
		return nil, errors.BadRequest.WithFormat("cannot encode %T as a Move argument", v)
	}
}

func marshal(v any) ([]byte, error) {
	b, err := bcs.Marshal(v)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("encode %T: %w", v, err)
	}
	return b, nil
}
