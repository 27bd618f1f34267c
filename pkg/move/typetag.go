// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package move

import (
	"strings"
)

// TypeTag is a Move type. It is a BCS enum: exactly one field is set, and
// the variant index is the field's position.
//
//	0 bool, 1 u8, 2 u64, 3 u128, 4 address, 5 signer, 6 vector<T>,
//	7 struct, 8 u16, 9 u32, 10 u256
//
// The field order is part of the wire format and must not change.
type TypeTag struct {
	Bool    *struct{}
	U8      *struct{}
	U64     *struct{}
	U128    *struct{}
	Address *struct{}
	Signer  *struct{}
	Vector  *TypeTag
	Struct  *StructTag
	U16     *struct{}
	U32     *struct{}
	U256    *struct{}
}

// IsBcsEnum marks TypeTag as a BCS enum.
func (TypeTag) IsBcsEnum() {}

// StructTag is a fully qualified struct type with its type arguments.
type StructTag struct {
	Address  Address
	Module   string
	Name     string
	TypeArgs []TypeTag
}

func unit() *struct{} { return &struct{}{} }

// Primitive type tags.
var (
	TagBool    = TypeTag{Bool: unit()}
	TagU8      = TypeTag{U8: unit()}
	TagU16     = TypeTag{U16: unit()}
	TagU32     = TypeTag{U32: unit()}
	TagU64     = TypeTag{U64: unit()}
	TagU128    = TypeTag{U128: unit()}
	TagU256    = TypeTag{U256: unit()}
	TagAddress = TypeTag{Address: unit()}
	TagSigner  = TypeTag{Signer: unit()}
)

var primitives = map[string]TypeTag{
	"bool":    TagBool,
	"u8":      TagU8,
	"u16":     TagU16,
	"u32":     TagU32,
	"u64":     TagU64,
	"u128":    TagU128,
	"u256":    TagU256,
	"address": TagAddress,
	"signer":  TagSigner,
}

// VectorOf returns vector<t>.
func VectorOf(t TypeTag) TypeTag {
	return TypeTag{Vector: &t}
}

// StructOf returns the struct type addr::module::name<args...>.
func StructOf(addr Address, module, name string, args ...TypeTag) TypeTag {
	return TypeTag{Struct: &StructTag{Address: addr, Module: module, Name: name, TypeArgs: args}}
}

// AptosCoin is the native coin type, 0x1::aptos_coin::AptosCoin.
var AptosCoin = StructOf(AddressOne, "aptos_coin", "AptosCoin")

// ParseTypeTag parses a type such as u64, vector<u8>, or
// 0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin>.
func ParseTypeTag(s string) (TypeTag, error) {
	p := &typeParser{src: s}
	t, err := p.parseType()
	if err != nil {
		return TypeTag{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return TypeTag{}, badTypeTag(s, "unexpected trailing input")
	}
	return t, nil
}

// MustParseTypeTag calls ParseTypeTag and panics if it returns an error.
func MustParseTypeTag(s string) TypeTag {
	t, err := ParseTypeTag(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseStructTag parses a struct type. Resource paths are struct tags.
func ParseStructTag(s string) (*StructTag, error) {
	t, err := ParseTypeTag(s)
	if err != nil {
		return nil, err
	}
	if t.Struct == nil {
		return nil, badTypeTag(s, "not a struct type")
	}
	return t.Struct, nil
}

// Kind returns the keyword for primitive types, "vector", or "struct". It
// returns an empty string for an empty tag.
func (t TypeTag) Kind() string {
	switch {
	case t.Bool != nil:
		return "bool"
	case t.U8 != nil:
		return "u8"
	case t.U16 != nil:
		return "u16"
	case t.U32 != nil:
		return "u32"
	case t.U64 != nil:
		return "u64"
	case t.U128 != nil:
		return "u128"
	case t.U256 != nil:
		return "u256"
	case t.Address != nil:
		return "address"
	case t.Signer != nil:
		return "signer"
	case t.Vector != nil:
		return "vector"
	case t.Struct != nil:
		return "struct"
	}
	return ""
}

func (t TypeTag) String() string {
	switch {
	case t.Vector != nil:
		return "vector<" + t.Vector.String() + ">"
	case t.Struct != nil:
		return t.Struct.String()
	}
	return t.Kind()
}

// Equal returns true if both tags describe the same type.
func (t TypeTag) Equal(u TypeTag) bool {
	return t.String() == u.String()
}

// String returns the canonical resource path, for example
// 0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin>.
func (s *StructTag) String() string {
	var b strings.Builder
	b.WriteString(s.Address.String())
	b.WriteString("::")
	b.WriteString(s.Module)
	b.WriteString("::")
	b.WriteString(s.Name)
	if len(s.TypeArgs) > 0 {
		b.WriteByte('<')
		for i, a := range s.TypeArgs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteByte('>')
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (t TypeTag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TypeTag) UnmarshalText(b []byte) error {
	v, err := ParseTypeTag(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) word() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '<', '>', ',', ' ', '\t':
			return p.src[start:p.pos]
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *typeParser) parseType() (TypeTag, error) {
	w := p.word()
	if w == "" {
		return TypeTag{}, badTypeTag(p.src, "expected a type")
	}

	if t, ok := primitives[w]; ok {
		return t, nil
	}

	if w == "vector" {
		args, err := p.parseArgs()
		if err != nil {
			return TypeTag{}, err
		}
		if len(args) != 1 {
			return TypeTag{}, badTypeTag(p.src, "vector takes exactly one type argument")
		}
		return VectorOf(args[0]), nil
	}

	parts := strings.Split(w, "::")
	if len(parts) != 3 {
		return TypeTag{}, badTypeTag(p.src, "unknown type "+w)
	}
	addr, err := ParseAddress(parts[0])
	if err != nil {
		return TypeTag{}, badTypeTag(p.src, err.Error())
	}
	if !IsIdentifier(parts[1]) || !IsIdentifier(parts[2]) {
		return TypeTag{}, badTypeTag(p.src, "invalid module or struct name in "+w)
	}

	var args []TypeTag
	if p.peek() == '<' {
		args, err = p.parseArgs()
		if err != nil {
			return TypeTag{}, err
		}
	}
	return StructOf(addr, parts[1], parts[2], args...), nil
}

func (p *typeParser) parseArgs() ([]TypeTag, error) {
	if p.peek() != '<' {
		return nil, badTypeTag(p.src, "expected '<'")
	}
	p.pos++

	var args []TypeTag
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, t)

		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return args, nil
		default:
			return nil, badTypeTag(p.src, "expected ',' or '>'")
		}
	}
}
