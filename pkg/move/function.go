// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package move

import (
	"strings"
)

// ModuleID identifies a published module. It is encoded as the address
// followed by the name.
type ModuleID struct {
	Address Address
	Name    string
}

func (m ModuleID) String() string {
	return m.Address.String() + "::" + m.Name
}

// FunctionID identifies an entry function: module address, module name,
// function name.
type FunctionID struct {
	Module ModuleID
	Name   string
}

// ParseFunctionID parses a string of the form address::module::function.
func ParseFunctionID(s string) (*FunctionID, error) {
	parts := strings.Split(s, "::")
	if len(parts) != 3 {
		return nil, badFunctionID(s, nil)
	}
	addr, err := ParseAddress(parts[0])
	if err != nil {
		return nil, badFunctionID(s, err)
	}
	if !IsIdentifier(parts[1]) {
		return nil, badFunctionID(s, badIdentifier(parts[1]))
	}
	if !IsIdentifier(parts[2]) {
		return nil, badFunctionID(s, badIdentifier(parts[2]))
	}
	return &FunctionID{Module: ModuleID{Address: addr, Name: parts[1]}, Name: parts[2]}, nil
}

// MustParseFunctionID calls ParseFunctionID and panics if it returns an
// error.
func MustParseFunctionID(s string) *FunctionID {
	f, err := ParseFunctionID(s)
	if err != nil {
		panic(err)
	}
	return f
}

// NewFunctionID returns the function id for addr::module::name. It does not
// validate the identifiers.
func NewFunctionID(addr Address, module, name string) *FunctionID {
	return &FunctionID{Module: ModuleID{Address: addr, Name: module}, Name: name}
}

func (f *FunctionID) String() string {
	return f.Module.String() + "::" + f.Name
}

// Equal returns true if both IDs name the same function.
func (f *FunctionID) Equal(g *FunctionID) bool {
	if f == g {
		return true
	}
	if f == nil || g == nil {
		return false
	}
	return *f == *g
}

// IsIdentifier returns true if s is a valid Move identifier: a letter
// followed by letters, digits, or underscores, or an underscore followed by
// at least one of those.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c == '_':
			if len(s) == 1 {
				return false
			}
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
