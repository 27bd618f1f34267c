// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package move

import (
	"errors"
	"fmt"
)

// ErrBadAddress means a string is not a valid account address.
var ErrBadAddress = errors.New("invalid address")

// ErrBadIdentifier means a module, function, or struct name is not a valid
// Move identifier.
var ErrBadIdentifier = errors.New("invalid identifier")

// ErrBadFunctionID means a string is not of the form address::module::function.
var ErrBadFunctionID = errors.New("invalid function id")

// ErrBadTypeTag means a string is not a valid type tag.
var ErrBadTypeTag = errors.New("invalid type tag")

func badAddress(s string, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrBadAddress, s, reason)
}

func badIdentifier(s string) error {
	return fmt.Errorf("%w %q", ErrBadIdentifier, s)
}

func badFunctionID(s string, err error) error {
	if err == nil {
		return fmt.Errorf("%w %q", ErrBadFunctionID, s)
	}
	return fmt.Errorf("%w %q: %v", ErrBadFunctionID, s, err)
}

func badTypeTag(s string, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrBadTypeTag, s, reason)
}
