// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package node

import (
	"fmt"

	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
)

// Error is an error response from the node.
type Error struct {
	HTTPStatus  int     `json:"-"`
	Message     string  `json:"message"`
	ErrorCode   string  `json:"error_code"`
	VMErrorCode *uint64 `json:"vm_error_code,omitempty"`
}

func (e *Error) Error() string {
	if e.ErrorCode == "" {
		return fmt.Sprintf("node responded with %d: %s", e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.ErrorCode)
}

// ErrorCode returns the node error code carried by err, or an empty string.
func ErrorCode(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.ErrorCode
}

// IsNotFound returns true if err is a not-found response with one of the
// given node error codes, or any not-found response if no codes are given.
func IsNotFound(err error, codes ...string) bool {
	if errors.Code(err) != errors.NotFound {
		return false
	}
	if len(codes) == 0 {
		return true
	}
	code := ErrorCode(err)
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// statusFor maps an HTTP status to an error status. Server errors are
// network errors: the request may be retried.
func statusFor(httpStatus int) errors.Status {
	switch {
	case httpStatus == 404:
		return errors.NotFound
	case httpStatus == 401 || httpStatus == 403:
		return errors.Unauthenticated
	case httpStatus >= 400 && httpStatus < 500:
		return errors.BadRequest
	case httpStatus >= 500:
		return errors.NetworkError
	default:
		return errors.UnknownError
	}
}
