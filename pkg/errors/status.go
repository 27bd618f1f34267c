// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"fmt"
	"strings"
)

// Status is a request or transaction status code.
type Status uint64

const (
	// OK means the request completed successfully.
	OK Status = 200

	// Delivered means the transaction was executed successfully.
	Delivered Status = 201

	// Pending means the transaction was accepted but has not been executed.
	Pending Status = 202

	// BadRequest means the request was malformed.
	BadRequest Status = 400

	// Unauthenticated means the signature could not be verified.
	Unauthenticated Status = 401

	// NotFound means the requested record does not exist.
	NotFound Status = 404

	// BadFunctionID means an entry function identifier could not be parsed.
	BadFunctionID Status = 406

	// Timeout means the outcome of a transaction is unknown because finality
	// was not observed in time. The transaction may still execute.
	Timeout Status = 408

	// Conflict means the sequence number was already used or is too new.
	Conflict Status = 409

	// Aborted means the transaction executed and failed on chain.
	Aborted Status = 417

	// Rejected means the node refused to accept the transaction.
	Rejected Status = 422

	// SequenceQueryFailed means the sender's sequence number could not be
	// read.
	SequenceQueryFailed Status = 424

	// ReadFailed means a resource read failed for a reason other than the
	// resource being absent.
	ReadFailed Status = 425

	// InternalError means something went wrong inside the client.
	InternalError Status = 500

	// UnknownError means the cause is unknown.
	UnknownError Status = 501

	// EncodingError means a value could not be encoded or decoded.
	EncodingError Status = 502

	// NetworkError means the node could not be reached or returned a
	// transient server error.
	NetworkError Status = 503
)

var statusNames = map[Status]string{
	OK:                  "ok",
	Delivered:           "delivered",
	Pending:             "pending",
	BadRequest:          "bad request",
	Unauthenticated:     "unauthenticated",
	NotFound:            "not found",
	BadFunctionID:       "bad function id",
	Timeout:             "timeout",
	Conflict:            "conflict",
	Aborted:             "aborted",
	Rejected:            "rejected",
	SequenceQueryFailed: "sequence query failed",
	ReadFailed:          "read failed",
	InternalError:       "internal error",
	UnknownError:        "unknown error",
	EncodingError:       "encoding error",
	NetworkError:        "network error",
}

// String returns the name of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", uint64(s))
}

// StatusByName looks up a status by name. Matching is case-insensitive and
// ignores dashes and underscores.
func StatusByName(name string) (Status, bool) {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(strings.ToLower(name))
	for s, n := range statusNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	v, ok := StatusByName(string(b))
	if !ok {
		return fmt.Errorf("%q is not a valid status", b)
	}
	*s = v
	return nil
}
