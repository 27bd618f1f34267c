// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package txn

import (
	"fmt"
	"strings"
)

// State is the lifecycle state of a transaction, as seen by the client.
//
//	BUILT -> SUBMITTED -> CONFIRMED | ABORTED | TIMEOUT | NETWORK_ERROR
//	BUILT -> ABORTED | NETWORK_ERROR
//
// CONFIRMED and ABORTED are final. TIMEOUT, and NETWORK_ERROR after
// submission, mean the outcome is unknown: the transaction may still commit
// until it expires.
type State uint8

const (
	StateUnknown State = iota
	StateBuilt
	StateSubmitted
	StateConfirmed
	StateAborted
	StateTimeout
	StateNetworkError
)

var stateNames = [...]string{
	StateUnknown:      "unknown",
	StateBuilt:        "built",
	StateSubmitted:    "submitted",
	StateConfirmed:    "confirmed",
	StateAborted:      "aborted",
	StateTimeout:      "timeout",
	StateNetworkError: "network_error",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", s)
}

// Final returns true if the state can no longer change.
func (s State) Final() bool {
	switch s {
	case StateConfirmed, StateAborted:
		return true
	}
	return false
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	name := strings.ToLower(string(b))
	for i, n := range stateNames {
		if n == name {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown transaction state %q", b)
}
