// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package journal records submitted transactions so that an unknown outcome
// can be reconciled later instead of blindly resubmitted.
package journal

import (
	"sort"
	"strings"
	"time"

	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"gitlab.com/accumulatenetwork/moveclient/pkg/txn"
)

// Entry is the journal record of one submission.
type Entry struct {
	Hash           string       `json:"hash"`
	Sender         move.Address `json:"sender"`
	SequenceNumber uint64       `json:"sequenceNumber"`
	Function       string       `json:"function,omitempty"`
	State          txn.State    `json:"state"`
	VMStatus       string       `json:"vmStatus,omitempty"`
	Error          string       `json:"error,omitempty"`
	Submitted      time.Time    `json:"submitted"`
	Updated        time.Time    `json:"updated"`
	Expiration     time.Time    `json:"expiration"`
}

// Unresolved returns true if the entry's outcome is not known.
func (e *Entry) Unresolved() bool {
	return e.Hash != "" && !e.State.Final()
}

// Journal stores entries by transaction hash.
type Journal interface {
	// Put creates or replaces the entry.
	Put(e *Entry) error

	// Get returns the entry for the hash, or a NotFound error.
	Get(hash string) (*Entry, error)

	// Unresolved returns every entry whose outcome is not known, ordered by
	// sender and sequence number.
	Unresolved() ([]*Entry, error)

	Close() error
}

func normalize(hash string) string {
	return strings.ToLower(hash)
}

func sortEntries(entries []*Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if c := strings.Compare(a.Sender.String(), b.Sender.String()); c != 0 {
			return c < 0
		}
		return a.SequenceNumber < b.SequenceNumber
	})
}
