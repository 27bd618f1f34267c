// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package journal

import (
	"sync"

	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
)

// Memory is an in-memory journal. The zero value is ready to use.
type Memory struct {
	mu      sync.Mutex
	entries map[string]Entry
}

var _ Journal = (*Memory)(nil)

func NewMemory() *Memory {
	return new(Memory)
}

func (m *Memory) Put(e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = map[string]Entry{}
	}
	m.entries[normalize(e.Hash)] = *e
	return nil
}

func (m *Memory) Get(hash string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[normalize(hash)]
	if !ok {
		return nil, errors.NotFound.WithFormat("transaction %s is not in the journal", hash)
	}
	return &e, nil
}

func (m *Memory) Unresolved() ([]*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var entries []*Entry
	for _, e := range m.entries {
		e := e
		if e.Unresolved() {
			entries = append(entries, &e)
		}
	}
	sortEntries(entries)
	return entries, nil
}

func (m *Memory) Close() error { return nil }
