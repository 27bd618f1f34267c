// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger"
	"gitlab.com/accumulatenetwork/moveclient/internal/logging"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"golang.org/x/exp/slog"
)

var entryPrefix = []byte("txn/")

// Badger is a journal persisted in a Badger database.
type Badger struct {
	badger *badger.DB
	logger *slog.Logger
	ready  bool
	mu     sync.RWMutex
	done   chan struct{}
}

var _ Journal = (*Badger)(nil)

// OpenBadger opens or creates a journal in the directory.
func OpenBadger(dir string, logger *slog.Logger) (*Badger, error) {
	// Make sure all directories exist
	err := os.MkdirAll(dir, 0700)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open journal: create %q: %w", dir, err)
	}

	logger = logging.OrDiscard(logger).With("module", "journal")
	opts := badger.DefaultOptions(dir)
	opts = opts.WithLogger(Slogger{logger})

	d := new(Badger)
	d.logger = logger
	d.done = make(chan struct{})
	d.badger, err = badger.Open(opts)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open journal: %w", err)
	}
	d.ready = true
	mDbOpen.Inc()

	go d.gc(time.Hour)
	return d, nil
}

func key(hash string) []byte {
	return append(append([]byte{}, entryPrefix...), normalize(hash)...)
}

func (d *Badger) Put(e *Entry) error {
	l, err := d.lock(false)
	if err != nil {
		return err
	}
	defer l.Unlock()

	b, err := json.Marshal(e)
	if err != nil {
		return errors.EncodingError.WithFormat("encode journal entry: %w", err)
	}

	err = d.badger.Update(func(txn *badger.Txn) error {
		return txn.Set(key(e.Hash), b)
	})
	if err != nil {
		return errors.UnknownError.WithFormat("put %s: %w", e.Hash, err)
	}
	return nil
}

func (d *Badger) Get(hash string) (*Entry, error) {
	l, err := d.lock(false)
	if err != nil {
		return nil, err
	}
	defer l.Unlock()

	var e *Entry
	err = d.badger.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(hash))
		if err != nil {
			return err
		}
		v, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		e, err = decodeEntry(v)
		return err
	})
	switch {
	case err == nil:
		return e, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, errors.NotFound.WithFormat("transaction %s is not in the journal", hash)
	default:
		return nil, errors.UnknownError.WithFormat("get %s: %w", hash, err)
	}
}

func (d *Badger) Unresolved() ([]*Entry, error) {
	l, err := d.lock(false)
	if err != nil {
		return nil, err
	}
	defer l.Unlock()

	var entries []*Entry
	err = d.badger.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(entryPrefix); it.ValidForPrefix(entryPrefix); it.Next() {
			v, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			e, err := decodeEntry(v)
			if err != nil {
				return err
			}
			if e.Unresolved() {
				entries = append(entries, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.UnknownError.WithFormat("scan journal: %w", err)
	}
	sortEntries(entries)
	return entries, nil
}

// Close closes the underlying database.
func (d *Badger) Close() error {
	if l, err := d.lock(true); err != nil {
		return err
	} else {
		defer l.Unlock()
	}

	d.ready = false
	close(d.done)
	mDbOpen.Dec()
	return d.badger.Close()
}

func decodeEntry(b []byte) (*Entry, error) {
	e := new(Entry)
	err := json.Unmarshal(b, e)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("decode journal entry: %w", err)
	}
	return e, nil
}

func (d *Badger) gc(interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		select {
		case <-d.done:
			return
		case <-tick.C:
		}

		// Still open?
		l, err := d.lock(false)
		if err != nil {
			return
		}

		// Run GC if 50% space could be reclaimed
		start := time.Now()
		err = d.badger.RunValueLogGC(0.5)
		if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
			d.logger.Error("Badger GC failed", "error", err)
		}
		mGcRun.Inc()
		mGcDuration.Set(time.Since(start).Seconds())

		l.Unlock()
	}
}

// lock acquires a lock on the ready mutex and checks for readiness, so
// operations cannot race with Close.
func (d *Badger) lock(closing bool) (sync.Locker, error) {
	var l sync.Locker = &d.mu
	if !closing {
		l = d.mu.RLocker()
	}

	l.Lock()
	if !d.ready {
		l.Unlock()
		return nil, errors.BadRequest.With("journal is closed")
	}

	return l, nil
}

// Slogger adapts a slog logger to Badger's logger interface.
type Slogger struct {
	Logger *slog.Logger
}

func (l Slogger) format(format string, args ...interface{}) string {
	s := fmt.Sprintf(format, args...)
	return strings.TrimRight(s, "\n")
}

func (l Slogger) Errorf(format string, args ...interface{}) {
	l.Logger.Error(l.format(format, args...))
}

func (l Slogger) Warningf(format string, args ...interface{}) {
	l.Logger.Warn(l.format(format, args...))
}

func (l Slogger) Infof(format string, args ...interface{}) {
	l.Logger.Info(l.format(format, args...))
}

func (l Slogger) Debugf(format string, args ...interface{}) {
	l.Logger.Debug(l.format(format, args...))
}
