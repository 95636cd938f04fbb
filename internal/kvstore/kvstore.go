// TokenSim - Asset Tokenization Simulator
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package kvstore is a small badger-backed key/value store used for the
// session record and the project listing cache.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned when a key does not exist or has expired.
var ErrNotFound = errors.New("key not found")

// Options configures Open.
type Options struct {
	Dir      string // on-disk directory (ignored when InMemory is true)
	InMemory bool   // keep everything in memory (tests, --no-cache)
	ReadOnly bool
}

// Store wraps a badger database.
type Store struct {
	db *badger.DB
}

// Open opens or creates the store. A directory left with a torn WAL is
// recovered by opening it once in write mode.
func Open(opts Options) (*Store, error) {
	bopts := badgerOptions(opts)

	db, err := badger.Open(bopts)
	if err != nil && !opts.InMemory && needsTruncation(err) {
		rdb, rerr := badger.Open(badgerOptions(Options{Dir: opts.Dir}))
		if rerr != nil {
			return nil, fmt.Errorf("opening kv store: %w", err)
		}
		if cerr := rdb.Close(); cerr != nil {
			return nil, cerr
		}
		db, err = badger.Open(bopts)
	}
	if err != nil {
		return nil, fmt.Errorf("opening kv store: %w", err)
	}
	return &Store{db: db}, nil
}

func badgerOptions(opts Options) badger.Options {
	bopts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.Logger = nil
	if opts.ReadOnly && !opts.InMemory {
		bopts = bopts.WithReadOnly(true).WithBypassLockGuard(true)
	}
	return bopts
}

func needsTruncation(err error) bool {
	return strings.Contains(err.Error(), "Log truncate required") ||
		strings.Contains(err.Error(), "MANIFEST has unsupported version")
}

func (s *Store) Get(key []byte) ([]byte, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

func (s *Store) Set(key, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// SetWithTTL stores value; it reads as ErrNotFound once ttl has passed.
// A zero ttl stores without expiry.
func (s *Store) SetWithTTL(key, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return s.Set(key, value)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key, value).WithTTL(ttl))
	})
}

func (s *Store) Delete(key []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// Iterate calls fn for every key with the given prefix, in key order.
// Iteration stops at the first error fn returns.
func (s *Store) Iterate(prefix []byte, fn func(key, value []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(item.KeyCopy(nil), v); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetJSON decodes the value stored at key into v.
func (s *Store) GetJSON(key string, v any) error {
	data, err := s.Get([]byte(key))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it at key with an optional ttl.
func (s *Store) SetJSON(key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.SetWithTTL([]byte(key), data, ttl)
}

func (s *Store) Close() error {
	s.runGC()
	return s.db.Close()
}

func (s *Store) runGC() {
	for {
		if s.db.RunValueLogGC(0.5) != nil {
			return
		}
	}
}
