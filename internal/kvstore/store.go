// Package kvstore is the byte-oriented key-value layer under the client's
// local project store. Backends are chosen by URL scheme in Open.
package kvstore

import (
	"context"
	"errors"
	"sort"
)

var ErrNotFound = errors.New("kvstore: key not found")

type Entry struct {
	Key   string
	Value []byte
}

type Store interface {
	// Get returns ErrNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
	// ListByPrefix returns matching entries sorted by key.
	ListByPrefix(ctx context.Context, prefix string) ([]Entry, error)
	Close() error
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
}
