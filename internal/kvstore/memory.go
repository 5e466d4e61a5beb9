package kvstore

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore keeps entries in process memory.
type MemoryStore struct {
	data  map[string][]byte
	mutex sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mutex.RLock()
	value, found := m.data[key]
	m.mutex.RUnlock()

	if !found {
		return nil, ErrNotFound
	}

	return append([]byte(nil), value...), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mutex.Lock()
	m.data[key] = append([]byte(nil), value...)
	m.mutex.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mutex.Lock()
	delete(m.data, key)
	m.mutex.Unlock()
	return nil
}

func (m *MemoryStore) ListByPrefix(_ context.Context, prefix string) ([]Entry, error) {
	m.mutex.RLock()
	entries := make([]Entry, 0)
	for key, value := range m.data {
		if strings.HasPrefix(key, prefix) {
			entries = append(entries, Entry{Key: key, Value: append([]byte(nil), value...)})
		}
	}
	m.mutex.RUnlock()

	sortEntries(entries)
	return entries, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
