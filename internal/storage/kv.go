// Package storage implements the persistence collaborator: a small key-value
// contract with memory and SQLite backends, and a typed Repository that
// serializes the domain collections as JSON blobs under stable keys.
package storage

import (
	"context"
	"sync"
)

// KV is the backing store contract. A read after a completed write on the
// same key returns the written value; PutAll applies all pairs atomically,
// which the label rename cascade relies on to never leave transactions
// pointing at a vanished label id.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) error
	PutAll(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	Reset(ctx context.Context) error
	Close() error
}

// MemoryKV is an in-process KV store. It is the default backend and the one
// tests run against.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKV) PutAll(_ context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *MemoryKV) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string]string)
	return nil
}

func (m *MemoryKV) Close() error { return nil }
