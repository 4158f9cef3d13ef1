package storage

import (
	"context"
	"sync"
)

// Memory is an in-process KV. Writes counts successful Put and Delete calls.
type Memory struct {
	mu     sync.Mutex
	data   map[string][]byte
	Writes int
	// Fail, when set, is returned by every Put and Delete.
	Fail error
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.data[key] = append([]byte(nil), value...)
	m.Writes++
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	delete(m.data, key)
	m.Writes++
	return nil
}

func (m *Memory) Close() error { return nil }
