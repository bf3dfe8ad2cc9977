package mirror

import (
	"context"
	"sync"
)

// MemoryMirror is an in-process mirror. A positive quota caps the total size
// of stored values in bytes, in the manner of browser storage.
type MemoryMirror struct {
	mu    sync.Mutex
	data  map[string]string
	quota int
	err   error
}

// NewMemoryMirror returns an empty mirror. quota <= 0 means unlimited.
func NewMemoryMirror(quota int) *MemoryMirror {
	return &MemoryMirror{data: map[string]string{}, quota: quota}
}

// FailWith makes every subsequent operation return err. Pass nil to recover.
func (m *MemoryMirror) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Snapshot returns a copy of the stored keys.
func (m *MemoryMirror) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}

func (m *MemoryMirror) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryMirror) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	if m.quota > 0 && m.usedWithout(key)+len(value) > m.quota {
		return ErrQuotaExceeded
	}
	m.data[key] = value
	return nil
}

func (m *MemoryMirror) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	delete(m.data, key)
	return nil
}

func (m *MemoryMirror) usedWithout(key string) int {
	used := 0
	for k, v := range m.data {
		if k != key {
			used += len(v)
		}
	}
	return used
}
