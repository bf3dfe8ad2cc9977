package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileMirror stores all keys in one JSON object on disk. Writes replace the
// file atomically.
type FileMirror struct {
	path string
	mu   sync.Mutex
}

// NewFileMirror returns a mirror backed by path. The file is created on first write.
func NewFileMirror(path string) *FileMirror {
	return &FileMirror{path: path}
}

// Path returns the backing file location.
func (m *FileMirror) Path() string {
	return m.path
}

func (m *FileMirror) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.load()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (m *FileMirror) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.load()
	if err != nil {
		return err
	}
	data[key] = value
	return m.save(data)
}

func (m *FileMirror) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.load()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return m.save(data)
}

func (m *FileMirror) load() (map[string]string, error) {
	raw, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read mirror %s: %w", m.path, err)
	}

	data := map[string]string{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode mirror %s: %w", m.path, err)
	}
	return data, nil
}

func (m *FileMirror) save(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode mirror: %w", err)
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create mirror dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(m.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp mirror: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp mirror: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp mirror: %w", err)
	}
	if err := os.Rename(tmp.Name(), m.path); err != nil {
		return fmt.Errorf("replace mirror: %w", err)
	}
	return nil
}
