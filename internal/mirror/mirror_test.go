package mirror

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapEntryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func (s *mapEntryStore) SaveEntry(_ context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = value
	return nil
}

func (s *mapEntryStore) GetEntry(_ context.Context, name string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[name]
	return v, ok, nil
}

func (s *mapEntryStore) DeleteEntry(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

func TestMirrorBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) Mirror{
		"file": func(t *testing.T) Mirror {
			return NewFileMirror(filepath.Join(t.TempDir(), "state", "mirror.json"))
		},
		"memory": func(t *testing.T) Mirror {
			return NewMemoryMirror(0)
		},
		"datastore": func(t *testing.T) Mirror {
			return NewDatastoreMirror(&mapEntryStore{data: map[string]string{}})
		},
	}

	for name, newMirror := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			m := newMirror(t)

			_, ok, err := m.Get(ctx, KeyReviews)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, m.Set(ctx, KeyReviews, `[{"id":1}]`))
			require.NoError(t, m.Set(ctx, KeyAuth, AuthTrue))

			v, ok, err := m.Get(ctx, KeyReviews)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"id":1}]`, v)

			require.NoError(t, m.Set(ctx, KeyReviews, `[]`))
			v, _, _ = m.Get(ctx, KeyReviews)
			assert.Equal(t, `[]`, v)

			require.NoError(t, m.Remove(ctx, KeyAuth))
			require.NoError(t, m.Remove(ctx, KeyAuth))
			_, ok, err = m.Get(ctx, KeyAuth)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestFileMirrorPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "mirror.json")

	require.NoError(t, NewFileMirror(path).Set(ctx, KeyToken, "session_abc"))

	v, ok, err := NewFileMirror(path).Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "session_abc", v)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileMirrorCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, _, err := NewFileMirror(path).Get(context.Background(), KeyAuth)
	assert.Error(t, err)
}

func TestMemoryMirrorQuota(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryMirror(10)

	require.NoError(t, m.Set(ctx, "a", "12345"))
	require.NoError(t, m.Set(ctx, "a", "1234567890"), "replacing a key only counts the new value")
	assert.ErrorIs(t, m.Set(ctx, "b", "x"), ErrQuotaExceeded)

	v, _, _ := m.Get(ctx, "a")
	assert.Equal(t, "1234567890", v)
}

func TestMemoryMirrorFailWith(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryMirror(0)
	boom := errors.New("storage disabled")

	m.FailWith(boom)
	assert.ErrorIs(t, m.Set(ctx, KeyAuth, AuthTrue), boom)
	_, _, err := m.Get(ctx, KeyAuth)
	assert.ErrorIs(t, err, boom)

	m.FailWith(nil)
	assert.NoError(t, m.Set(ctx, KeyAuth, AuthTrue))
	assert.Equal(t, map[string]string{KeyAuth: AuthTrue}, m.Snapshot())
}
