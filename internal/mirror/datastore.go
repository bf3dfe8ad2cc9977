package mirror

import "context"

// EntryStore is the subset of database.DatastoreClient the mirror needs.
type EntryStore interface {
	SaveEntry(ctx context.Context, name, value string) error
	GetEntry(ctx context.Context, name string) (string, bool, error)
	DeleteEntry(ctx context.Context, name string) error
}

// DatastoreMirror keeps mirror keys as Datastore entities, so a profile can
// follow its user between workstations.
type DatastoreMirror struct {
	store EntryStore
}

// NewDatastoreMirror wraps store.
func NewDatastoreMirror(store EntryStore) *DatastoreMirror {
	return &DatastoreMirror{store: store}
}

func (m *DatastoreMirror) Get(ctx context.Context, key string) (string, bool, error) {
	return m.store.GetEntry(ctx, key)
}

func (m *DatastoreMirror) Set(ctx context.Context, key, value string) error {
	return m.store.SaveEntry(ctx, key, value)
}

func (m *DatastoreMirror) Remove(ctx context.Context, key string) error {
	return m.store.DeleteEntry(ctx, key)
}
