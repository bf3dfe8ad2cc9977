package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/datastore"
)

// MirrorKind is the Datastore kind holding client-side mirror entries.
const MirrorKind = "HRMirror"

// MirrorEntry is one persisted mirror value. Values are opaque JSON text.
type MirrorEntry struct {
	Value     string    `datastore:"value,noindex"`
	UpdatedAt time.Time `datastore:"updated_at"`
}

// DatastoreClient wraps the cloud datastore client
type DatastoreClient struct {
	client    *datastore.Client
	namespace string
}

// NewDatastoreClient creates a new wrapper. Entries are scoped to namespace,
// typically one per workstation profile.
func NewDatastoreClient(client *datastore.Client, namespace string) *DatastoreClient {
	return &DatastoreClient{client: client, namespace: namespace}
}

// OpenDatastoreClient dials Datastore for projectID.
func OpenDatastoreClient(ctx context.Context, projectID, namespace string) (*DatastoreClient, error) {
	client, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create datastore client: %w", err)
	}
	return NewDatastoreClient(client, namespace), nil
}

func (dc *DatastoreClient) key(name string) *datastore.Key {
	k := datastore.NameKey(MirrorKind, name, nil)
	k.Namespace = dc.namespace
	return k
}

// SaveEntry upserts the value stored under name.
func (dc *DatastoreClient) SaveEntry(ctx context.Context, name, value string) error {
	if dc == nil || dc.client == nil {
		return fmt.Errorf("datastore client is nil")
	}

	entry := &MirrorEntry{Value: value, UpdatedAt: time.Now().UTC()}
	if _, err := dc.client.Put(ctx, dc.key(name), entry); err != nil {
		return fmt.Errorf("failed to save entry %q: %w", name, err)
	}
	return nil
}

// GetEntry reads the value stored under name. found is false when no entry exists.
func (dc *DatastoreClient) GetEntry(ctx context.Context, name string) (value string, found bool, err error) {
	if dc == nil || dc.client == nil {
		return "", false, fmt.Errorf("datastore client is nil")
	}

	var entry MirrorEntry
	if err := dc.client.Get(ctx, dc.key(name), &entry); err != nil {
		if errors.Is(err, datastore.ErrNoSuchEntity) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get entry %q: %w", name, err)
	}
	return entry.Value, true, nil
}

// DeleteEntry removes the entry under name. Deleting a missing entry succeeds.
func (dc *DatastoreClient) DeleteEntry(ctx context.Context, name string) error {
	if dc == nil || dc.client == nil {
		return fmt.Errorf("datastore client is nil")
	}

	if err := dc.client.Delete(ctx, dc.key(name)); err != nil {
		return fmt.Errorf("failed to delete entry %q: %w", name, err)
	}
	return nil
}

// ListEntries returns every entry in the namespace keyed by name.
func (dc *DatastoreClient) ListEntries(ctx context.Context) (map[string]MirrorEntry, error) {
	if dc == nil || dc.client == nil {
		return nil, fmt.Errorf("datastore client is nil")
	}

	var entries []MirrorEntry
	q := datastore.NewQuery(MirrorKind).Namespace(dc.namespace)
	keys, err := dc.client.GetAll(ctx, q, &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	result := make(map[string]MirrorEntry, len(keys))
	for i, k := range keys {
		result[k.Name] = entries[i]
	}
	return result, nil
}

// Close releases the underlying client.
func (dc *DatastoreClient) Close() error {
	if dc == nil || dc.client == nil {
		return nil
	}
	return dc.client.Close()
}
