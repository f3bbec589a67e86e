package store

import "context"

// Store persists named value snapshots as raw bytes. Implementations must
// handle concurrent access safely.
//
// Snapshots in this module are JSON documents keyed by provider name; the
// interface itself is codec-agnostic.
type Store interface {
	// Load returns the snapshot stored under name, or ErrNotFound.
	Load(ctx context.Context, name string) ([]byte, error)

	// Save stores data under name, replacing any previous snapshot.
	Save(ctx context.Context, name string, data []byte) error

	// Delete removes the snapshot under name. Deleting an absent name is
	// not an error.
	Delete(ctx context.Context, name string) error
}
