package storage

import "context"

// Archive is a write-only sink for snapshots of newly ingested mentions.
// Nothing is ever read back into the mention store.
type Archive interface {
	Store(ctx context.Context, name string, data []byte) error
}
