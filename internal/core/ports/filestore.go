package ports

import "context"

// FileStore persists a byte buffer in an external object store and returns
// the durable public URL.
type FileStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}
