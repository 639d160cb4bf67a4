package interfaces

import (
	"context"
	"io"
)

// ObjectStorage stores uploaded file bodies by key
type ObjectStorage interface {
	// Put writes an object and returns its public URL
	Put(ctx context.Context, key string, contentType string, r io.Reader) (string, error)

	// Get opens an object for reading. The caller must close the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object
	Delete(ctx context.Context, key string) error
}
