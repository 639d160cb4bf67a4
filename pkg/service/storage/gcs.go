package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"

	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
)

// GCS stores uploaded document bodies in a Cloud Storage bucket
type GCS struct {
	client *gcs.Client
	bucket string
	prefix string
}

// Option is a functional option for GCS configuration
type Option func(*GCS)

// WithPrefix sets a key prefix applied to every stored object
func WithPrefix(prefix string) Option {
	return func(g *GCS) {
		g.prefix = prefix
	}
}

// New creates a Cloud Storage backed object store
func New(ctx context.Context, bucket string, opts ...Option) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("bucket name is required")
	}

	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	g := &GCS{
		client: client,
		bucket: bucket,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

var _ interfaces.ObjectStorage = &GCS{}

func (g *GCS) objectKey(key string) string {
	if g.prefix == "" {
		return key
	}
	return g.prefix + "/" + key
}

// Put writes an object and returns its public URL
func (g *GCS) Put(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	objKey := g.objectKey(key)
	w := g.client.Bucket(g.bucket).Object(objKey).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to write object", goerr.V("key", objKey))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize object", goerr.V("key", objKey))
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, objKey), nil
}

// Get opens an object for reading
func (g *GCS) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	objKey := g.objectKey(key)
	r, err := g.client.Bucket(g.bucket).Object(objKey).NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open object", goerr.V("key", objKey))
	}
	return r, nil
}

// Delete removes an object
func (g *GCS) Delete(ctx context.Context, key string) error {
	objKey := g.objectKey(key)
	if err := g.client.Bucket(g.bucket).Object(objKey).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete object", goerr.V("key", objKey))
	}
	return nil
}

// Close releases the underlying client
func (g *GCS) Close() error {
	return g.client.Close()
}
