package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/service/storage"
	"github.com/urfave/cli/v3"
)

// Storage holds CLI flags for the document object store
type Storage struct {
	bucket string
	prefix string
}

// Flags returns CLI flags for storage configuration
func (s *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-bucket",
			Usage:       "Cloud Storage bucket for uploads (uploads disabled when empty)",
			Category:    "Storage",
			Sources:     cli.EnvVars("FUNDER_PORTAL_STORAGE_BUCKET"),
			Destination: &s.bucket,
		},
		&cli.StringFlag{
			Name:        "storage-prefix",
			Usage:       "Key prefix applied to every stored object",
			Category:    "Storage",
			Sources:     cli.EnvVars("FUNDER_PORTAL_STORAGE_PREFIX"),
			Destination: &s.prefix,
		},
	}
}

// Configure creates the Cloud Storage client. Returns nil when no bucket is
// set, which disables document uploads.
func (s *Storage) Configure(ctx context.Context) (interfaces.ObjectStorage, error) {
	if s.bucket == "" {
		return nil, nil
	}

	var opts []storage.Option
	if s.prefix != "" {
		opts = append(opts, storage.WithPrefix(s.prefix))
	}

	store, err := storage.New(ctx, s.bucket, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure object storage")
	}
	return store, nil
}
