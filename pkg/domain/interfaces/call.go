package interfaces

import (
	"context"

	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
)

// OpenCallRepository defines the interface for OpenCall data access
type OpenCallRepository interface {
	// Create creates a new open call with auto-generated ID
	Create(ctx context.Context, c *model.OpenCall) (*model.OpenCall, error)

	// Get retrieves an open call by ID
	Get(ctx context.Context, id int64) (*model.OpenCall, error)

	// List retrieves all open calls
	List(ctx context.Context) ([]*model.OpenCall, error)

	// Update replaces an existing open call
	Update(ctx context.Context, c *model.OpenCall) (*model.OpenCall, error)

	// Delete deletes an open call by ID. Hard delete, no tombstone.
	Delete(ctx context.Context, id int64) error
}
