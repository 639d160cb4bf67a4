package interfaces

import (
	"context"

	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
)

// EngagementRepository defines the interface for Engagement data access
type EngagementRepository interface {
	// Create creates a new engagement with auto-generated ID
	Create(ctx context.Context, e *model.Engagement) (*model.Engagement, error)

	// Get retrieves an engagement by ID
	Get(ctx context.Context, id int64) (*model.Engagement, error)

	// List retrieves all engagements
	List(ctx context.Context) ([]*model.Engagement, error)

	// Update replaces an existing engagement
	Update(ctx context.Context, e *model.Engagement) (*model.Engagement, error)

	// Delete deletes an engagement by ID. Hard delete, no tombstone.
	Delete(ctx context.Context, id int64) error
}
