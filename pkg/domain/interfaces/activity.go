package interfaces

import (
	"context"

	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
)

// ActivityRepository defines the interface for Activity data access.
// Activities are append-only: there is no update operation.
type ActivityRepository interface {
	// Create appends a new activity with auto-generated ID
	Create(ctx context.Context, a *model.Activity) (*model.Activity, error)

	// Get retrieves an activity by ID
	Get(ctx context.Context, id int64) (*model.Activity, error)

	// ListByParent retrieves activities of one workflow entity,
	// newest first.
	ListByParent(ctx context.Context, parent types.ParentRef) ([]*model.Activity, error)

	// DeleteByParent removes all activities of one workflow entity.
	// Used only when the parent entity itself is hard-deleted.
	DeleteByParent(ctx context.Context, parent types.ParentRef) error
}
