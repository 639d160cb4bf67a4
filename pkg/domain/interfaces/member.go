package interfaces

import (
	"context"

	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
)

// MemberRepository defines the interface for team directory data access
type MemberRepository interface {
	// Create creates a new member with auto-generated ID
	Create(ctx context.Context, m *model.Member) (*model.Member, error)

	// Get retrieves a member by ID
	Get(ctx context.Context, id types.MemberID) (*model.Member, error)

	// GetByEmail retrieves a member by email address.
	// Returns nil, nil if no member has the address.
	GetByEmail(ctx context.Context, email string) (*model.Member, error)

	// List retrieves all members
	List(ctx context.Context) ([]*model.Member, error)

	// Update replaces an existing member
	Update(ctx context.Context, m *model.Member) (*model.Member, error)

	// Delete deletes a member by ID
	Delete(ctx context.Context, id types.MemberID) error
}
