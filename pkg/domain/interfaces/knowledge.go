package interfaces

import (
	"context"

	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
)

// KnowledgeRepository defines the interface for knowledge base metadata
type KnowledgeRepository interface {
	// Create creates a new knowledge doc with auto-generated ID
	Create(ctx context.Context, d *model.KnowledgeDoc) (*model.KnowledgeDoc, error)

	// Get retrieves a knowledge doc by ID
	Get(ctx context.Context, id int64) (*model.KnowledgeDoc, error)

	// List retrieves all knowledge docs, newest first
	List(ctx context.Context) ([]*model.KnowledgeDoc, error)

	// Delete deletes a knowledge doc by ID
	Delete(ctx context.Context, id int64) error
}
