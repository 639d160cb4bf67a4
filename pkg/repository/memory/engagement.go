package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
)

type engagementRepository struct {
	mu          sync.RWMutex
	engagements map[int64]*model.Engagement
	nextID      int64
}

func newEngagementRepository() *engagementRepository {
	return &engagementRepository{
		engagements: make(map[int64]*model.Engagement),
		nextID:      1,
	}
}

func (r *engagementRepository) Create(ctx context.Context, e *model.Engagement) (*model.Engagement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := e.Clone()
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.engagements[created.ID] = created
	return created.Clone(), nil
}

func (r *engagementRepository) Get(ctx context.Context, id int64) (*model.Engagement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.engagements[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "engagement not found", goerr.V("id", id))
	}

	return e.Clone(), nil
}

func (r *engagementRepository) List(ctx context.Context) ([]*model.Engagement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	engagements := make([]*model.Engagement, 0, len(r.engagements))
	for _, e := range r.engagements {
		engagements = append(engagements, e.Clone())
	}

	sort.Slice(engagements, func(i, j int) bool {
		return engagements[i].ID < engagements[j].ID
	})

	return engagements, nil
}

func (r *engagementRepository) Update(ctx context.Context, e *model.Engagement) (*model.Engagement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.engagements[e.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "engagement not found", goerr.V("id", e.ID))
	}

	updated := e.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.engagements[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *engagementRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.engagements[id]; !exists {
		return goerr.Wrap(ErrNotFound, "engagement not found", goerr.V("id", id))
	}

	delete(r.engagements, id)
	return nil
}
