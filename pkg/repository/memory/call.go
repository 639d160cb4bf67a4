package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
)

type callRepository struct {
	mu     sync.RWMutex
	calls  map[int64]*model.OpenCall
	nextID int64
}

func newCallRepository() *callRepository {
	return &callRepository{
		calls:  make(map[int64]*model.OpenCall),
		nextID: 1,
	}
}

func (r *callRepository) Create(ctx context.Context, c *model.OpenCall) (*model.OpenCall, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := c.Clone()
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.calls[created.ID] = created
	return created.Clone(), nil
}

func (r *callRepository) Get(ctx context.Context, id int64) (*model.OpenCall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.calls[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "open call not found", goerr.V("id", id))
	}

	return c.Clone(), nil
}

func (r *callRepository) List(ctx context.Context) ([]*model.OpenCall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	calls := make([]*model.OpenCall, 0, len(r.calls))
	for _, c := range r.calls {
		calls = append(calls, c.Clone())
	}

	sort.Slice(calls, func(i, j int) bool {
		return calls[i].ID < calls[j].ID
	})

	return calls, nil
}

func (r *callRepository) Update(ctx context.Context, c *model.OpenCall) (*model.OpenCall, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.calls[c.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "open call not found", goerr.V("id", c.ID))
	}

	updated := c.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.calls[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *callRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.calls[id]; !exists {
		return goerr.Wrap(ErrNotFound, "open call not found", goerr.V("id", id))
	}

	delete(r.calls, id)
	return nil
}
