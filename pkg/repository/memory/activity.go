package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
)

type activityRepository struct {
	mu         sync.RWMutex
	activities map[int64]*model.Activity
	nextID     int64
}

func newActivityRepository() *activityRepository {
	return &activityRepository{
		activities: make(map[int64]*model.Activity),
		nextID:     1,
	}
}

func (r *activityRepository) Create(ctx context.Context, a *model.Activity) (*model.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := a.Clone()
	created.ID = r.nextID
	r.nextID++
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.activities[created.ID] = created
	return created.Clone(), nil
}

func (r *activityRepository) Get(ctx context.Context, id int64) (*model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.activities[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "activity not found", goerr.V("id", id))
	}

	return a.Clone(), nil
}

func (r *activityRepository) ListByParent(ctx context.Context, parent types.ParentRef) ([]*model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var activities []*model.Activity
	for _, a := range r.activities {
		if a.Parent == parent {
			activities = append(activities, a.Clone())
		}
	}

	// Newest first; IDs break ties for activities created in the same instant.
	sort.Slice(activities, func(i, j int) bool {
		if activities[i].CreatedAt.Equal(activities[j].CreatedAt) {
			return activities[i].ID > activities[j].ID
		}
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})

	return activities, nil
}

func (r *activityRepository) DeleteByParent(ctx context.Context, parent types.ParentRef) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, a := range r.activities {
		if a.Parent == parent {
			delete(r.activities, id)
		}
	}

	return nil
}
