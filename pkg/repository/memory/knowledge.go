package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
)

type knowledgeRepository struct {
	mu     sync.RWMutex
	docs   map[int64]*model.KnowledgeDoc
	nextID int64
}

func newKnowledgeRepository() *knowledgeRepository {
	return &knowledgeRepository{
		docs:   make(map[int64]*model.KnowledgeDoc),
		nextID: 1,
	}
}

func (r *knowledgeRepository) Create(ctx context.Context, d *model.KnowledgeDoc) (*model.KnowledgeDoc, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := d.Clone()
	created.ID = r.nextID
	r.nextID++
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.docs[created.ID] = created
	return created.Clone(), nil
}

func (r *knowledgeRepository) Get(ctx context.Context, id int64) (*model.KnowledgeDoc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, exists := r.docs[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "knowledge doc not found", goerr.V("id", id))
	}

	return d.Clone(), nil
}

func (r *knowledgeRepository) List(ctx context.Context) ([]*model.KnowledgeDoc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]*model.KnowledgeDoc, 0, len(r.docs))
	for _, d := range r.docs {
		docs = append(docs, d.Clone())
	}

	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID > docs[j].ID
		}
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})

	return docs, nil
}

func (r *knowledgeRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[id]; !exists {
		return goerr.Wrap(ErrNotFound, "knowledge doc not found", goerr.V("id", id))
	}

	delete(r.docs, id)
	return nil
}
