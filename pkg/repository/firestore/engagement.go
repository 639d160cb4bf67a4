package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	engagementsCollection = "engagements"
	engagementCounterDoc  = "engagement_counter"
)

type engagementRepository struct {
	client *firestore.Client
}

func newEngagementRepository(client *firestore.Client) *engagementRepository {
	return &engagementRepository{client: client}
}

func (r *engagementRepository) Create(ctx context.Context, e *model.Engagement) (*model.Engagement, error) {
	id, err := nextID(ctx, r.client, engagementCounterDoc)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := e.Clone()
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(engagementsCollection).Doc(docID).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create engagement", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *engagementRepository) Get(ctx context.Context, id int64) (*model.Engagement, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(engagementsCollection).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "engagement not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get engagement", goerr.V("id", id))
	}

	var e model.Engagement
	if err := docSnap.DataTo(&e); err != nil {
		return nil, goerr.Wrap(err, "failed to decode engagement", goerr.V("id", id))
	}

	return &e, nil
}

func (r *engagementRepository) List(ctx context.Context) ([]*model.Engagement, error) {
	iter := r.client.Collection(engagementsCollection).Documents(ctx)
	defer iter.Stop()

	var engagements []*model.Engagement
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate engagements")
		}

		var e model.Engagement
		if err := docSnap.DataTo(&e); err != nil {
			return nil, goerr.Wrap(err, "failed to decode engagement", goerr.V("doc_id", docSnap.Ref.ID))
		}

		engagements = append(engagements, &e)
	}

	return engagements, nil
}

func (r *engagementRepository) Update(ctx context.Context, e *model.Engagement) (*model.Engagement, error) {
	docID := fmt.Sprintf("%d", e.ID)
	docRef := r.client.Collection(engagementsCollection).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "engagement not found", goerr.V("id", e.ID))
		}
		return nil, goerr.Wrap(err, "failed to check engagement existence", goerr.V("id", e.ID))
	}

	updated := e.Clone()
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update engagement", goerr.V("id", e.ID))
	}

	return updated, nil
}

func (r *engagementRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(engagementsCollection).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "engagement not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check engagement existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete engagement", goerr.V("id", id))
	}

	return nil
}
