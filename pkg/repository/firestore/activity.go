package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	activitiesCollection = "activities"
	activityCounterDoc   = "activity_counter"
)

type activityRepository struct {
	client *firestore.Client
}

func newActivityRepository(client *firestore.Client) *activityRepository {
	return &activityRepository{client: client}
}

func (r *activityRepository) Create(ctx context.Context, a *model.Activity) (*model.Activity, error) {
	id, err := nextID(ctx, r.client, activityCounterDoc)
	if err != nil {
		return nil, err
	}

	created := a.Clone()
	created.ID = id
	created.CreatedAt = time.Now().UTC()

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(activitiesCollection).Doc(docID).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create activity", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *activityRepository) Get(ctx context.Context, id int64) (*model.Activity, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(activitiesCollection).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "activity not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get activity", goerr.V("id", id))
	}

	var a model.Activity
	if err := docSnap.DataTo(&a); err != nil {
		return nil, goerr.Wrap(err, "failed to decode activity", goerr.V("id", id))
	}

	return &a, nil
}

// ListByParent requires the composite index (parent.kind ASC, parent.id ASC,
// created_at DESC) applied by the migrate command.
func (r *activityRepository) ListByParent(ctx context.Context, parent types.ParentRef) ([]*model.Activity, error) {
	iter := r.client.Collection(activitiesCollection).
		Where("parent.kind", "==", parent.Kind.String()).
		Where("parent.id", "==", parent.ID).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var activities []*model.Activity
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate activities",
				goerr.V("kind", parent.Kind),
				goerr.V("parent_id", parent.ID))
		}

		var a model.Activity
		if err := docSnap.DataTo(&a); err != nil {
			return nil, goerr.Wrap(err, "failed to decode activity", goerr.V("doc_id", docSnap.Ref.ID))
		}

		activities = append(activities, &a)
	}

	return activities, nil
}

func (r *activityRepository) DeleteByParent(ctx context.Context, parent types.ParentRef) error {
	iter := r.client.Collection(activitiesCollection).
		Where("parent.kind", "==", parent.Kind.String()).
		Where("parent.id", "==", parent.ID).
		Documents(ctx)
	defer iter.Stop()

	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate activities for deletion",
				goerr.V("kind", parent.Kind),
				goerr.V("parent_id", parent.ID))
		}

		if _, err := docSnap.Ref.Delete(ctx); err != nil {
			return goerr.Wrap(err, "failed to delete activity", goerr.V("doc_id", docSnap.Ref.ID))
		}
	}

	return nil
}
