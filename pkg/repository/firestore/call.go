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
	callsCollection = "open_calls"
	callCounterDoc  = "open_call_counter"
)

type callRepository struct {
	client *firestore.Client
}

func newCallRepository(client *firestore.Client) *callRepository {
	return &callRepository{client: client}
}

func (r *callRepository) Create(ctx context.Context, c *model.OpenCall) (*model.OpenCall, error) {
	id, err := nextID(ctx, r.client, callCounterDoc)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := c.Clone()
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(callsCollection).Doc(docID).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create open call", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *callRepository) Get(ctx context.Context, id int64) (*model.OpenCall, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(callsCollection).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "open call not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get open call", goerr.V("id", id))
	}

	var c model.OpenCall
	if err := docSnap.DataTo(&c); err != nil {
		return nil, goerr.Wrap(err, "failed to decode open call", goerr.V("id", id))
	}

	return &c, nil
}

func (r *callRepository) List(ctx context.Context) ([]*model.OpenCall, error) {
	iter := r.client.Collection(callsCollection).Documents(ctx)
	defer iter.Stop()

	var calls []*model.OpenCall
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate open calls")
		}

		var c model.OpenCall
		if err := docSnap.DataTo(&c); err != nil {
			return nil, goerr.Wrap(err, "failed to decode open call", goerr.V("doc_id", docSnap.Ref.ID))
		}

		calls = append(calls, &c)
	}

	return calls, nil
}

func (r *callRepository) Update(ctx context.Context, c *model.OpenCall) (*model.OpenCall, error) {
	docID := fmt.Sprintf("%d", c.ID)
	docRef := r.client.Collection(callsCollection).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "open call not found", goerr.V("id", c.ID))
		}
		return nil, goerr.Wrap(err, "failed to check open call existence", goerr.V("id", c.ID))
	}

	updated := c.Clone()
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update open call", goerr.V("id", c.ID))
	}

	return updated, nil
}

func (r *callRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(callsCollection).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "open call not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check open call existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete open call", goerr.V("id", id))
	}

	return nil
}
