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
	knowledgeCollection   = "knowledge_docs"
	knowledgeCounterDoc   = "knowledge_counter"
	knowledgeCreatedField = "created_at"
)

type knowledgeRepository struct {
	client *firestore.Client
}

func newKnowledgeRepository(client *firestore.Client) *knowledgeRepository {
	return &knowledgeRepository{client: client}
}

func (r *knowledgeRepository) Create(ctx context.Context, d *model.KnowledgeDoc) (*model.KnowledgeDoc, error) {
	id, err := nextID(ctx, r.client, knowledgeCounterDoc)
	if err != nil {
		return nil, err
	}

	created := d.Clone()
	created.ID = id
	created.CreatedAt = time.Now().UTC()

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(knowledgeCollection).Doc(docID).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create knowledge doc", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *knowledgeRepository) Get(ctx context.Context, id int64) (*model.KnowledgeDoc, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(knowledgeCollection).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "knowledge doc not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get knowledge doc", goerr.V("id", id))
	}

	var d model.KnowledgeDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode knowledge doc", goerr.V("id", id))
	}

	return &d, nil
}

func (r *knowledgeRepository) List(ctx context.Context) ([]*model.KnowledgeDoc, error) {
	iter := r.client.Collection(knowledgeCollection).
		OrderBy(knowledgeCreatedField, firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var docs []*model.KnowledgeDoc
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate knowledge docs")
		}

		var d model.KnowledgeDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode knowledge doc", goerr.V("doc_id", docSnap.Ref.ID))
		}

		docs = append(docs, &d)
	}

	return docs, nil
}

func (r *knowledgeRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(knowledgeCollection).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "knowledge doc not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check knowledge doc existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete knowledge doc", goerr.V("id", id))
	}

	return nil
}
