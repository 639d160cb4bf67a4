package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
)

type ActivityUseCase struct {
	repo    interfaces.Repository
	storage interfaces.ObjectStorage
}

func NewActivityUseCase(repo interfaces.Repository, storage interfaces.ObjectStorage) *ActivityUseCase {
	return &ActivityUseCase{repo: repo, storage: storage}
}

// CreateActivityInput carries the fields of a manually logged activity.
// Status Change entries are produced by the workflow engine, not through
// this path.
type CreateActivityInput struct {
	Parent    types.ParentRef
	Type      string
	Content   string
	Sentiment string
	Documents []model.DocumentRef
}

func (uc *ActivityUseCase) Create(ctx context.Context, input CreateActivityInput) (*model.Activity, error) {
	activityType, err := types.ParseActivityType(input.Type)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid activity type")
	}
	if activityType == types.ActivityTypeStatusChange {
		return nil, goerr.New("status change activities are recorded automatically")
	}

	sentiment := types.Sentiment(input.Sentiment)
	if !sentiment.IsValid() {
		return nil, goerr.New("invalid sentiment", goerr.V("sentiment", input.Sentiment))
	}

	if err := uc.verifyParent(ctx, input.Parent); err != nil {
		return nil, err
	}

	who := actorFrom(ctx)
	activity := &model.Activity{
		Author:    who.Email,
		Type:      activityType,
		Content:   input.Content,
		Sentiment: sentiment,
		Documents: input.Documents,
		Parent:    input.Parent,
	}
	if err := activity.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid activity")
	}

	created, err := uc.repo.Activity().Create(ctx, activity)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create activity")
	}
	return created, nil
}

func (uc *ActivityUseCase) Get(ctx context.Context, id int64) (*model.Activity, error) {
	activity, err := uc.repo.Activity().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrActivityNotFound, ActivityIDKey, id)
	}
	return activity, nil
}

// ListByParent returns the entity's feed, newest first
func (uc *ActivityUseCase) ListByParent(ctx context.Context, parent types.ParentRef) ([]*model.Activity, error) {
	if err := uc.verifyParent(ctx, parent); err != nil {
		return nil, err
	}

	activities, err := uc.repo.Activity().ListByParent(ctx, parent)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list activities", goerr.V("parent", parent))
	}
	return activities, nil
}

// UploadDocument stores a file body and returns the reference to embed in an
// activity or workflow entity.
func (uc *ActivityUseCase) UploadDocument(ctx context.Context, name, contentType string, size int64, r io.Reader) (model.DocumentRef, error) {
	if uc.storage == nil {
		return model.DocumentRef{}, goerr.New("object storage is not configured")
	}
	if name == "" {
		return model.DocumentRef{}, goerr.New("document name is required")
	}

	key := uuid.New().String() + "/" + name
	url, err := uc.storage.Put(ctx, key, contentType, r)
	if err != nil {
		return model.DocumentRef{}, goerr.Wrap(err, "failed to store document", goerr.V("name", name))
	}

	who := actorFrom(ctx)
	return model.NewDocumentRef(name, key, url, contentType, size, who.Email), nil
}

func (uc *ActivityUseCase) verifyParent(ctx context.Context, parent types.ParentRef) error {
	if err := parent.Validate(); err != nil {
		return goerr.Wrap(err, "invalid activity parent")
	}

	switch parent.Kind {
	case types.ParentKindOpenCall:
		if _, err := uc.repo.OpenCall().Get(ctx, parent.ID); err != nil {
			return notFound(err, ErrCallNotFound, CallIDKey, parent.ID)
		}
	case types.ParentKindEngagement:
		if _, err := uc.repo.Engagement().Get(ctx, parent.ID); err != nil {
			return notFound(err, ErrEngagementNotFound, EngagementIDKey, parent.ID)
		}
	}
	return nil
}
