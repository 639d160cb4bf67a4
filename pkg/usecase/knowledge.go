package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/utils/errutil"
)

type KnowledgeUseCase struct {
	repo    interfaces.Repository
	storage interfaces.ObjectStorage
}

func NewKnowledgeUseCase(repo interfaces.Repository, storage interfaces.ObjectStorage) *KnowledgeUseCase {
	return &KnowledgeUseCase{repo: repo, storage: storage}
}

// UploadInput carries the metadata of a new knowledge base document
type UploadInput struct {
	Title       string
	Description string
	Tags        []string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Upload stores the file body and registers its metadata
func (uc *KnowledgeUseCase) Upload(ctx context.Context, input UploadInput) (*model.KnowledgeDoc, error) {
	if uc.storage == nil {
		return nil, goerr.New("object storage is not configured")
	}
	if input.Title == "" {
		return nil, goerr.New("knowledge doc title is required")
	}
	if input.FileName == "" {
		return nil, goerr.New("file name is required")
	}

	key := "knowledge/" + uuid.New().String() + "/" + input.FileName
	url, err := uc.storage.Put(ctx, key, input.ContentType, input.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store knowledge doc body", goerr.V("title", input.Title))
	}

	who := actorFrom(ctx)
	doc := &model.KnowledgeDoc{
		Title:       input.Title,
		Description: input.Description,
		Tags:        input.Tags,
		ObjectKey:   key,
		URL:         url,
		ContentType: input.ContentType,
		Size:        input.Size,
		Uploader:    who.Email,
	}
	if err := doc.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid knowledge doc")
	}

	created, err := uc.repo.Knowledge().Create(ctx, doc)
	if err != nil {
		// Metadata write failed; clean up the stored body best effort.
		if delErr := uc.storage.Delete(ctx, key); delErr != nil {
			_ = errutil.Handle(ctx, delErr, "failed to clean up orphaned knowledge object")
		}
		return nil, goerr.Wrap(err, "failed to create knowledge doc")
	}
	return created, nil
}

func (uc *KnowledgeUseCase) Get(ctx context.Context, id int64) (*model.KnowledgeDoc, error) {
	doc, err := uc.repo.Knowledge().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrKnowledgeNotFound, KnowledgeIDKey, id)
	}
	return doc, nil
}

func (uc *KnowledgeUseCase) List(ctx context.Context) ([]*model.KnowledgeDoc, error) {
	docs, err := uc.repo.Knowledge().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list knowledge docs")
	}
	return docs, nil
}

// Open streams the stored file body
func (uc *KnowledgeUseCase) Open(ctx context.Context, id int64) (*model.KnowledgeDoc, io.ReadCloser, error) {
	doc, err := uc.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if uc.storage == nil {
		return nil, nil, goerr.New("object storage is not configured")
	}

	r, err := uc.storage.Get(ctx, doc.ObjectKey)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to open knowledge doc body", goerr.V(KnowledgeIDKey, id))
	}
	return doc, r, nil
}

// Delete removes the metadata and the stored body
func (uc *KnowledgeUseCase) Delete(ctx context.Context, id int64) error {
	doc, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repo.Knowledge().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete knowledge doc", goerr.V(KnowledgeIDKey, id))
	}

	if uc.storage != nil {
		if err := uc.storage.Delete(ctx, doc.ObjectKey); err != nil {
			_ = errutil.Handle(ctx, err, "failed to delete knowledge doc body")
		}
	}
	return nil
}
