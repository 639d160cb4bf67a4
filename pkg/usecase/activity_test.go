package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/repository/memory"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/usecase"
)

func TestActivityCreate(t *testing.T) {
	newParent := func(t *testing.T, uc *usecase.UseCases) types.ParentRef {
		t.Helper()
		created, err := uc.Call.Create(context.Background(), usecase.CreateCallInput{
			Title: "Ocean Health Grant",
		})
		gt.NoError(t, err).Required()
		return created.ParentRef()
	}

	t.Run("manual activity with sentiment", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})
		parent := newParent(t, uc)
		ctx := ctxWithUser("alice@example.com", "Alice", types.RoleMember)

		created, err := uc.Activity.Create(ctx, usecase.CreateActivityInput{
			Parent:    parent,
			Type:      "Call Log",
			Content:   "called the program officer",
			Sentiment: "positive",
		})
		gt.NoError(t, err).Required()
		gt.Number(t, created.ID).NotEqual(0)
		gt.Value(t, created.Author).Equal("alice@example.com")
		gt.Value(t, created.Type).Equal(types.ActivityTypeCallLog)
		gt.Value(t, created.Sentiment).Equal(types.SentimentPositive)
	})

	t.Run("status change type is reserved for the workflow", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})
		parent := newParent(t, uc)

		_, err := uc.Activity.Create(context.Background(), usecase.CreateActivityInput{
			Parent:  parent,
			Type:    "Status Change",
			Content: "In Review → Reviewing",
		})
		gt.Error(t, err)
	})

	t.Run("invalid type and sentiment are rejected", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})
		parent := newParent(t, uc)

		_, err := uc.Activity.Create(context.Background(), usecase.CreateActivityInput{
			Parent:  parent,
			Type:    "Phone Tag",
			Content: "x",
		})
		gt.Error(t, err)

		_, err = uc.Activity.Create(context.Background(), usecase.CreateActivityInput{
			Parent:    parent,
			Type:      "Email",
			Content:   "x",
			Sentiment: "ecstatic",
		})
		gt.Error(t, err)
	})

	t.Run("missing parent is rejected", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})

		_, err := uc.Activity.Create(context.Background(), usecase.CreateActivityInput{
			Parent:  types.ParentRef{Kind: types.ParentKindOpenCall, ID: 9999},
			Type:    "Email",
			Content: "x",
		})
		gt.Bool(t, errors.Is(err, usecase.ErrCallNotFound)).True()
	})

	t.Run("content is required", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})
		parent := newParent(t, uc)

		_, err := uc.Activity.Create(context.Background(), usecase.CreateActivityInput{
			Parent: parent,
			Type:   "Email",
		})
		gt.Error(t, err)
	})
}

func TestActivityListByParent(t *testing.T) {
	repo := memory.New()
	uc := newTestUseCases(repo, &mailerMock{})
	ctx := ctxWithUser("alice@example.com", "Alice", types.RoleMember)

	call, err := uc.Call.Create(ctx, usecase.CreateCallInput{Title: "Ocean Health Grant"})
	gt.NoError(t, err).Required()

	for _, content := range []string{"first", "second", "third"} {
		_, err := uc.Activity.Create(ctx, usecase.CreateActivityInput{
			Parent:  call.ParentRef(),
			Type:    "Internal Comment",
			Content: content,
		})
		gt.NoError(t, err).Required()
	}

	activities, err := uc.Activity.ListByParent(ctx, call.ParentRef())
	gt.NoError(t, err).Required()
	gt.Array(t, activities).Length(3)
	// Newest first.
	gt.Value(t, activities[0].Content).Equal("third")
	gt.Value(t, activities[2].Content).Equal("first")
}

type storageMock struct {
	objects map[string][]byte
	deleted []string
}

func newStorageMock() *storageMock {
	return &storageMock{objects: make(map[string][]byte)}
}

func (s *storageMock) Put(_ context.Context, key, _ string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.objects[key] = data
	return "https://storage.example.com/" + key, nil
}

func (s *storageMock) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("object not found: " + key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *storageMock) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func TestActivityUploadDocument(t *testing.T) {
	t.Run("stores the body and returns a reference", func(t *testing.T) {
		repo := memory.New()
		st := newStorageMock()
		uc := usecase.New(repo, usecase.WithStorage(st))
		ctx := ctxWithUser("alice@example.com", "Alice", types.RoleMember)

		body := strings.NewReader("proposal body")
		doc, err := uc.Activity.UploadDocument(ctx, "proposal.docx",
			"application/msword", int64(body.Len()), body)
		gt.NoError(t, err).Required()
		gt.Value(t, doc.Name).Equal("proposal.docx")
		gt.Value(t, doc.Uploader).Equal("alice@example.com")
		gt.Bool(t, strings.HasSuffix(doc.ObjectKey, "/proposal.docx")).True()
		gt.Bool(t, strings.HasPrefix(doc.URL, "https://storage.example.com/")).True()
		gt.Number(t, len(st.objects)).Equal(1)
	})

	t.Run("fails without storage", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		_, err := uc.Activity.UploadDocument(context.Background(), "proposal.docx",
			"application/msword", 3, strings.NewReader("abc"))
		gt.Error(t, err)
	})

	t.Run("name is required", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithStorage(newStorageMock()))

		_, err := uc.Activity.UploadDocument(context.Background(), "",
			"application/msword", 3, strings.NewReader("abc"))
		gt.Error(t, err)
	})
}
