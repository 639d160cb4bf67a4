package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model/auth"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/repository/memory"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/service/directory"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/service/notify"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/usecase"
)

type mailerMock struct {
	mu    sync.Mutex
	mails []interfaces.Mail
}

func (m *mailerMock) Send(_ context.Context, mail interfaces.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mails = append(m.mails, mail)
	return nil
}

func (m *mailerMock) sent() []interfaces.Mail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]interfaces.Mail, len(m.mails))
	copy(out, m.mails)
	return out
}

func (m *mailerMock) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mails = nil
}

func newTestUseCases(repo *memory.Memory, mailer *mailerMock) *usecase.UseCases {
	notifier := notify.New(mailer, directory.New(repo.Member()),
		notify.WithBaseURL("https://portal.example.com"))
	return usecase.New(repo, usecase.WithNotifier(notifier))
}

func ctxWithUser(email, name string, role types.Role) context.Context {
	token := auth.NewToken("sub-"+email, email, name, role, time.Hour)
	return auth.ContextWithToken(context.Background(), token)
}

func TestCallCreate(t *testing.T) {
	t.Run("defaults to the first stage", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})

		created, err := uc.Call.Create(context.Background(), usecase.CreateCallInput{
			Title:  "Climate Resilience Fund 2026",
			Funder: "GreenFuture Foundation",
		})
		gt.NoError(t, err).Required()
		gt.Number(t, created.ID).NotEqual(0)
		gt.Value(t, created.Stage).Equal(types.CallStageInReview)
	})

	t.Run("explicit stage is honored", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})

		created, err := uc.Call.Create(context.Background(), usecase.CreateCallInput{
			Title: "Ocean Health Grant",
			Stage: "Drafting",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.Stage).Equal(types.CallStageDrafting)
	})

	t.Run("invalid stage is rejected", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})

		_, err := uc.Call.Create(context.Background(), usecase.CreateCallInput{
			Title: "Ocean Health Grant",
			Stage: "Limbo",
		})
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidStage)).True()
	})

	t.Run("title is required", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})

		_, err := uc.Call.Create(context.Background(), usecase.CreateCallInput{})
		gt.Error(t, err)
	})

	t.Run("permissions on unknown stages are rejected", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})

		_, err := uc.Call.Create(context.Background(), usecase.CreateCallInput{
			Title: "Ocean Health Grant",
			StagePermissions: model.StagePermissions{
				{Stage: "Qualifying", Assignees: []string{"alice@example.com"}},
			},
		})
		gt.Error(t, err)
	})

	t.Run("creation-time assignees are notified", func(t *testing.T) {
		repo := memory.New()
		mailer := &mailerMock{}
		uc := newTestUseCases(repo, mailer)

		_, err := uc.Call.Create(context.Background(), usecase.CreateCallInput{
			Title: "Ocean Health Grant",
			StagePermissions: model.StagePermissions{
				{Stage: "Drafting", Assignees: []string{"alice@example.com"}},
			},
		})
		gt.NoError(t, err).Required()

		mails := mailer.sent()
		gt.Array(t, mails).Length(1)
		gt.Array(t, mails[0].To).Length(1)
		gt.Value(t, mails[0].To[0]).Equal("alice@example.com")
		gt.Bool(t, strings.Contains(mails[0].Subject, "Drafting")).True()
	})
}

func TestCallUpdate(t *testing.T) {
	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})
		ctx := context.Background()

		created, err := uc.Call.Create(ctx, usecase.CreateCallInput{
			Title:    "Ocean Health Grant",
			Funder:   "BlueWater Trust",
			Amount:   250000,
			Currency: "EUR",
		})
		gt.NoError(t, err).Required()

		newTitle := "Ocean Health Grant (Round 2)"
		updated, err := uc.Call.Update(ctx, created.ID, usecase.UpdateCallInput{
			Title: &newTitle,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Title).Equal(newTitle)
		gt.Value(t, updated.Funder).Equal("BlueWater Trust")
		gt.Number(t, updated.Amount).Equal(250000)
		gt.Value(t, updated.Currency).Equal("EUR")
	})

	t.Run("empty title update is rejected", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})
		ctx := context.Background()

		created, err := uc.Call.Create(ctx, usecase.CreateCallInput{Title: "Ocean Health Grant"})
		gt.NoError(t, err).Required()

		empty := ""
		_, err = uc.Call.Update(ctx, created.ID, usecase.UpdateCallInput{Title: &empty})
		gt.Error(t, err)
	})

	t.Run("unknown call yields not found", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})

		_, err := uc.Call.Update(context.Background(), 9999, usecase.UpdateCallInput{})
		gt.Bool(t, errors.Is(err, usecase.ErrCallNotFound)).True()
	})
}

func TestCallStageWorkflow(t *testing.T) {
	t.Run("forward move notifies next stage assignees and logs status change", func(t *testing.T) {
		repo := memory.New()
		mailer := &mailerMock{}
		uc := newTestUseCases(repo, mailer)
		ctx := ctxWithUser("owner@example.com", "Owner", types.RoleMember)

		created, err := uc.Call.Create(ctx, usecase.CreateCallInput{
			Title: "Ocean Health Grant",
			StagePermissions: model.StagePermissions{
				{Stage: "Reviewing", Assignees: []string{"alice@example.com"}},
			},
		})
		gt.NoError(t, err).Required()
		mailer.reset()

		stage := "Reviewing"
		updated, err := uc.Call.Update(ctx, created.ID, usecase.UpdateCallInput{Stage: &stage})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Stage).Equal(types.CallStageReviewing)

		mails := mailer.sent()
		gt.Array(t, mails).Length(1)
		gt.Value(t, mails[0].To[0]).Equal("alice@example.com")
		gt.Bool(t, strings.Contains(mails[0].Subject, "moved to Reviewing")).True()

		activities, err := repo.Activity().ListByParent(ctx, created.ParentRef())
		gt.NoError(t, err).Required()
		gt.Array(t, activities).Length(1)
		gt.Value(t, activities[0].Type).Equal(types.ActivityTypeStatusChange)
		gt.Value(t, activities[0].Content).Equal("In Review → Reviewing")
		gt.Value(t, activities[0].Author).Equal("owner@example.com")
	})

	t.Run("backward move is silent", func(t *testing.T) {
		repo := memory.New()
		mailer := &mailerMock{}
		uc := newTestUseCases(repo, mailer)
		ctx := ctxWithUser("owner@example.com", "Owner", types.RoleMember)

		created, err := uc.Call.Create(ctx, usecase.CreateCallInput{
			Title: "Ocean Health Grant",
			Stage: "Drafting",
			StagePermissions: model.StagePermissions{
				{Stage: "Reviewing", Assignees: []string{"alice@example.com"}},
			},
		})
		gt.NoError(t, err).Required()
		mailer.reset()

		stage := "Reviewing"
		_, err = uc.Call.Update(ctx, created.ID, usecase.UpdateCallInput{Stage: &stage})
		gt.NoError(t, err).Required()

		gt.Array(t, mailer.sent()).Length(0)
		activities, err := repo.Activity().ListByParent(ctx, created.ParentRef())
		gt.NoError(t, err).Required()
		gt.Array(t, activities).Length(0)
	})

	t.Run("lateral move between terminal stages is silent", func(t *testing.T) {
		repo := memory.New()
		mailer := &mailerMock{}
		uc := newTestUseCases(repo, mailer)
		ctx := ctxWithUser("owner@example.com", "Owner", types.RoleMember)

		created, err := uc.Call.Create(ctx, usecase.CreateCallInput{
			Title: "Ocean Health Grant",
			Stage: "Accepted",
		})
		gt.NoError(t, err).Required()
		mailer.reset()

		stage := "Rejected"
		updated, err := uc.Call.Update(ctx, created.ID, usecase.UpdateCallInput{Stage: &stage})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Stage).Equal(types.CallStageRejected)

		gt.Array(t, mailer.sent()).Length(0)
		activities, err := repo.Activity().ListByParent(ctx, created.ParentRef())
		gt.NoError(t, err).Required()
		gt.Array(t, activities).Length(0)
	})

	t.Run("unchanged stage produces no notification", func(t *testing.T) {
		repo := memory.New()
		mailer := &mailerMock{}
		uc := newTestUseCases(repo, mailer)
		ctx := ctxWithUser("owner@example.com", "Owner", types.RoleMember)

		created, err := uc.Call.Create(ctx, usecase.CreateCallInput{Title: "Ocean Health Grant"})
		gt.NoError(t, err).Required()
		mailer.reset()

		funder := "BlueWater Trust"
		_, err = uc.Call.Update(ctx, created.ID, usecase.UpdateCallInput{Funder: &funder})
		gt.NoError(t, err).Required()
		gt.Array(t, mailer.sent()).Length(0)
	})

	t.Run("assignment mails precede the stage change mail", func(t *testing.T) {
		repo := memory.New()
		mailer := &mailerMock{}
		uc := newTestUseCases(repo, mailer)
		ctx := ctxWithUser("owner@example.com", "Owner", types.RoleMember)

		created, err := uc.Call.Create(ctx, usecase.CreateCallInput{Title: "Ocean Health Grant"})
		gt.NoError(t, err).Required()
		mailer.reset()

		// One request both assigns carol to Reviewing and advances the call
		// onto that stage.
		stage := "Reviewing"
		perms := model.StagePermissions{
			{Stage: "Reviewing", Assignees: []string{"carol@example.com"}},
		}
		_, err = uc.Call.Update(ctx, created.ID, usecase.UpdateCallInput{
			Stage:            &stage,
			StagePermissions: &perms,
		})
		gt.NoError(t, err).Required()

		mails := mailer.sent()
		gt.Array(t, mails).Length(2)
		gt.Bool(t, strings.Contains(mails[0].Subject, "Assigned to Reviewing")).True()
		gt.Bool(t, strings.Contains(mails[1].Subject, "moved to Reviewing")).True()
	})

	t.Run("status change log is skipped without a session", func(t *testing.T) {
		repo := memory.New()
		mailer := &mailerMock{}
		uc := newTestUseCases(repo, mailer)
		ctx := context.Background()

		created, err := uc.Call.Create(ctx, usecase.CreateCallInput{
			Title: "Ocean Health Grant",
			Stage: "Reviewing",
		})
		gt.NoError(t, err).Required()

		stage := "Go/No-Go"
		_, err = uc.Call.Update(ctx, created.ID, usecase.UpdateCallInput{Stage: &stage})
		gt.NoError(t, err).Required()

		activities, err := repo.Activity().ListByParent(ctx, created.ParentRef())
		gt.NoError(t, err).Required()
		gt.Array(t, activities).Length(0)
	})
}

func TestCallStagePermissionGate(t *testing.T) {
	setup := func(t *testing.T) (*memory.Memory, *usecase.UseCases, *model.OpenCall) {
		t.Helper()
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})

		created, err := uc.Call.Create(context.Background(), usecase.CreateCallInput{
			Title: "Ocean Health Grant",
			Stage: "Drafting",
			StagePermissions: model.StagePermissions{
				{Stage: "Drafting", Assignees: []string{"alice@example.com"}},
			},
		})
		gt.NoError(t, err).Required()
		return repo, uc, created
	}

	t.Run("assignee may edit", func(t *testing.T) {
		_, uc, created := setup(t)
		ctx := ctxWithUser("alice@example.com", "Alice", types.RoleMember)

		funder := "BlueWater Trust"
		_, err := uc.Call.Update(ctx, created.ID, usecase.UpdateCallInput{Funder: &funder})
		gt.NoError(t, err)
	})

	t.Run("non-assignee is denied", func(t *testing.T) {
		_, uc, created := setup(t)
		ctx := ctxWithUser("mallory@example.com", "Mallory", types.RoleMember)

		funder := "BlueWater Trust"
		_, err := uc.Call.Update(ctx, created.ID, usecase.UpdateCallInput{Funder: &funder})
		gt.Bool(t, errors.Is(err, usecase.ErrStageEditDenied)).True()
	})

	t.Run("admin bypasses the gate", func(t *testing.T) {
		_, uc, created := setup(t)
		ctx := ctxWithUser("root@example.com", "Root", types.RoleAdmin)

		funder := "BlueWater Trust"
		_, err := uc.Call.Update(ctx, created.ID, usecase.UpdateCallInput{Funder: &funder})
		gt.NoError(t, err)
	})

	t.Run("gate applies to notes, documents and deletion", func(t *testing.T) {
		_, uc, created := setup(t)
		ctx := ctxWithUser("mallory@example.com", "Mallory", types.RoleMember)

		_, err := uc.Call.AddNote(ctx, created.ID, "note body")
		gt.Bool(t, errors.Is(err, usecase.ErrStageEditDenied)).True()

		_, err = uc.Call.AttachDocument(ctx, created.ID,
			model.NewDocumentRef("a.pdf", "key", "url", "application/pdf", 10, "mallory@example.com"))
		gt.Bool(t, errors.Is(err, usecase.ErrStageEditDenied)).True()

		err = uc.Call.Delete(ctx, created.ID)
		gt.Bool(t, errors.Is(err, usecase.ErrStageEditDenied)).True()
	})

	t.Run("gate checks the current stage, not the target", func(t *testing.T) {
		_, uc, created := setup(t)
		// Mallory is assignee of the next stage but not the current one.
		ctx := ctxWithUser("mallory@example.com", "Mallory", types.RoleMember)

		stage := "Internal Approval"
		perms := model.StagePermissions{
			{Stage: "Internal Approval", Assignees: []string{"mallory@example.com"}},
		}
		_, err := uc.Call.Update(ctx, created.ID, usecase.UpdateCallInput{
			Stage:            &stage,
			StagePermissions: &perms,
		})
		gt.Bool(t, errors.Is(err, usecase.ErrStageEditDenied)).True()
	})
}

func TestCallNotesAndDocuments(t *testing.T) {
	repo := memory.New()
	uc := newTestUseCases(repo, &mailerMock{})
	ctx := ctxWithUser("alice@example.com", "Alice", types.RoleMember)

	created, err := uc.Call.Create(ctx, usecase.CreateCallInput{Title: "Ocean Health Grant"})
	gt.NoError(t, err).Required()

	withNote, err := uc.Call.AddNote(ctx, created.ID, "spoke with the program officer")
	gt.NoError(t, err).Required()
	gt.Array(t, withNote.Notes).Length(1)
	gt.Value(t, withNote.Notes[0].Author).Equal("alice@example.com")
	gt.Value(t, withNote.Notes[0].Body).Equal("spoke with the program officer")

	_, err = uc.Call.AddNote(ctx, created.ID, "")
	gt.Error(t, err)

	doc := model.NewDocumentRef("budget.xlsx", "key/budget.xlsx", "https://example.com/budget.xlsx",
		"application/vnd.ms-excel", 2048, "alice@example.com")
	withDoc, err := uc.Call.AttachDocument(ctx, created.ID, doc)
	gt.NoError(t, err).Required()
	gt.Array(t, withDoc.Documents).Length(1)
	gt.Value(t, withDoc.Documents[0].Name).Equal("budget.xlsx")
}

func TestCallDelete(t *testing.T) {
	t.Run("delete cascades into the activity feed", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})
		ctx := ctxWithUser("alice@example.com", "Alice", types.RoleMember)

		created, err := uc.Call.Create(ctx, usecase.CreateCallInput{Title: "Ocean Health Grant"})
		gt.NoError(t, err).Required()

		_, err = uc.Activity.Create(ctx, usecase.CreateActivityInput{
			Parent:  created.ParentRef(),
			Type:    "Internal Comment",
			Content: "looks promising",
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Call.Delete(ctx, created.ID))

		_, err = uc.Call.Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, usecase.ErrCallNotFound)).True()

		activities, err := repo.Activity().ListByParent(ctx, created.ParentRef())
		gt.NoError(t, err).Required()
		gt.Array(t, activities).Length(0)
	})

	t.Run("deleting an unknown call yields not found", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})

		err := uc.Call.Delete(context.Background(), 9999)
		gt.Bool(t, errors.Is(err, usecase.ErrCallNotFound)).True()
	})
}

func TestCallList(t *testing.T) {
	repo := memory.New()
	uc := newTestUseCases(repo, &mailerMock{})
	ctx := context.Background()

	for _, title := range []string{"Grant A", "Grant B", "Grant C"} {
		_, err := uc.Call.Create(ctx, usecase.CreateCallInput{Title: title})
		gt.NoError(t, err).Required()
	}

	calls, err := uc.Call.List(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, calls).Length(3)
}
