package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/repository/memory"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/usecase"
)

func TestEngagementCreate(t *testing.T) {
	t.Run("defaults to prospecting", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})

		created, err := uc.Engagement.Create(context.Background(), usecase.CreateEngagementInput{
			Organization: "Northwind Philanthropies",
			ContactName:  "Dana Engel",
			ContactEmail: "dana@northwind.example.com",
		})
		gt.NoError(t, err).Required()
		gt.Number(t, created.ID).NotEqual(0)
		gt.Value(t, created.Stage).Equal(types.EngagementStageProspecting)
	})

	t.Run("organization is required", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})

		_, err := uc.Engagement.Create(context.Background(), usecase.CreateEngagementInput{})
		gt.Error(t, err)
	})

	t.Run("call stages are rejected", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})

		_, err := uc.Engagement.Create(context.Background(), usecase.CreateEngagementInput{
			Organization: "Northwind Philanthropies",
			Stage:        "Drafting",
		})
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidStage)).True()
	})
}

func TestEngagementStageWorkflow(t *testing.T) {
	t.Run("forward move notifies and logs", func(t *testing.T) {
		repo := memory.New()
		mailer := &mailerMock{}
		uc := newTestUseCases(repo, mailer)
		ctx := ctxWithUser("owner@example.com", "Owner", types.RoleMember)

		created, err := uc.Engagement.Create(ctx, usecase.CreateEngagementInput{
			Organization: "Northwind Philanthropies",
			StagePermissions: model.StagePermissions{
				{Stage: "First Contact", Assignees: []string{"alice@example.com"}},
			},
		})
		gt.NoError(t, err).Required()
		mailer.reset()

		stage := "First Contact"
		updated, err := uc.Engagement.Update(ctx, created.ID, usecase.UpdateEngagementInput{Stage: &stage})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Stage).Equal(types.EngagementStageFirstContact)

		mails := mailer.sent()
		gt.Array(t, mails).Length(1)
		gt.Value(t, mails[0].To[0]).Equal("alice@example.com")
		gt.Bool(t, strings.Contains(mails[0].Subject, "Northwind Philanthropies")).True()

		activities, err := repo.Activity().ListByParent(ctx, created.ParentRef())
		gt.NoError(t, err).Required()
		gt.Array(t, activities).Length(1)
		gt.Value(t, activities[0].Content).Equal("Prospecting → First Contact")
	})

	t.Run("outcome siblings are lateral and silent", func(t *testing.T) {
		repo := memory.New()
		mailer := &mailerMock{}
		uc := newTestUseCases(repo, mailer)
		ctx := ctxWithUser("owner@example.com", "Owner", types.RoleMember)

		created, err := uc.Engagement.Create(ctx, usecase.CreateEngagementInput{
			Organization: "Northwind Philanthropies",
			Stage:        "Partner",
		})
		gt.NoError(t, err).Required()
		mailer.reset()

		stage := "Funder"
		updated, err := uc.Engagement.Update(ctx, created.ID, usecase.UpdateEngagementInput{Stage: &stage})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Stage).Equal(types.EngagementStageFunder)

		gt.Array(t, mailer.sent()).Length(0)
		activities, err := repo.Activity().ListByParent(ctx, created.ParentRef())
		gt.NoError(t, err).Required()
		gt.Array(t, activities).Length(0)
	})

	t.Run("non-assignee is denied and admin bypasses", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})

		created, err := uc.Engagement.Create(context.Background(), usecase.CreateEngagementInput{
			Organization: "Northwind Philanthropies",
			Stage:        "Qualifying",
			StagePermissions: model.StagePermissions{
				{Stage: "Qualifying", Assignees: []string{"alice@example.com"}},
			},
		})
		gt.NoError(t, err).Required()

		desc := "updated description"
		ctx := ctxWithUser("mallory@example.com", "Mallory", types.RoleMember)
		_, err = uc.Engagement.Update(ctx, created.ID, usecase.UpdateEngagementInput{Description: &desc})
		gt.Bool(t, errors.Is(err, usecase.ErrStageEditDenied)).True()

		ctx = ctxWithUser("root@example.com", "Root", types.RoleAdmin)
		updated, err := uc.Engagement.Update(ctx, created.ID, usecase.UpdateEngagementInput{Description: &desc})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Description).Equal(desc)
	})
}

func TestEngagementNotesAndDelete(t *testing.T) {
	repo := memory.New()
	uc := newTestUseCases(repo, &mailerMock{})
	ctx := ctxWithUser("alice@example.com", "Alice", types.RoleMember)

	created, err := uc.Engagement.Create(ctx, usecase.CreateEngagementInput{
		Organization: "Northwind Philanthropies",
	})
	gt.NoError(t, err).Required()

	withNote, err := uc.Engagement.AddNote(ctx, created.ID, "met at the annual conference")
	gt.NoError(t, err).Required()
	gt.Array(t, withNote.Notes).Length(1)

	_, err = uc.Activity.Create(ctx, usecase.CreateActivityInput{
		Parent:  created.ParentRef(),
		Type:    "Meeting Note",
		Content: "kickoff meeting",
	})
	gt.NoError(t, err).Required()

	gt.NoError(t, uc.Engagement.Delete(ctx, created.ID))

	_, err = uc.Engagement.Get(ctx, created.ID)
	gt.Bool(t, errors.Is(err, usecase.ErrEngagementNotFound)).True()

	activities, err := repo.Activity().ListByParent(ctx, created.ParentRef())
	gt.NoError(t, err).Required()
	gt.Array(t, activities).Length(0)
}
