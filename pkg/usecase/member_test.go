package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/repository/memory"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/usecase"
)

func TestMemberCreate(t *testing.T) {
	t.Run("create with defaults", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})

		created, err := uc.Member.Create(context.Background(), usecase.CreateMemberInput{
			Name:  "Alice Adams",
			Email: "Alice@Example.com",
			Title: "Grants Manager",
		})
		gt.NoError(t, err).Required()
		gt.NoError(t, created.ID.Validate())
		gt.Value(t, created.Role).Equal(types.RoleMember)
		// Email is canonicalized on write.
		gt.Value(t, created.Email).Equal("alice@example.com")
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})
		ctx := context.Background()

		_, err := uc.Member.Create(ctx, usecase.CreateMemberInput{
			Name:  "Alice Adams",
			Email: "alice@example.com",
		})
		gt.NoError(t, err).Required()

		_, err = uc.Member.Create(ctx, usecase.CreateMemberInput{
			Name:  "Alice Impostor",
			Email: "ALICE@example.com",
		})
		gt.Error(t, err)
	})

	t.Run("invalid role is rejected", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})

		_, err := uc.Member.Create(context.Background(), usecase.CreateMemberInput{
			Name:  "Alice Adams",
			Email: "alice@example.com",
			Role:  "superuser",
		})
		gt.Error(t, err)
	})

	t.Run("name and email are required", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(repo, &mailerMock{})

		_, err := uc.Member.Create(context.Background(), usecase.CreateMemberInput{Email: "a@example.com"})
		gt.Error(t, err)

		_, err = uc.Member.Create(context.Background(), usecase.CreateMemberInput{Name: "Alice"})
		gt.Error(t, err)
	})
}

func TestMemberUpdate(t *testing.T) {
	repo := memory.New()
	uc := newTestUseCases(repo, &mailerMock{})
	ctx := context.Background()

	created, err := uc.Member.Create(ctx, usecase.CreateMemberInput{
		Name:  "Alice Adams",
		Email: "alice@example.com",
	})
	gt.NoError(t, err).Required()

	role := "admin"
	title := "Director of Development"
	updated, err := uc.Member.Update(ctx, created.ID, usecase.UpdateMemberInput{
		Role:  &role,
		Title: &title,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Role).Equal(types.RoleAdmin)
	gt.Value(t, updated.Title).Equal(title)
	gt.Value(t, updated.Name).Equal("Alice Adams")

	_, err = uc.Member.Update(ctx, types.NewMemberID(), usecase.UpdateMemberInput{})
	gt.Bool(t, errors.Is(err, usecase.ErrMemberNotFound)).True()
}

func TestMemberListAndDelete(t *testing.T) {
	repo := memory.New()
	uc := newTestUseCases(repo, &mailerMock{})
	ctx := context.Background()

	carol, err := uc.Member.Create(ctx, usecase.CreateMemberInput{Name: "Carol", Email: "carol@example.com"})
	gt.NoError(t, err).Required()
	_, err = uc.Member.Create(ctx, usecase.CreateMemberInput{Name: "Alice", Email: "alice@example.com"})
	gt.NoError(t, err).Required()

	members, err := uc.Member.List(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, members).Length(2)
	// The directory lists by display name.
	gt.Value(t, members[0].Name).Equal("Alice")
	gt.Value(t, members[1].Name).Equal("Carol")

	gt.NoError(t, uc.Member.Delete(ctx, carol.ID))
	_, err = uc.Member.Get(ctx, carol.ID)
	gt.Bool(t, errors.Is(err, usecase.ErrMemberNotFound)).True()

	err = uc.Member.Delete(ctx, carol.ID)
	gt.Bool(t, errors.Is(err, usecase.ErrMemberNotFound)).True()
}
