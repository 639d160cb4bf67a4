package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
)

type MemberUseCase struct {
	repo interfaces.Repository
}

func NewMemberUseCase(repo interfaces.Repository) *MemberUseCase {
	return &MemberUseCase{repo: repo}
}

// CreateMemberInput carries the fields of a new directory entry
type CreateMemberInput struct {
	Name  string
	Email string
	Title string
	Role  string
}

// UpdateMemberInput is a partial update: nil fields keep their current value
type UpdateMemberInput struct {
	Name  *string
	Email *string
	Title *string
	Role  *string
}

func (uc *MemberUseCase) Create(ctx context.Context, input CreateMemberInput) (*model.Member, error) {
	role := types.RoleMember
	if input.Role != "" {
		parsed, err := types.ParseRole(input.Role)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid member role")
		}
		role = parsed
	}

	member := &model.Member{
		Name:  input.Name,
		Email: input.Email,
		Title: input.Title,
		Role:  role,
	}
	if err := member.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid member")
	}

	if existing, err := uc.repo.Member().GetByEmail(ctx, input.Email); err != nil {
		return nil, goerr.Wrap(err, "failed to check member email")
	} else if existing != nil {
		return nil, goerr.New("member email already registered", goerr.V("email", input.Email))
	}

	created, err := uc.repo.Member().Create(ctx, member)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create member")
	}
	return created, nil
}

func (uc *MemberUseCase) Get(ctx context.Context, id types.MemberID) (*model.Member, error) {
	member, err := uc.repo.Member().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrMemberNotFound, MemberIDKey, id)
	}
	return member, nil
}

func (uc *MemberUseCase) List(ctx context.Context) ([]*model.Member, error) {
	members, err := uc.repo.Member().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list members")
	}
	return members, nil
}

func (uc *MemberUseCase) Update(ctx context.Context, id types.MemberID, input UpdateMemberInput) (*model.Member, error) {
	existing, err := uc.repo.Member().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrMemberNotFound, MemberIDKey, id)
	}

	next := existing.Clone()
	if input.Name != nil {
		next.Name = *input.Name
	}
	if input.Email != nil {
		next.Email = *input.Email
	}
	if input.Title != nil {
		next.Title = *input.Title
	}
	if input.Role != nil {
		parsed, err := types.ParseRole(*input.Role)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid member role")
		}
		next.Role = parsed
	}
	if err := next.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid member")
	}

	updated, err := uc.repo.Member().Update(ctx, next)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update member", goerr.V(MemberIDKey, id))
	}
	return updated, nil
}

func (uc *MemberUseCase) Delete(ctx context.Context, id types.MemberID) error {
	if err := uc.repo.Member().Delete(ctx, id); err != nil {
		return notFound(err, ErrMemberNotFound, MemberIDKey, id)
	}
	return nil
}
