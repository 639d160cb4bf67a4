package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/service/notify"
)

type EngagementUseCase struct {
	repo   interfaces.Repository
	engine *workflowEngine
}

func NewEngagementUseCase(repo interfaces.Repository, engine *workflowEngine) *EngagementUseCase {
	return &EngagementUseCase{repo: repo, engine: engine}
}

// CreateEngagementInput carries the fields of a new engagement
type CreateEngagementInput struct {
	Organization     string
	ContactName      string
	ContactEmail     string
	Description      string
	Stage            string
	StagePermissions model.StagePermissions
	InternalOwner    string
}

// UpdateEngagementInput is a partial update: nil fields keep their current
// value
type UpdateEngagementInput struct {
	Organization     *string
	ContactName      *string
	ContactEmail     *string
	Description      *string
	Stage            *string
	StagePermissions *model.StagePermissions
	InternalOwner    *string
}

func (uc *EngagementUseCase) Create(ctx context.Context, input CreateEngagementInput) (*model.Engagement, error) {
	if input.Organization == "" {
		return nil, goerr.New("engagement organization is required")
	}

	stage := types.EngagementStageProspecting
	if input.Stage != "" {
		parsed, err := types.ParseEngagementStage(input.Stage)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidStage, "invalid engagement stage", goerr.V(StageKey, input.Stage))
		}
		stage = parsed
	}

	if err := input.StagePermissions.Validate(types.EngagementStageTable()); err != nil {
		return nil, goerr.Wrap(err, "invalid stage permissions")
	}

	engagement := &model.Engagement{
		Organization:     input.Organization,
		ContactName:      input.ContactName,
		ContactEmail:     input.ContactEmail,
		Description:      input.Description,
		Stage:            stage,
		StagePermissions: input.StagePermissions.Clone(),
		InternalOwner:    input.InternalOwner,
	}

	created, err := uc.repo.Engagement().Create(ctx, engagement)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create engagement")
	}

	if uc.engine.notifier != nil {
		changes := model.DiffAssignees(nil, created.StagePermissions, types.EngagementStageTable())
		if len(changes) > 0 {
			uc.engine.notifier.NotifyAssignments(ctx, notify.Target{
				Parent: created.ParentRef(),
				Title:  created.Organization,
			}, changes)
		}
	}

	return created, nil
}

func (uc *EngagementUseCase) Get(ctx context.Context, id int64) (*model.Engagement, error) {
	engagement, err := uc.repo.Engagement().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrEngagementNotFound, EngagementIDKey, id)
	}
	return engagement, nil
}

func (uc *EngagementUseCase) List(ctx context.Context) ([]*model.Engagement, error) {
	engagements, err := uc.repo.Engagement().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list engagements")
	}
	return engagements, nil
}

// Update applies a partial update, gated by the current stage's assignee
// list, then runs the workflow follow-ups against the state before and after
// the write.
func (uc *EngagementUseCase) Update(ctx context.Context, id int64, input UpdateEngagementInput) (*model.Engagement, error) {
	existing, err := uc.repo.Engagement().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrEngagementNotFound, EngagementIDKey, id)
	}

	who := actorFrom(ctx)
	if err := checkStageEdit(existing.StagePermissions, existing.Stage.String(), who); err != nil {
		return nil, err
	}

	next := existing.Clone()
	if input.Organization != nil {
		if *input.Organization == "" {
			return nil, goerr.New("engagement organization is required")
		}
		next.Organization = *input.Organization
	}
	if input.ContactName != nil {
		next.ContactName = *input.ContactName
	}
	if input.ContactEmail != nil {
		next.ContactEmail = *input.ContactEmail
	}
	if input.Description != nil {
		next.Description = *input.Description
	}
	if input.Stage != nil {
		parsed, err := types.ParseEngagementStage(*input.Stage)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidStage, "invalid engagement stage", goerr.V(StageKey, *input.Stage))
		}
		next.Stage = parsed
	}
	if input.StagePermissions != nil {
		if err := input.StagePermissions.Validate(types.EngagementStageTable()); err != nil {
			return nil, goerr.Wrap(err, "invalid stage permissions")
		}
		next.StagePermissions = input.StagePermissions.Clone()
	}
	if input.InternalOwner != nil {
		next.InternalOwner = *input.InternalOwner
	}

	updated, err := uc.repo.Engagement().Update(ctx, next)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update engagement", goerr.V(EngagementIDKey, id))
	}

	uc.engine.followUp(ctx,
		notify.Target{Parent: updated.ParentRef(), Title: updated.Organization},
		types.EngagementStageTable(),
		existing.Stage.String(), updated.Stage.String(),
		existing.StagePermissions, updated.StagePermissions,
		who)

	return updated, nil
}

// AddNote appends a note to the engagement. Notes are append-only.
func (uc *EngagementUseCase) AddNote(ctx context.Context, id int64, body string) (*model.Engagement, error) {
	if body == "" {
		return nil, goerr.New("note body is required")
	}

	existing, err := uc.repo.Engagement().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrEngagementNotFound, EngagementIDKey, id)
	}

	who := actorFrom(ctx)
	if err := checkStageEdit(existing.StagePermissions, existing.Stage.String(), who); err != nil {
		return nil, err
	}

	next := existing.Clone()
	next.Notes = append(next.Notes, model.NewNote(who.Email, body))

	updated, err := uc.repo.Engagement().Update(ctx, next)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to append note", goerr.V(EngagementIDKey, id))
	}
	return updated, nil
}

// AttachDocument links an already-stored upload to the engagement
func (uc *EngagementUseCase) AttachDocument(ctx context.Context, id int64, doc model.DocumentRef) (*model.Engagement, error) {
	existing, err := uc.repo.Engagement().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrEngagementNotFound, EngagementIDKey, id)
	}

	who := actorFrom(ctx)
	if err := checkStageEdit(existing.StagePermissions, existing.Stage.String(), who); err != nil {
		return nil, err
	}

	next := existing.Clone()
	next.Documents = append(next.Documents, doc)

	updated, err := uc.repo.Engagement().Update(ctx, next)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to attach document", goerr.V(EngagementIDKey, id))
	}
	return updated, nil
}

// Delete removes the engagement and cascades into its activity feed
func (uc *EngagementUseCase) Delete(ctx context.Context, id int64) error {
	existing, err := uc.repo.Engagement().Get(ctx, id)
	if err != nil {
		return notFound(err, ErrEngagementNotFound, EngagementIDKey, id)
	}

	who := actorFrom(ctx)
	if err := checkStageEdit(existing.StagePermissions, existing.Stage.String(), who); err != nil {
		return err
	}

	if err := uc.repo.Engagement().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete engagement", goerr.V(EngagementIDKey, id))
	}

	uc.engine.deleteActivities(ctx, existing.ParentRef())
	return nil
}
