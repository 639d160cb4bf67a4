package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/service/notify"
)

type CallUseCase struct {
	repo   interfaces.Repository
	engine *workflowEngine
}

func NewCallUseCase(repo interfaces.Repository, engine *workflowEngine) *CallUseCase {
	return &CallUseCase{repo: repo, engine: engine}
}

// CreateCallInput carries the fields of a new open call
type CreateCallInput struct {
	Title            string
	Funder           string
	Description      string
	Amount           int64
	Currency         string
	Deadline         time.Time
	Link             string
	Stage            string
	StagePermissions model.StagePermissions
	InternalOwner    string
}

// UpdateCallInput is a partial update: nil fields keep their current value
type UpdateCallInput struct {
	Title            *string
	Funder           *string
	Description      *string
	Amount           *int64
	Currency         *string
	Deadline         *time.Time
	Link             *string
	Stage            *string
	StagePermissions *model.StagePermissions
	InternalOwner    *string
}

func (uc *CallUseCase) Create(ctx context.Context, input CreateCallInput) (*model.OpenCall, error) {
	if input.Title == "" {
		return nil, goerr.New("call title is required")
	}

	stage := types.CallStageInReview
	if input.Stage != "" {
		parsed, err := types.ParseCallStage(input.Stage)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidStage, "invalid call stage", goerr.V(StageKey, input.Stage))
		}
		stage = parsed
	}

	if err := input.StagePermissions.Validate(types.CallStageTable()); err != nil {
		return nil, goerr.Wrap(err, "invalid stage permissions")
	}

	call := &model.OpenCall{
		Title:            input.Title,
		Funder:           input.Funder,
		Description:      input.Description,
		Amount:           input.Amount,
		Currency:         input.Currency,
		Deadline:         input.Deadline,
		Link:             input.Link,
		Stage:            stage,
		StagePermissions: input.StagePermissions.Clone(),
		InternalOwner:    input.InternalOwner,
	}

	created, err := uc.repo.OpenCall().Create(ctx, call)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create open call")
	}

	// Assignees named at creation get notified the same way as assignees
	// added later.
	if uc.engine.notifier != nil {
		changes := model.DiffAssignees(nil, created.StagePermissions, types.CallStageTable())
		if len(changes) > 0 {
			uc.engine.notifier.NotifyAssignments(ctx, notify.Target{
				Parent: created.ParentRef(),
				Title:  created.Title,
			}, changes)
		}
	}

	return created, nil
}

func (uc *CallUseCase) Get(ctx context.Context, id int64) (*model.OpenCall, error) {
	call, err := uc.repo.OpenCall().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCallNotFound, CallIDKey, id)
	}
	return call, nil
}

func (uc *CallUseCase) List(ctx context.Context) ([]*model.OpenCall, error) {
	calls, err := uc.repo.OpenCall().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list open calls")
	}
	return calls, nil
}

// Update applies a partial update, gated by the current stage's assignee
// list, then runs the workflow follow-ups against the state before and after
// the write.
func (uc *CallUseCase) Update(ctx context.Context, id int64, input UpdateCallInput) (*model.OpenCall, error) {
	existing, err := uc.repo.OpenCall().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCallNotFound, CallIDKey, id)
	}

	who := actorFrom(ctx)
	if err := checkStageEdit(existing.StagePermissions, existing.Stage.String(), who); err != nil {
		return nil, err
	}

	next := existing.Clone()
	if input.Title != nil {
		if *input.Title == "" {
			return nil, goerr.New("call title is required")
		}
		next.Title = *input.Title
	}
	if input.Funder != nil {
		next.Funder = *input.Funder
	}
	if input.Description != nil {
		next.Description = *input.Description
	}
	if input.Amount != nil {
		next.Amount = *input.Amount
	}
	if input.Currency != nil {
		next.Currency = *input.Currency
	}
	if input.Deadline != nil {
		next.Deadline = *input.Deadline
	}
	if input.Link != nil {
		next.Link = *input.Link
	}
	if input.Stage != nil {
		parsed, err := types.ParseCallStage(*input.Stage)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidStage, "invalid call stage", goerr.V(StageKey, *input.Stage))
		}
		next.Stage = parsed
	}
	if input.StagePermissions != nil {
		if err := input.StagePermissions.Validate(types.CallStageTable()); err != nil {
			return nil, goerr.Wrap(err, "invalid stage permissions")
		}
		next.StagePermissions = input.StagePermissions.Clone()
	}
	if input.InternalOwner != nil {
		next.InternalOwner = *input.InternalOwner
	}

	updated, err := uc.repo.OpenCall().Update(ctx, next)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update open call", goerr.V(CallIDKey, id))
	}

	uc.engine.followUp(ctx,
		notify.Target{Parent: updated.ParentRef(), Title: updated.Title},
		types.CallStageTable(),
		existing.Stage.String(), updated.Stage.String(),
		existing.StagePermissions, updated.StagePermissions,
		who)

	return updated, nil
}

// AddNote appends a note to the call. Notes are append-only.
func (uc *CallUseCase) AddNote(ctx context.Context, id int64, body string) (*model.OpenCall, error) {
	if body == "" {
		return nil, goerr.New("note body is required")
	}

	existing, err := uc.repo.OpenCall().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCallNotFound, CallIDKey, id)
	}

	who := actorFrom(ctx)
	if err := checkStageEdit(existing.StagePermissions, existing.Stage.String(), who); err != nil {
		return nil, err
	}

	next := existing.Clone()
	next.Notes = append(next.Notes, model.NewNote(who.Email, body))

	updated, err := uc.repo.OpenCall().Update(ctx, next)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to append note", goerr.V(CallIDKey, id))
	}
	return updated, nil
}

// AttachDocument links an already-stored upload to the call
func (uc *CallUseCase) AttachDocument(ctx context.Context, id int64, doc model.DocumentRef) (*model.OpenCall, error) {
	existing, err := uc.repo.OpenCall().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCallNotFound, CallIDKey, id)
	}

	who := actorFrom(ctx)
	if err := checkStageEdit(existing.StagePermissions, existing.Stage.String(), who); err != nil {
		return nil, err
	}

	next := existing.Clone()
	next.Documents = append(next.Documents, doc)

	updated, err := uc.repo.OpenCall().Update(ctx, next)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to attach document", goerr.V(CallIDKey, id))
	}
	return updated, nil
}

// Delete removes the call and cascades into its activity feed
func (uc *CallUseCase) Delete(ctx context.Context, id int64) error {
	existing, err := uc.repo.OpenCall().Get(ctx, id)
	if err != nil {
		return notFound(err, ErrCallNotFound, CallIDKey, id)
	}

	who := actorFrom(ctx)
	if err := checkStageEdit(existing.StagePermissions, existing.Stage.String(), who); err != nil {
		return err
	}

	if err := uc.repo.OpenCall().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete open call", goerr.V(CallIDKey, id))
	}

	uc.engine.deleteActivities(ctx, existing.ParentRef())
	return nil
}
