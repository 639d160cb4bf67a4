package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model/auth"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/service/notify"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/utils/errutil"
)

// workflowEngine runs the follow-up side of an entity update: assignment
// notifications, stage advance notifications, and the status change entry in
// the activity feed. Follow-ups run after the write is committed and their
// failures never propagate to the caller.
type workflowEngine struct {
	repo     interfaces.Repository
	notifier *notify.Service
}

// actor identifies who is performing an operation
type actor struct {
	Email string
	Name  string
	Admin bool
}

// actorFrom extracts the acting identity from the request context. A missing
// token yields an empty non-admin actor.
func actorFrom(ctx context.Context) actor {
	token, err := auth.TokenFromContext(ctx)
	if err != nil || token == nil {
		return actor{}
	}
	return actor{
		Email: token.Email,
		Name:  token.Name,
		Admin: token.IsAdmin(),
	}
}

// checkStageEdit gates a non-admin actor on the entity's current stage.
// Admins bypass the assignee list entirely.
func checkStageEdit(perms model.StagePermissions, stage string, who actor) error {
	if who.Admin {
		return nil
	}
	if perms.CanEdit(stage, who.Email) {
		return nil
	}
	return goerr.Wrap(ErrStageEditDenied, "stage edit denied",
		goerr.V(StageKey, stage), goerr.V(ActorKey, who.Email))
}

// followUp runs the post-commit steps of an update, in order: assignment
// additions first, then the stage transition. Stage notification and the
// status change activity fire only on a forward-eligible move to a different
// stage; backward and lateral moves update silently.
func (w *workflowEngine) followUp(ctx context.Context, target notify.Target,
	table types.StageTable, prevStage, nextStage string,
	prevPerms, nextPerms model.StagePermissions, who actor) {

	if w.notifier != nil {
		changes := model.DiffAssignees(prevPerms, nextPerms, table)
		if len(changes) > 0 {
			w.notifier.NotifyAssignments(ctx, target, changes)
		}
	}

	if prevStage == nextStage {
		return
	}

	transition := table.Classify(prevStage, nextStage)
	if !transition.ForwardEligible() {
		return
	}

	if w.notifier != nil {
		w.notifier.NotifyStageChange(ctx, target, prevStage, nextStage,
			nextPerms.Assignees(nextStage))
	}

	// No resolvable author means no session to attribute the change to, so the
	// activity log step is skipped rather than recorded anonymously.
	if who.Email == "" {
		return
	}
	entry := model.NewStatusChangeActivity(target.Parent, who.Email, prevStage, nextStage)
	if _, err := w.repo.Activity().Create(ctx, entry); err != nil {
		_ = errutil.Handle(ctx, err, "failed to record status change activity")
	}
}

// deleteActivities cascades an entity deletion into its activity feed
func (w *workflowEngine) deleteActivities(ctx context.Context, parent types.ParentRef) {
	if err := w.repo.Activity().DeleteByParent(ctx, parent); err != nil {
		_ = errutil.Handle(ctx, err, "failed to delete activities of removed entity")
	}
}

// notFound maps a repository miss onto the layer's sentinel
func notFound(err, sentinel error, key string, id any) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(sentinel, sentinel.Error(), goerr.V(key, id))
	}
	return err
}
