package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
)

func TestStagePermissionsValidate(t *testing.T) {
	table := types.CallStageTable()

	t.Run("valid set", func(t *testing.T) {
		perms := model.StagePermissions{
			{Stage: "Reviewing", Assignees: []string{"alice@example.com"}},
			{Stage: "Drafting", Assignees: []string{"bob@example.com"}},
		}
		gt.NoError(t, perms.Validate(table))
	})

	t.Run("empty set is valid", func(t *testing.T) {
		gt.NoError(t, model.StagePermissions{}.Validate(table))
		gt.NoError(t, model.StagePermissions(nil).Validate(table))
	})

	t.Run("unknown stage fails", func(t *testing.T) {
		perms := model.StagePermissions{
			{Stage: "Qualifying", Assignees: []string{"alice@example.com"}},
		}
		gt.Error(t, perms.Validate(table))
	})

	t.Run("duplicate stage fails", func(t *testing.T) {
		perms := model.StagePermissions{
			{Stage: "Drafting", Assignees: []string{"alice@example.com"}},
			{Stage: "Drafting", Assignees: []string{"bob@example.com"}},
		}
		gt.Error(t, perms.Validate(table))
	})
}

func TestStagePermissionsCanEdit(t *testing.T) {
	perms := model.StagePermissions{
		{Stage: "Reviewing", Assignees: []string{"alice@example.com", "Bob Smith"}},
		{Stage: "Drafting", Assignees: []string{}},
	}

	t.Run("assignee may edit", func(t *testing.T) {
		gt.Bool(t, perms.CanEdit("Reviewing", "alice@example.com")).True()
	})

	t.Run("non-assignee may not edit", func(t *testing.T) {
		gt.Bool(t, perms.CanEdit("Reviewing", "mallory@example.com")).False()
	})

	t.Run("whitespace does not defeat the comparison", func(t *testing.T) {
		gt.Bool(t, perms.CanEdit("Reviewing", "  alice@example.com ")).True()
	})

	t.Run("stage with empty assignee list is open", func(t *testing.T) {
		gt.Bool(t, perms.CanEdit("Drafting", "anyone@example.com")).True()
	})

	t.Run("stage without an entry is open", func(t *testing.T) {
		gt.Bool(t, perms.CanEdit("Submitted", "anyone@example.com")).True()
	})
}

func TestStagePermissionsAssignees(t *testing.T) {
	perms := model.StagePermissions{
		{Stage: "Reviewing", Assignees: []string{" alice@example.com", "", "bob@example.com "}},
	}

	assignees := perms.Assignees("Reviewing")
	gt.Array(t, assignees).Length(2)
	gt.Value(t, assignees[0]).Equal("alice@example.com")
	gt.Value(t, assignees[1]).Equal("bob@example.com")

	gt.Array(t, perms.Assignees("Drafting")).Length(0)
}

func TestDiffAssignees(t *testing.T) {
	table := types.CallStageTable()

	t.Run("additions only", func(t *testing.T) {
		prev := model.StagePermissions{
			{Stage: "Reviewing", Assignees: []string{"alice@example.com", "bob@example.com"}},
		}
		next := model.StagePermissions{
			{Stage: "Reviewing", Assignees: []string{"alice@example.com", "carol@example.com"}},
		}

		changes := model.DiffAssignees(prev, next, table)
		gt.Array(t, changes).Length(1)
		gt.Value(t, changes[0].Stage).Equal("Reviewing")
		gt.Array(t, changes[0].Added).Length(1)
		gt.Value(t, changes[0].Added[0]).Equal("carol@example.com")
	})

	t.Run("removals produce no change", func(t *testing.T) {
		prev := model.StagePermissions{
			{Stage: "Reviewing", Assignees: []string{"alice@example.com", "bob@example.com"}},
		}
		next := model.StagePermissions{
			{Stage: "Reviewing", Assignees: []string{"alice@example.com"}},
		}
		gt.Array(t, model.DiffAssignees(prev, next, table)).Length(0)
	})

	t.Run("output follows pipeline order regardless of entry order", func(t *testing.T) {
		next := model.StagePermissions{
			{Stage: "Submitted", Assignees: []string{"carol@example.com"}},
			{Stage: "In Review", Assignees: []string{"alice@example.com"}},
			{Stage: "Drafting", Assignees: []string{"bob@example.com"}},
		}

		changes := model.DiffAssignees(nil, next, table)
		gt.Array(t, changes).Length(3)
		gt.Value(t, changes[0].Stage).Equal("In Review")
		gt.Value(t, changes[1].Stage).Equal("Drafting")
		gt.Value(t, changes[2].Stage).Equal("Submitted")
	})

	t.Run("duplicates are reported once", func(t *testing.T) {
		next := model.StagePermissions{
			{Stage: "Reviewing", Assignees: []string{"alice@example.com", " alice@example.com"}},
		}
		changes := model.DiffAssignees(nil, next, table)
		gt.Array(t, changes).Length(1)
		gt.Array(t, changes[0].Added).Length(1)
	})

	t.Run("identical sets produce no change", func(t *testing.T) {
		perms := model.StagePermissions{
			{Stage: "Drafting", Assignees: []string{"alice@example.com"}},
		}
		gt.Array(t, model.DiffAssignees(perms, perms, table)).Length(0)
	})
}

func TestStagePermissionsClone(t *testing.T) {
	orig := model.StagePermissions{
		{Stage: "Reviewing", Assignees: []string{"alice@example.com"}},
	}
	copied := orig.Clone()
	copied[0].Assignees[0] = "mallory@example.com"

	gt.Value(t, orig[0].Assignees[0]).Equal("alice@example.com")
	gt.Value(t, model.StagePermissions(nil).Clone()).Nil()
}
