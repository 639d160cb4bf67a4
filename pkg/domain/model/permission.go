package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
)

// StagePermission grants edit rights on one pipeline stage to a set of
// assignees. An entry with no assignees means the stage is open to everyone.
type StagePermission struct {
	Stage     string   `json:"stage" firestore:"stage"`
	Assignees []string `json:"assignees" firestore:"assignees"`
}

// StagePermissions is the per-entity permission set, at most one entry per
// stage.
type StagePermissions []StagePermission

// Validate checks that every entry references a stage of the given table and
// that no stage appears twice.
func (p StagePermissions) Validate(table types.StageTable) error {
	seen := make(map[string]bool, len(p))
	for _, entry := range p {
		if !table.Contains(entry.Stage) {
			return goerr.New("stage permission references unknown stage", goerr.V("stage", entry.Stage))
		}
		if seen[entry.Stage] {
			return goerr.New("duplicate stage permission entry", goerr.V("stage", entry.Stage))
		}
		seen[entry.Stage] = true
	}
	return nil
}

// Assignees returns the assignee identifiers configured for the stage, in
// canonical form. Missing entries yield nil.
func (p StagePermissions) Assignees(stage string) []string {
	for _, entry := range p {
		if entry.Stage == stage {
			out := make([]string, 0, len(entry.Assignees))
			for _, a := range entry.Assignees {
				if id := types.NormalizeIdentifier(a); id != "" {
					out = append(out, id)
				}
			}
			return out
		}
	}
	return nil
}

// CanEdit reports whether the candidate may edit the entity while it sits on
// the given stage. A missing entry or an empty assignee set means open
// editing. Admin bypass is the caller's responsibility; this check only
// gates non-admin actors.
func (p StagePermissions) CanEdit(stage, candidate string) bool {
	assignees := p.Assignees(stage)
	if len(assignees) == 0 {
		return true
	}
	candidate = types.NormalizeIdentifier(candidate)
	for _, a := range assignees {
		if a == candidate {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the permission set
func (p StagePermissions) Clone() StagePermissions {
	if p == nil {
		return nil
	}
	out := make(StagePermissions, len(p))
	for i, entry := range p {
		assignees := make([]string, len(entry.Assignees))
		copy(assignees, entry.Assignees)
		out[i] = StagePermission{Stage: entry.Stage, Assignees: assignees}
	}
	return out
}

// AssignmentChange reports the assignees newly granted access to a stage by
// a permission update. Removals are intentionally not tracked: the engine
// notifies about new access, never about revocation.
type AssignmentChange struct {
	Stage string
	Added []string
}

// DiffAssignees computes the per-stage additions between two permission
// sets. It iterates every stage of the entity type's pipeline in order, so
// output order is deterministic regardless of the entries' order in either
// set. Stages without additions produce no entry.
func DiffAssignees(prev, next StagePermissions, table types.StageTable) []AssignmentChange {
	var changes []AssignmentChange
	for _, stage := range table.Stages() {
		before := make(map[string]bool)
		for _, a := range prev.Assignees(stage) {
			before[a] = true
		}

		var added []string
		seen := make(map[string]bool)
		for _, a := range next.Assignees(stage) {
			if before[a] || seen[a] {
				continue
			}
			seen[a] = true
			added = append(added, a)
		}

		if len(added) > 0 {
			changes = append(changes, AssignmentChange{Stage: stage, Added: added})
		}
	}
	return changes
}
