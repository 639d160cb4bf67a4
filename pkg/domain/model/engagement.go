package model

import (
	"time"

	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
)

// Engagement represents a bilateral relationship with a potential partner or
// funder, pursued outside of published calls.
type Engagement struct {
	ID               int64                 `json:"id" firestore:"id"`
	Organization     string                `json:"organization" firestore:"organization"`
	ContactName      string                `json:"contactName" firestore:"contact_name"`
	ContactEmail     string                `json:"contactEmail" firestore:"contact_email"`
	Description      string                `json:"description" firestore:"description"`
	Stage            types.EngagementStage `json:"stage" firestore:"stage"`
	StagePermissions StagePermissions      `json:"stagePermissions" firestore:"stage_permissions"`
	InternalOwner    string                `json:"internalOwner" firestore:"internal_owner"`
	Notes            []Note                `json:"notes" firestore:"notes"`
	Documents        []DocumentRef         `json:"documents" firestore:"documents"`
	CreatedAt        time.Time             `json:"createdAt" firestore:"created_at"`
	UpdatedAt        time.Time             `json:"updatedAt" firestore:"updated_at"`
}

// Clone returns a deep copy of the engagement
func (e *Engagement) Clone() *Engagement {
	copied := *e
	copied.StagePermissions = e.StagePermissions.Clone()
	copied.Notes = cloneNotes(e.Notes)
	copied.Documents = cloneDocumentRefs(e.Documents)
	return &copied
}

// ParentRef returns the tagged reference to this engagement
func (e *Engagement) ParentRef() types.ParentRef {
	return types.ParentRef{Kind: types.ParentKindEngagement, ID: e.ID}
}
