package model

import (
	"time"

	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
)

// OpenCall represents a published funding call the team is pursuing
type OpenCall struct {
	ID               int64            `json:"id" firestore:"id"`
	Title            string           `json:"title" firestore:"title"`
	Funder           string           `json:"funder" firestore:"funder"`
	Description      string           `json:"description" firestore:"description"`
	Amount           int64            `json:"amount" firestore:"amount"`
	Currency         string           `json:"currency" firestore:"currency"`
	Deadline         time.Time        `json:"deadline" firestore:"deadline"`
	Link             string           `json:"link" firestore:"link"`
	Stage            types.CallStage  `json:"stage" firestore:"stage"`
	StagePermissions StagePermissions `json:"stagePermissions" firestore:"stage_permissions"`
	InternalOwner    string           `json:"internalOwner" firestore:"internal_owner"`
	Notes            []Note           `json:"notes" firestore:"notes"`
	Documents        []DocumentRef    `json:"documents" firestore:"documents"`
	CreatedAt        time.Time        `json:"createdAt" firestore:"created_at"`
	UpdatedAt        time.Time        `json:"updatedAt" firestore:"updated_at"`
}

// Clone returns a deep copy of the open call
func (c *OpenCall) Clone() *OpenCall {
	copied := *c
	copied.StagePermissions = c.StagePermissions.Clone()
	copied.Notes = cloneNotes(c.Notes)
	copied.Documents = cloneDocumentRefs(c.Documents)
	return &copied
}

// ParentRef returns the tagged reference to this call
func (c *OpenCall) ParentRef() types.ParentRef {
	return types.ParentRef{Kind: types.ParentKindOpenCall, ID: c.ID}
}
