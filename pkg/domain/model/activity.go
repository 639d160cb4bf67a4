package model

import (
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
)

// Activity is an immutable audit/comment record attached to a workflow
// entity. Records are created either automatically on forward stage
// transitions or manually by a user, and never mutated afterwards.
type Activity struct {
	ID        int64              `json:"id" firestore:"id"`
	Author    string             `json:"author" firestore:"author"`
	Type      types.ActivityType `json:"type" firestore:"type"`
	Content   string             `json:"content" firestore:"content"`
	Sentiment types.Sentiment    `json:"sentiment" firestore:"sentiment"`
	Documents []DocumentRef      `json:"documents" firestore:"documents"`
	Parent    types.ParentRef    `json:"parent" firestore:"parent"`
	CreatedAt time.Time          `json:"createdAt" firestore:"created_at"`
}

// Validate checks required activity fields
func (a *Activity) Validate() error {
	if !a.Type.IsValid() {
		return goerr.New("invalid activity type", goerr.V("type", string(a.Type)))
	}
	if !a.Sentiment.IsValid() {
		return goerr.New("invalid sentiment", goerr.V("sentiment", string(a.Sentiment)))
	}
	if err := a.Parent.Validate(); err != nil {
		return goerr.Wrap(err, "invalid activity parent")
	}
	if a.Content == "" {
		return goerr.New("activity content is required")
	}
	return nil
}

// Clone returns a deep copy of the activity
func (a *Activity) Clone() *Activity {
	copied := *a
	copied.Documents = cloneDocumentRefs(a.Documents)
	return &copied
}

// NewStatusChangeActivity builds the automatic audit record for a forward
// stage transition.
func NewStatusChangeActivity(parent types.ParentRef, author, prevStage, nextStage string) *Activity {
	return &Activity{
		Author:    author,
		Type:      types.ActivityTypeStatusChange,
		Content:   fmt.Sprintf("%s → %s", prevStage, nextStage),
		Sentiment: types.SentimentNone,
		Parent:    parent,
	}
}
