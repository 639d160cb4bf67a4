package model

import (
	"time"

	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
)

// AssistRole is the speaker of an assistant chat message
type AssistRole string

const (
	AssistRoleUser      AssistRole = "user"
	AssistRoleAssistant AssistRole = "assistant"
)

// AssistSession is one grant-drafting chat thread. A session may be bound to
// an open call or engagement, whose details seed the assistant's context.
type AssistSession struct {
	ID        types.SessionID `json:"id" firestore:"id"`
	Owner     string          `json:"owner" firestore:"owner"`
	Title     string          `json:"title" firestore:"title"`
	Parent    types.ParentRef `json:"parent,omitempty" firestore:"parent"`
	CreatedAt time.Time       `json:"createdAt" firestore:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" firestore:"updated_at"`
}

// AssistMessage is one turn of an assistant chat session. Messages are
// append-only; the persisted sequence is the session's checkpoint state.
type AssistMessage struct {
	ID        string          `json:"id" firestore:"id"`
	SessionID types.SessionID `json:"sessionId" firestore:"session_id"`
	Role      AssistRole      `json:"role" firestore:"role"`
	Content   string          `json:"content" firestore:"content"`
	CreatedAt time.Time       `json:"createdAt" firestore:"created_at"`
}

// Clone returns a copy of the session
func (s *AssistSession) Clone() *AssistSession {
	copied := *s
	return &copied
}
