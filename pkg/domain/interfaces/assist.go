package interfaces

import (
	"context"

	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
)

// AssistRepository persists assistant chat sessions and their message
// history. The stored history is the session's checkpoint: rebuilding the
// conversation for the LLM reads it back in order.
type AssistRepository interface {
	// CreateSession creates a new chat session
	CreateSession(ctx context.Context, s *model.AssistSession) (*model.AssistSession, error)

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, id types.SessionID) (*model.AssistSession, error)

	// ListSessions retrieves all sessions of an owner, newest first
	ListSessions(ctx context.Context, owner string) ([]*model.AssistSession, error)

	// AppendMessage appends one message to a session
	AppendMessage(ctx context.Context, msg *model.AssistMessage) (*model.AssistMessage, error)

	// ListMessages retrieves a session's messages in creation order
	ListMessages(ctx context.Context, id types.SessionID) ([]*model.AssistMessage, error)
}
