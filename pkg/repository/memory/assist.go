package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
)

type assistRepository struct {
	mu       sync.RWMutex
	sessions map[types.SessionID]*model.AssistSession
	messages map[types.SessionID][]*model.AssistMessage
}

func newAssistRepository() *assistRepository {
	return &assistRepository{
		sessions: make(map[types.SessionID]*model.AssistSession),
		messages: make(map[types.SessionID][]*model.AssistMessage),
	}
}

func (r *assistRepository) CreateSession(ctx context.Context, s *model.AssistSession) (*model.AssistSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := s.Clone()
	if created.ID == "" {
		created.ID = types.NewSessionID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.sessions[created.ID] = created
	return created.Clone(), nil
}

func (r *assistRepository) GetSession(ctx context.Context, id types.SessionID) (*model.AssistSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.sessions[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assist session not found", goerr.V("id", id))
	}

	return s.Clone(), nil
}

func (r *assistRepository) ListSessions(ctx context.Context, owner string) ([]*model.AssistSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sessions []*model.AssistSession
	for _, s := range r.sessions {
		if s.Owner == owner {
			sessions = append(sessions, s.Clone())
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})

	return sessions, nil
}

func (r *assistRepository) AppendMessage(ctx context.Context, msg *model.AssistMessage) (*model.AssistMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.sessions[msg.SessionID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assist session not found", goerr.V("id", msg.SessionID))
	}

	copied := *msg
	if copied.ID == "" {
		copied.ID = uuid.New().String()
	}
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now().UTC()
	}

	r.messages[msg.SessionID] = append(r.messages[msg.SessionID], &copied)
	s.UpdatedAt = time.Now().UTC()

	result := copied
	return &result, nil
}

func (r *assistRepository) ListMessages(ctx context.Context, id types.SessionID) ([]*model.AssistMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, exists := r.sessions[id]; !exists {
		return nil, goerr.Wrap(ErrNotFound, "assist session not found", goerr.V("id", id))
	}

	msgs := make([]*model.AssistMessage, 0, len(r.messages[id]))
	for _, m := range r.messages[id] {
		copied := *m
		msgs = append(msgs, &copied)
	}

	return msgs, nil
}
