package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	assistSessionsCollection = "assist_sessions"
	assistMessagesCollection = "messages"
)

type assistRepository struct {
	client *firestore.Client
}

func newAssistRepository(client *firestore.Client) *assistRepository {
	return &assistRepository{client: client}
}

func (r *assistRepository) CreateSession(ctx context.Context, s *model.AssistSession) (*model.AssistSession, error) {
	now := time.Now().UTC()
	created := s.Clone()
	if created.ID == "" {
		created.ID = types.NewSessionID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(assistSessionsCollection).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create assist session", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *assistRepository) GetSession(ctx context.Context, id types.SessionID) (*model.AssistSession, error) {
	docSnap, err := r.client.Collection(assistSessionsCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assist session not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assist session", goerr.V("id", id))
	}

	var s model.AssistSession
	if err := docSnap.DataTo(&s); err != nil {
		return nil, goerr.Wrap(err, "failed to decode assist session", goerr.V("id", id))
	}

	return &s, nil
}

func (r *assistRepository) ListSessions(ctx context.Context, owner string) ([]*model.AssistSession, error) {
	iter := r.client.Collection(assistSessionsCollection).
		Where("owner", "==", owner).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var sessions []*model.AssistSession
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assist sessions", goerr.V("owner", owner))
		}

		var s model.AssistSession
		if err := docSnap.DataTo(&s); err != nil {
			return nil, goerr.Wrap(err, "failed to decode assist session", goerr.V("doc_id", docSnap.Ref.ID))
		}

		sessions = append(sessions, &s)
	}

	return sessions, nil
}

// AppendMessage writes the message into the session's subcollection and
// refreshes the session's updated_at.
func (r *assistRepository) AppendMessage(ctx context.Context, msg *model.AssistMessage) (*model.AssistMessage, error) {
	sessionRef := r.client.Collection(assistSessionsCollection).Doc(msg.SessionID.String())

	if _, err := sessionRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assist session not found", goerr.V("session_id", msg.SessionID))
		}
		return nil, goerr.Wrap(err, "failed to check assist session existence", goerr.V("session_id", msg.SessionID))
	}

	created := *msg
	if created.ID == "" {
		created.ID = uuid.Must(uuid.NewV7()).String()
	}
	created.CreatedAt = time.Now().UTC()

	if _, err := sessionRef.Collection(assistMessagesCollection).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to append assist message", goerr.V("session_id", msg.SessionID))
	}

	if _, err := sessionRef.Update(ctx, []firestore.Update{
		{Path: "updated_at", Value: created.CreatedAt},
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to touch assist session", goerr.V("session_id", msg.SessionID))
	}

	return &created, nil
}

func (r *assistRepository) ListMessages(ctx context.Context, id types.SessionID) ([]*model.AssistMessage, error) {
	iter := r.client.Collection(assistSessionsCollection).Doc(id.String()).
		Collection(assistMessagesCollection).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var messages []*model.AssistMessage
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assist messages", goerr.V("session_id", id))
		}

		var m model.AssistMessage
		if err := docSnap.DataTo(&m); err != nil {
			return nil, goerr.Wrap(err, "failed to decode assist message", goerr.V("doc_id", docSnap.Ref.ID))
		}

		messages = append(messages, &m)
	}

	return messages, nil
}
