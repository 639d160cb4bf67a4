package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"strings"
	"text/template"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
)

//go:embed prompt/assist_system.md
var assistSystemPromptTmpl string

var assistSystemPrompt = template.Must(template.New("assist_system").Parse(assistSystemPromptTmpl))

// AssistUseCase runs the grant-drafting chat assistant. Sessions and their
// messages are persisted, so a conversation survives server restarts and is
// rebuilt from the repository on every turn.
type AssistUseCase struct {
	repo interfaces.Repository
	llm  gollem.LLMClient
}

func NewAssistUseCase(repo interfaces.Repository, llm gollem.LLMClient) *AssistUseCase {
	return &AssistUseCase{repo: repo, llm: llm}
}

// CreateSession opens a new chat session for the acting user, optionally
// bound to a workflow entity whose details seed the assistant's context.
func (uc *AssistUseCase) CreateSession(ctx context.Context, title string, parent types.ParentRef) (*model.AssistSession, error) {
	if uc.llm == nil {
		return nil, goerr.New("LLM client is not configured")
	}

	who := actorFrom(ctx)
	if who.Email == "" {
		return nil, goerr.New("session owner is required")
	}

	if !parent.IsZero() {
		if err := uc.verifyParent(ctx, parent); err != nil {
			return nil, err
		}
	}

	if title == "" {
		title = "New session"
	}

	session := &model.AssistSession{
		Owner:  who.Email,
		Title:  title,
		Parent: parent,
	}

	created, err := uc.repo.Assist().CreateSession(ctx, session)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create assist session")
	}
	return created, nil
}

// ListSessions returns the acting user's sessions, newest first
func (uc *AssistUseCase) ListSessions(ctx context.Context) ([]*model.AssistSession, error) {
	who := actorFrom(ctx)
	sessions, err := uc.repo.Assist().ListSessions(ctx, who.Email)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assist sessions")
	}
	return sessions, nil
}

// GetSession returns one session the acting user owns
func (uc *AssistUseCase) GetSession(ctx context.Context, id types.SessionID) (*model.AssistSession, error) {
	session, err := uc.repo.Assist().GetSession(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrSessionNotFound, SessionIDKey, id)
	}

	who := actorFrom(ctx)
	if session.Owner != who.Email && !who.Admin {
		return nil, goerr.Wrap(ErrSessionDenied, "session access denied",
			goerr.V(SessionIDKey, id), goerr.V(ActorKey, who.Email))
	}
	return session, nil
}

// ListMessages returns a session's transcript in creation order
func (uc *AssistUseCase) ListMessages(ctx context.Context, id types.SessionID) ([]*model.AssistMessage, error) {
	if _, err := uc.GetSession(ctx, id); err != nil {
		return nil, err
	}

	msgs, err := uc.repo.Assist().ListMessages(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assist messages", goerr.V(SessionIDKey, id))
	}
	return msgs, nil
}

// Chat appends the user's message to the session, generates the assistant's
// reply from the full persisted transcript, and stores both.
func (uc *AssistUseCase) Chat(ctx context.Context, id types.SessionID, message string) (*model.AssistMessage, error) {
	if uc.llm == nil {
		return nil, goerr.New("LLM client is not configured")
	}
	if strings.TrimSpace(message) == "" {
		return nil, goerr.New("message is required")
	}

	session, err := uc.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := uc.repo.Assist().ListMessages(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load session history", goerr.V(SessionIDKey, id))
	}

	systemPrompt, err := uc.buildSystemPrompt(ctx, session)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build system prompt")
	}

	llmSession, err := uc.llm.NewSession(ctx,
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	// Replay the persisted transcript so the model sees the whole
	// conversation, then add the new message as the final turn.
	var prompt strings.Builder
	for _, msg := range history {
		switch msg.Role {
		case model.AssistRoleUser:
			prompt.WriteString("User: ")
		case model.AssistRoleAssistant:
			prompt.WriteString("Assistant: ")
		}
		prompt.WriteString(msg.Content)
		prompt.WriteString("\n\n")
	}
	prompt.WriteString("User: ")
	prompt.WriteString(message)

	resp, err := llmSession.GenerateContent(ctx, gollem.Text(prompt.String()))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate assistant reply", goerr.V(SessionIDKey, id))
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("LLM returned no content", goerr.V(SessionIDKey, id))
	}
	reply := strings.Join(resp.Texts, "")

	if _, err := uc.repo.Assist().AppendMessage(ctx, &model.AssistMessage{
		SessionID: id,
		Role:      model.AssistRoleUser,
		Content:   message,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to store user message", goerr.V(SessionIDKey, id))
	}

	stored, err := uc.repo.Assist().AppendMessage(ctx, &model.AssistMessage{
		SessionID: id,
		Role:      model.AssistRoleAssistant,
		Content:   reply,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store assistant message", goerr.V(SessionIDKey, id))
	}

	return stored, nil
}

type assistPromptData struct {
	CurrentTime string
	EntityKind  string
	Entity      string
}

func (uc *AssistUseCase) buildSystemPrompt(ctx context.Context, session *model.AssistSession) (string, error) {
	data := assistPromptData{
		CurrentTime: time.Now().UTC().Format(time.RFC3339),
	}

	if !session.Parent.IsZero() {
		switch session.Parent.Kind {
		case types.ParentKindOpenCall:
			call, err := uc.repo.OpenCall().Get(ctx, session.Parent.ID)
			if err != nil {
				return "", notFound(err, ErrCallNotFound, CallIDKey, session.Parent.ID)
			}
			encoded, err := json.MarshalIndent(call, "", "  ")
			if err != nil {
				return "", goerr.Wrap(err, "failed to encode open call for prompt")
			}
			data.EntityKind = "open call"
			data.Entity = string(encoded)

		case types.ParentKindEngagement:
			engagement, err := uc.repo.Engagement().Get(ctx, session.Parent.ID)
			if err != nil {
				return "", notFound(err, ErrEngagementNotFound, EngagementIDKey, session.Parent.ID)
			}
			encoded, err := json.MarshalIndent(engagement, "", "  ")
			if err != nil {
				return "", goerr.Wrap(err, "failed to encode engagement for prompt")
			}
			data.EntityKind = "engagement"
			data.Entity = string(encoded)
		}
	}

	var buf bytes.Buffer
	if err := assistSystemPrompt.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render system prompt")
	}
	return buf.String(), nil
}

func (uc *AssistUseCase) verifyParent(ctx context.Context, parent types.ParentRef) error {
	if err := parent.Validate(); err != nil {
		return goerr.Wrap(err, "invalid session parent")
	}

	switch parent.Kind {
	case types.ParentKindOpenCall:
		if _, err := uc.repo.OpenCall().Get(ctx, parent.ID); err != nil {
			return notFound(err, ErrCallNotFound, CallIDKey, parent.ID)
		}
	case types.ParentKindEngagement:
		if _, err := uc.repo.Engagement().Get(ctx, parent.ID); err != nil {
			return notFound(err, ErrEngagementNotFound, EngagementIDKey, parent.ID)
		}
	}
	return nil
}
