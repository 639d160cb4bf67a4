package usecase

import (
	"context"

	"github.com/m-mizutani/gollem"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model/auth"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/service/notify"
)

// AuthUseCaseInterface abstracts login so that the server can run against
// either the OIDC flow or the no-auth development mode.
type AuthUseCaseInterface interface {
	GetAuthURL(state string) string
	HandleCallback(ctx context.Context, code string) (*auth.Token, error)
	ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error)
	Logout(ctx context.Context, tokenID auth.TokenID) error
	IsNoAuthn() bool
}

type UseCases struct {
	repo     interfaces.Repository
	notifier *notify.Service
	storage  interfaces.ObjectStorage
	llm      gollem.LLMClient

	Call       *CallUseCase
	Engagement *EngagementUseCase
	Member     *MemberUseCase
	Activity   *ActivityUseCase
	Knowledge  *KnowledgeUseCase
	Assist     *AssistUseCase
	Auth       AuthUseCaseInterface
}

type Option func(*UseCases)

// WithNotifier sets the notification service used by workflow follow-ups
func WithNotifier(n *notify.Service) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

// WithStorage sets the object storage backing document uploads
func WithStorage(s interfaces.ObjectStorage) Option {
	return func(uc *UseCases) {
		uc.storage = s
	}
}

// WithLLM sets the LLM client backing the drafting assistant
func WithLLM(client gollem.LLMClient) Option {
	return func(uc *UseCases) {
		uc.llm = client
	}
}

// WithAuth sets the authentication use case
func WithAuth(a AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = a
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	engine := &workflowEngine{repo: repo, notifier: uc.notifier}
	uc.Call = NewCallUseCase(repo, engine)
	uc.Engagement = NewEngagementUseCase(repo, engine)
	uc.Member = NewMemberUseCase(repo)
	uc.Activity = NewActivityUseCase(repo, uc.storage)
	uc.Knowledge = NewKnowledgeUseCase(repo, uc.storage)
	uc.Assist = NewAssistUseCase(repo, uc.llm)

	return uc
}
