package interfaces

import (
	"context"

	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model/auth"
)

// Repository defines the interface for data persistence
type Repository interface {
	OpenCall() OpenCallRepository
	Engagement() EngagementRepository
	Member() MemberRepository
	Activity() ActivityRepository
	Knowledge() KnowledgeRepository
	Assist() AssistRepository

	// Session token methods
	PutToken(ctx context.Context, token *auth.Token) error
	GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error)
	DeleteToken(ctx context.Context, tokenID auth.TokenID) error

	Close() error
}
