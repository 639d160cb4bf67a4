package auth

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
)

type ctxTokenKey struct{}

// ErrNoToken is returned when a context carries no session token
var ErrNoToken = goerr.New("no session token in context")

// ContextWithToken returns a context carrying the session token
func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxTokenKey{}, token)
}

// TokenFromContext returns the session token carried by the context
func TokenFromContext(ctx context.Context) (*Token, error) {
	token, ok := ctx.Value(ctxTokenKey{}).(*Token)
	if !ok || token == nil {
		return nil, ErrNoToken
	}
	return token, nil
}
