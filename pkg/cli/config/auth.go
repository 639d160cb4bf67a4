package config

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/usecase"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Auth holds CLI flags for OIDC login configuration
type Auth struct {
	issuer       string
	clientID     string
	clientSecret string
	noAuth       bool
	sessionTTL   time.Duration
}

// Flags returns CLI flags for auth configuration
func (a *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "oidc-issuer",
			Usage:       "OIDC issuer URL",
			Value:       "https://accounts.google.com",
			Category:    "Authentication",
			Sources:     cli.EnvVars("FUNDER_PORTAL_OIDC_ISSUER"),
			Destination: &a.issuer,
		},
		&cli.StringFlag{
			Name:        "oidc-client-id",
			Usage:       "OIDC client ID",
			Category:    "Authentication",
			Sources:     cli.EnvVars("FUNDER_PORTAL_OIDC_CLIENT_ID"),
			Destination: &a.clientID,
		},
		&cli.StringFlag{
			Name:        "oidc-client-secret",
			Usage:       "OIDC client secret",
			Category:    "Authentication",
			Sources:     cli.EnvVars("FUNDER_PORTAL_OIDC_CLIENT_SECRET"),
			Destination: &a.clientSecret,
		},
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Login session lifetime",
			Value:       12 * time.Hour,
			Category:    "Authentication",
			Sources:     cli.EnvVars("FUNDER_PORTAL_SESSION_TTL"),
			Destination: &a.sessionTTL,
		},
		&cli.BoolFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and act as an anonymous admin (development only)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("FUNDER_PORTAL_NO_AUTH"),
			Destination: &a.noAuth,
		},
	}
}

// IsNoAuthMode reports whether the no-auth development mode is active
func (a *Auth) IsNoAuthMode() bool {
	return a.noAuth
}

// Configure builds the authentication use case. With --no-auth, or when no
// client ID is set, every request acts as the anonymous admin.
func (a *Auth) Configure(repo interfaces.Repository, baseURL string, adminEmails []string) (usecase.AuthUseCaseInterface, error) {
	if a.noAuth {
		return usecase.NewNoAuthnUseCase(repo), nil
	}

	if a.clientID == "" {
		logging.Default().Warn("OIDC client ID not configured, running without authentication")
		return usecase.NewNoAuthnUseCase(repo), nil
	}

	if a.clientSecret == "" {
		return nil, goerr.New("oidc-client-secret is required when oidc-client-id is set")
	}
	if baseURL == "" {
		return nil, goerr.New("base-url is required for the OIDC callback")
	}

	callbackURL := strings.TrimRight(baseURL, "/") + "/api/auth/callback"
	return usecase.NewAuthUseCase(repo, a.issuer, a.clientID, a.clientSecret, callbackURL,
		usecase.WithAdminEmails(adminEmails),
		usecase.WithSessionTTL(a.sessionTTL),
	), nil
}
