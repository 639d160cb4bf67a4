package usecase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model/auth"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/utils/logging"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/utils/safe"
)

const defaultSessionTTL = 12 * time.Hour

type AuthUseCase struct {
	repo         interfaces.Repository
	issuer       string
	clientID     string
	clientSecret string
	callbackURL  string
	adminEmails  map[string]bool
	sessionTTL   time.Duration
	cache        *authCache
}

// AuthOption is a functional option for AuthUseCase
type AuthOption func(*AuthUseCase)

// WithAdminEmails marks the addresses whose sessions carry the admin role
func WithAdminEmails(emails []string) AuthOption {
	return func(uc *AuthUseCase) {
		for _, email := range emails {
			email = strings.ToLower(strings.TrimSpace(email))
			if email != "" {
				uc.adminEmails[email] = true
			}
		}
	}
}

// WithSessionTTL sets the login session lifetime
func WithSessionTTL(ttl time.Duration) AuthOption {
	return func(uc *AuthUseCase) {
		uc.sessionTTL = ttl
	}
}

func NewAuthUseCase(repo interfaces.Repository, issuer, clientID, clientSecret, callbackURL string, options ...AuthOption) *AuthUseCase {
	uc := &AuthUseCase{
		repo:         repo,
		issuer:       strings.TrimRight(issuer, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		callbackURL:  callbackURL,
		adminEmails:  make(map[string]bool),
		sessionTTL:   defaultSessionTTL,
		cache:        newAuthCache(),
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}

// OpenIDConfiguration is the discovery document of the OIDC issuer
type OpenIDConfiguration struct {
	Issuer                string `json:"issuer"`
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	JWKSURI               string `json:"jwks_uri"`
}

// GetAuthURL returns the issuer's authorization URL for the login redirect
func (uc *AuthUseCase) GetAuthURL(state string) string {
	params := url.Values{}
	params.Set("client_id", uc.clientID)
	params.Set("scope", "openid email profile")
	params.Set("redirect_uri", uc.callbackURL)
	params.Set("response_type", "code")
	params.Set("state", state)

	return uc.authorizationEndpoint() + "?" + params.Encode()
}

// authorizationEndpoint resolves the issuer's authorization URL. Google does
// not serve it under the issuer path, so it is special-cased; other issuers
// follow the common convention.
func (uc *AuthUseCase) authorizationEndpoint() string {
	if uc.issuer == "https://accounts.google.com" {
		return "https://accounts.google.com/o/oauth2/v2/auth"
	}
	return uc.issuer + "/authorize"
}

// IsNoAuthn returns false for regular AuthUseCase
func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	TokenType   string `json:"token_type"`
	Error       string `json:"error"`
	ErrorDesc   string `json:"error_description"`
}

type idTokenClaims struct {
	Sub   string
	Email string
	Name  string
}

// HandleCallback exchanges the authorization code, verifies the ID token,
// and opens a session. The session's role is admin when the email is on the
// admin list, member otherwise.
func (uc *AuthUseCase) HandleCallback(ctx context.Context, code string) (*auth.Token, error) {
	tokenResp, err := uc.exchangeCodeForToken(ctx, code)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to exchange code for token")
	}
	if tokenResp.Error != "" {
		return nil, goerr.New("oauth token exchange error",
			goerr.V("error", tokenResp.Error), goerr.V("description", tokenResp.ErrorDesc))
	}

	claims, err := uc.decodeIDToken(ctx, tokenResp.IDToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode ID token")
	}

	role := types.RoleMember
	if uc.adminEmails[strings.ToLower(claims.Email)] {
		role = types.RoleAdmin
	}

	token := auth.NewToken(claims.Sub, claims.Email, claims.Name, role, uc.sessionTTL)
	if err := uc.repo.PutToken(ctx, token); err != nil {
		logging.From(ctx).Error("failed to save token", "error", err, "sub", claims.Sub)
		return nil, goerr.Wrap(err, "failed to store token")
	}

	return token, nil
}

func (uc *AuthUseCase) exchangeCodeForToken(ctx context.Context, code string) (*tokenResponse, error) {
	config, err := uc.getOpenIDConfiguration(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get OpenID configuration")
	}

	data := url.Values{}
	data.Set("client_id", uc.clientID)
	data.Set("client_secret", uc.clientSecret)
	data.Set("code", code)
	data.Set("redirect_uri", uc.callbackURL)
	data.Set("grant_type", "authorization_code")

	encodedData := data.Encode()
	req, err := http.NewRequestWithContext(ctx, "POST", config.TokenEndpoint, strings.NewReader(encodedData))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.ContentLength = int64(len(encodedData))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to make token request")
	}
	defer safe.Close(ctx, resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body")
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, goerr.Wrap(err, "failed to parse token response")
	}

	return &tokenResp, nil
}

func (uc *AuthUseCase) getOpenIDConfiguration(ctx context.Context) (*OpenIDConfiguration, error) {
	discoveryURL := uc.issuer + "/.well-known/openid-configuration"
	req, err := http.NewRequestWithContext(ctx, "GET", discoveryURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch OpenID configuration")
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("failed to fetch OpenID configuration", goerr.V("status", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read OpenID configuration response")
	}

	var config OpenIDConfiguration
	if err := json.Unmarshal(body, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse OpenID configuration")
	}

	return &config, nil
}

// decodeIDToken verifies the ID token signature against the issuer's JWK set
// and extracts the identity claims.
func (uc *AuthUseCase) decodeIDToken(ctx context.Context, idToken string) (*idTokenClaims, error) {
	config, err := uc.getOpenIDConfiguration(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get OpenID configuration")
	}

	keySet, err := jwk.Fetch(ctx, config.JWKSURI)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch issuer's public keys", goerr.V("jwks_uri", config.JWKSURI))
	}

	// Allow 10 seconds of clock skew to handle time synchronization differences
	token, err := jwt.Parse([]byte(idToken),
		jwt.WithKeySet(keySet),
		jwt.WithValidate(true),
		jwt.WithAudience(uc.clientID),
		jwt.WithAcceptableSkew(10*time.Second))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse or verify JWT token")
	}

	claims := &idTokenClaims{}
	for claim, dst := range map[string]*string{
		"sub":   &claims.Sub,
		"email": &claims.Email,
		"name":  &claims.Name,
	} {
		value, ok := token.Get(claim)
		if !ok {
			return nil, goerr.New("claim not found in token", goerr.V("claim", claim))
		}
		str, ok := value.(string)
		if !ok {
			return nil, goerr.New("claim is not a string", goerr.V("claim", claim))
		}
		*dst = str
	}

	return claims, nil
}

// ValidateToken validates the session and returns its identity
func (uc *AuthUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	return uc.validateTokenWithCache(ctx, tokenID, tokenSecret)
}

// Logout deletes the session token
func (uc *AuthUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	uc.cache.remove(tokenID)
	return uc.repo.DeleteToken(ctx, tokenID)
}
