package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/mohamed-gudle/funder-portal-sub000/pkg/controller/http"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model/auth"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/repository/memory"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/usecase"
)

// cookieAuth is a stub session validator: it accepts exactly one
// tokenID/secret pair and returns the configured identity.
type cookieAuth struct {
	token *auth.Token
}

func newCookieAuth(email string, role types.Role) *cookieAuth {
	return &cookieAuth{token: auth.NewToken("sub-"+email, email, email, role, time.Hour)}
}

func (a *cookieAuth) GetAuthURL(state string) string {
	return "https://idp.example.com/authorize?state=" + state
}

func (a *cookieAuth) HandleCallback(ctx context.Context, code string) (*auth.Token, error) {
	return a.token, nil
}

func (a *cookieAuth) ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	if tokenID != a.token.ID || tokenSecret != a.token.Secret {
		return nil, errors.New("invalid token")
	}
	return a.token, nil
}

func (a *cookieAuth) Logout(ctx context.Context, tokenID auth.TokenID) error {
	return nil
}

func (a *cookieAuth) IsNoAuthn() bool {
	return false
}

func newTestServer(t *testing.T) (*httpctrl.Server, *memory.Memory) {
	t.Helper()
	repo := memory.New()
	uc := usecase.New(repo, usecase.WithAuth(usecase.NewNoAuthnUseCase(repo)))
	return httpctrl.New(uc), repo
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	gt.Number(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Body.String()).Equal("OK")
}

func TestCallEndpoints(t *testing.T) {
	t.Run("create, get, update, delete", func(t *testing.T) {
		srv, _ := newTestServer(t)

		rec := doJSON(t, srv, http.MethodPost, "/api/calls", map[string]any{
			"title":  "Ocean Health Grant",
			"funder": "BlueWater Trust",
		})
		gt.Number(t, rec.Code).Equal(http.StatusCreated)

		var created model.OpenCall
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		gt.Number(t, created.ID).NotEqual(0)
		gt.Value(t, created.Stage).Equal(types.CallStageInReview)

		rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/calls/%d", created.ID), nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		rec = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/api/calls/%d", created.ID), map[string]any{
			"stage": "Reviewing",
		})
		gt.Number(t, rec.Code).Equal(http.StatusOK)
		var updated model.OpenCall
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		gt.Value(t, updated.Stage).Equal(types.CallStageReviewing)

		rec = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/calls/%d", created.ID), nil)
		gt.Number(t, rec.Code).Equal(http.StatusNoContent)

		rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/calls/%d", created.ID), nil)
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("PUT updates like PATCH", func(t *testing.T) {
		srv, _ := newTestServer(t)

		rec := doJSON(t, srv, http.MethodPost, "/api/calls", map[string]any{"title": "Grant"})
		gt.Number(t, rec.Code).Equal(http.StatusCreated)
		var created model.OpenCall
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

		rec = doJSON(t, srv, http.MethodPut, fmt.Sprintf("/api/calls/%d", created.ID), map[string]any{
			"stage": "Reviewing",
		})
		gt.Number(t, rec.Code).Equal(http.StatusOK)
		var updated model.OpenCall
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		gt.Value(t, updated.Stage).Equal(types.CallStageReviewing)
	})

	t.Run("invalid stage yields 400", func(t *testing.T) {
		srv, _ := newTestServer(t)

		rec := doJSON(t, srv, http.MethodPost, "/api/calls", map[string]any{
			"title": "Ocean Health Grant",
			"stage": "Limbo",
		})
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("malformed ID yields 400", func(t *testing.T) {
		srv, _ := newTestServer(t)

		rec := doJSON(t, srv, http.MethodGet, "/api/calls/abc", nil)
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("notes endpoint", func(t *testing.T) {
		srv, _ := newTestServer(t)

		rec := doJSON(t, srv, http.MethodPost, "/api/calls", map[string]any{"title": "Grant"})
		gt.Number(t, rec.Code).Equal(http.StatusCreated)
		var created model.OpenCall
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

		rec = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/calls/%d/notes", created.ID), map[string]any{
			"body": "call scheduled for Friday",
		})
		gt.Number(t, rec.Code).Equal(http.StatusOK)
		var withNote model.OpenCall
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &withNote))
		gt.Array(t, withNote.Notes).Length(1)
	})
}

func TestActivityEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/calls", map[string]any{"title": "Grant"})
	gt.Number(t, rec.Code).Equal(http.StatusCreated)
	var call model.OpenCall
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &call))

	rec = doJSON(t, srv, http.MethodPost, "/api/activities", map[string]any{
		"parentKind": "open_call",
		"parentId":   call.ID,
		"type":       "Meeting Note",
		"content":    "kickoff meeting",
		"sentiment":  "positive",
	})
	gt.Number(t, rec.Code).Equal(http.StatusCreated)

	rec = doJSON(t, srv, http.MethodGet,
		fmt.Sprintf("/api/activities?parentKind=open_call&parentId=%d", call.ID), nil)
	gt.Number(t, rec.Code).Equal(http.StatusOK)
	var activities []*model.Activity
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activities))
	gt.Array(t, activities).Length(1)
	gt.Value(t, activities[0].Content).Equal("kickoff meeting")

	rec = doJSON(t, srv, http.MethodGet, "/api/activities?parentKind=project&parentId=1", nil)
	gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestMemberEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/members", map[string]any{
		"name":  "Alice Adams",
		"email": "alice@example.com",
		"title": "Grants Manager",
	})
	gt.Number(t, rec.Code).Equal(http.StatusCreated)
	var created model.Member
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	gt.Value(t, created.Email).Equal("alice@example.com")

	rec = doJSON(t, srv, http.MethodGet, "/api/members", nil)
	gt.Number(t, rec.Code).Equal(http.StatusOK)
	var members []*model.Member
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &members))
	gt.Array(t, members).Length(1)
}

func TestAuthGate(t *testing.T) {
	newGatedServer := func(t *testing.T, authUC httpctrl.AuthUseCase) *httpctrl.Server {
		t.Helper()
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithAuth(authUC))
		return httpctrl.New(uc)
	}

	t.Run("request without cookies is rejected", func(t *testing.T) {
		srv := newGatedServer(t, newCookieAuth("alice@example.com", types.RoleMember))

		rec := doJSON(t, srv, http.MethodGet, "/api/calls", nil)
		gt.Number(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("request with wrong secret is rejected", func(t *testing.T) {
		stub := newCookieAuth("alice@example.com", types.RoleMember)
		srv := newGatedServer(t, stub)

		req := httptest.NewRequest(http.MethodGet, "/api/calls", nil)
		req.AddCookie(&http.Cookie{Name: "token_id", Value: stub.token.ID.String()})
		req.AddCookie(&http.Cookie{Name: "token_secret", Value: "wrong"})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Number(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("valid cookies pass and identify the actor", func(t *testing.T) {
		stub := newCookieAuth("alice@example.com", types.RoleMember)
		srv := newGatedServer(t, stub)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: "token_id", Value: stub.token.ID.String()})
		req.AddCookie(&http.Cookie{Name: "token_secret", Value: stub.token.Secret.String()})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Number(t, rec.Code).Equal(http.StatusOK)
		var me map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
		gt.Value(t, me["email"]).Equal("alice@example.com")
	})

	t.Run("health stays open", func(t *testing.T) {
		srv := newGatedServer(t, newCookieAuth("alice@example.com", types.RoleMember))

		rec := doJSON(t, srv, http.MethodGet, "/health", nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("stage gate surfaces as 403", func(t *testing.T) {
		stub := newCookieAuth("mallory@example.com", types.RoleMember)
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithAuth(stub))
		srv := httpctrl.New(uc)

		created, err := uc.Call.Create(context.Background(), usecase.CreateCallInput{
			Title: "Ocean Health Grant",
			Stage: "Drafting",
			StagePermissions: model.StagePermissions{
				{Stage: "Drafting", Assignees: []string{"alice@example.com"}},
			},
		})
		gt.NoError(t, err).Required()

		var buf bytes.Buffer
		gt.NoError(t, json.NewEncoder(&buf).Encode(map[string]any{"funder": "BlueWater Trust"}))
		req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/calls/%d", created.ID), &buf)
		req.AddCookie(&http.Cookie{Name: "token_id", Value: stub.token.ID.String()})
		req.AddCookie(&http.Cookie{Name: "token_secret", Value: stub.token.Secret.String()})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Number(t, rec.Code).Equal(http.StatusForbidden)
	})
}
