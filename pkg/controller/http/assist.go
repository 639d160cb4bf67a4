package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/usecase"
)

type createSessionRequest struct {
	Title      string `json:"title"`
	ParentKind string `json:"parentKind"`
	ParentID   int64  `json:"parentId"`
}

type chatRequest struct {
	Message string `json:"message"`
}

func sessionID(r *http.Request) (types.SessionID, error) {
	id := types.SessionID(chi.URLParam(r, "id"))
	if err := id.Validate(); err != nil {
		return "", goerr.Wrap(err, "invalid session ID")
	}
	return id, nil
}

func listAssistSessionsHandler(uc *usecase.AssistUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := uc.ListSessions(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, sessions)
	}
}

func createAssistSessionHandler(uc *usecase.AssistUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSessionRequest
		if err := decodeJSON(r, &req); err != nil {
			handleBadRequest(w, r, err)
			return
		}

		var parent types.ParentRef
		if req.ParentKind != "" {
			kind, err := types.ParseParentKind(req.ParentKind)
			if err != nil {
				handleBadRequest(w, r, goerr.Wrap(err, "invalid parentKind"))
				return
			}
			parent = types.ParentRef{Kind: kind, ID: req.ParentID}
		}

		created, err := uc.CreateSession(r.Context(), req.Title, parent)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusCreated, created)
	}
}

func getAssistSessionHandler(uc *usecase.AssistUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			handleBadRequest(w, r, err)
			return
		}

		session, err := uc.GetSession(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, session)
	}
}

func listAssistMessagesHandler(uc *usecase.AssistUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			handleBadRequest(w, r, err)
			return
		}

		msgs, err := uc.ListMessages(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, msgs)
	}
}

func assistChatHandler(uc *usecase.AssistUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			handleBadRequest(w, r, err)
			return
		}

		var req chatRequest
		if err := decodeJSON(r, &req); err != nil {
			handleBadRequest(w, r, err)
			return
		}

		reply, err := uc.Chat(r.Context(), id, req.Message)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, reply)
	}
}
