package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/usecase"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/utils/errutil"
)

// respondJSON writes v as a JSON response
func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}

// decodeJSON reads the request body into v
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(err, "failed to decode request body")
	}
	return nil
}

// pathID parses the numeric {id} path parameter
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid ID", goerr.V("id", raw))
	}
	return id, nil
}

// handleError maps use case sentinels onto HTTP status codes
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrCallNotFound),
		errors.Is(err, usecase.ErrEngagementNotFound),
		errors.Is(err, usecase.ErrMemberNotFound),
		errors.Is(err, usecase.ErrActivityNotFound),
		errors.Is(err, usecase.ErrKnowledgeNotFound),
		errors.Is(err, usecase.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrStageEditDenied),
		errors.Is(err, usecase.ErrSessionDenied):
		status = http.StatusForbidden
	case errors.Is(err, usecase.ErrInvalidStage):
		status = http.StatusBadRequest
	}
	errutil.HandleHTTP(r.Context(), w, err, status)
}

// handleBadRequest reports a malformed request
func handleBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
}
