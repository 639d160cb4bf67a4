package http

import (
	"net/http"

	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/usecase"
)

type createEngagementRequest struct {
	Organization     string                 `json:"organization"`
	ContactName      string                 `json:"contactName"`
	ContactEmail     string                 `json:"contactEmail"`
	Description      string                 `json:"description"`
	Stage            string                 `json:"stage"`
	StagePermissions model.StagePermissions `json:"stagePermissions"`
	InternalOwner    string                 `json:"internalOwner"`
}

type updateEngagementRequest struct {
	Organization     *string                 `json:"organization"`
	ContactName      *string                 `json:"contactName"`
	ContactEmail     *string                 `json:"contactEmail"`
	Description      *string                 `json:"description"`
	Stage            *string                 `json:"stage"`
	StagePermissions *model.StagePermissions `json:"stagePermissions"`
	InternalOwner    *string                 `json:"internalOwner"`
}

func listEngagementsHandler(uc *usecase.EngagementUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engagements, err := uc.List(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, engagements)
	}
}

func createEngagementHandler(uc *usecase.EngagementUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEngagementRequest
		if err := decodeJSON(r, &req); err != nil {
			handleBadRequest(w, r, err)
			return
		}

		created, err := uc.Create(r.Context(), usecase.CreateEngagementInput{
			Organization:     req.Organization,
			ContactName:      req.ContactName,
			ContactEmail:     req.ContactEmail,
			Description:      req.Description,
			Stage:            req.Stage,
			StagePermissions: req.StagePermissions,
			InternalOwner:    req.InternalOwner,
		})
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusCreated, created)
	}
}

func getEngagementHandler(uc *usecase.EngagementUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			handleBadRequest(w, r, err)
			return
		}

		engagement, err := uc.Get(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, engagement)
	}
}

func updateEngagementHandler(uc *usecase.EngagementUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			handleBadRequest(w, r, err)
			return
		}

		var req updateEngagementRequest
		if err := decodeJSON(r, &req); err != nil {
			handleBadRequest(w, r, err)
			return
		}

		updated, err := uc.Update(r.Context(), id, usecase.UpdateEngagementInput{
			Organization:     req.Organization,
			ContactName:      req.ContactName,
			ContactEmail:     req.ContactEmail,
			Description:      req.Description,
			Stage:            req.Stage,
			StagePermissions: req.StagePermissions,
			InternalOwner:    req.InternalOwner,
		})
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, updated)
	}
}

func deleteEngagementHandler(uc *usecase.EngagementUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			handleBadRequest(w, r, err)
			return
		}

		if err := uc.Delete(r.Context(), id); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func addEngagementNoteHandler(uc *usecase.EngagementUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			handleBadRequest(w, r, err)
			return
		}

		var req addNoteRequest
		if err := decodeJSON(r, &req); err != nil {
			handleBadRequest(w, r, err)
			return
		}

		updated, err := uc.AddNote(r.Context(), id, req.Body)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, updated)
	}
}

func attachEngagementDocumentHandler(uc *usecase.EngagementUseCase, activityUC *usecase.ActivityUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			handleBadRequest(w, r, err)
			return
		}

		doc, err := readUpload(r, activityUC)
		if err != nil {
			handleBadRequest(w, r, err)
			return
		}

		updated, err := uc.AttachDocument(r.Context(), id, doc)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, updated)
	}
}
