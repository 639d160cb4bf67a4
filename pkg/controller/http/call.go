package http

import (
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/usecase"
)

type createCallRequest struct {
	Title            string                 `json:"title"`
	Funder           string                 `json:"funder"`
	Description      string                 `json:"description"`
	Amount           int64                  `json:"amount"`
	Currency         string                 `json:"currency"`
	Deadline         *time.Time             `json:"deadline"`
	Link             string                 `json:"link"`
	Stage            string                 `json:"stage"`
	StagePermissions model.StagePermissions `json:"stagePermissions"`
	InternalOwner    string                 `json:"internalOwner"`
}

type updateCallRequest struct {
	Title            *string                 `json:"title"`
	Funder           *string                 `json:"funder"`
	Description      *string                 `json:"description"`
	Amount           *int64                  `json:"amount"`
	Currency         *string                 `json:"currency"`
	Deadline         *time.Time              `json:"deadline"`
	Link             *string                 `json:"link"`
	Stage            *string                 `json:"stage"`
	StagePermissions *model.StagePermissions `json:"stagePermissions"`
	InternalOwner    *string                 `json:"internalOwner"`
}

type addNoteRequest struct {
	Body string `json:"body"`
}

func listCallsHandler(uc *usecase.CallUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calls, err := uc.List(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, calls)
	}
}

func createCallHandler(uc *usecase.CallUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCallRequest
		if err := decodeJSON(r, &req); err != nil {
			handleBadRequest(w, r, err)
			return
		}

		input := usecase.CreateCallInput{
			Title:            req.Title,
			Funder:           req.Funder,
			Description:      req.Description,
			Amount:           req.Amount,
			Currency:         req.Currency,
			Link:             req.Link,
			Stage:            req.Stage,
			StagePermissions: req.StagePermissions,
			InternalOwner:    req.InternalOwner,
		}
		if req.Deadline != nil {
			input.Deadline = *req.Deadline
		}

		created, err := uc.Create(r.Context(), input)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusCreated, created)
	}
}

func getCallHandler(uc *usecase.CallUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			handleBadRequest(w, r, err)
			return
		}

		call, err := uc.Get(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, call)
	}
}

func updateCallHandler(uc *usecase.CallUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			handleBadRequest(w, r, err)
			return
		}

		var req updateCallRequest
		if err := decodeJSON(r, &req); err != nil {
			handleBadRequest(w, r, err)
			return
		}

		updated, err := uc.Update(r.Context(), id, usecase.UpdateCallInput{
			Title:            req.Title,
			Funder:           req.Funder,
			Description:      req.Description,
			Amount:           req.Amount,
			Currency:         req.Currency,
			Deadline:         req.Deadline,
			Link:             req.Link,
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

func deleteCallHandler(uc *usecase.CallUseCase) http.HandlerFunc {
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

func addCallNoteHandler(uc *usecase.CallUseCase) http.HandlerFunc {
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

// maxUploadSize caps multipart document uploads at 32 MiB
const maxUploadSize = 32 << 20

// readUpload extracts the uploaded file from a multipart request and stores
// its body, returning the reference to attach.
func readUpload(r *http.Request, activityUC *usecase.ActivityUseCase) (model.DocumentRef, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return model.DocumentRef{}, goerr.Wrap(err, "failed to parse multipart form")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return model.DocumentRef{}, goerr.Wrap(err, "file field is required")
	}
	defer file.Close() //nolint:errcheck

	contentType := header.Header.Get("Content-Type")
	return activityUC.UploadDocument(r.Context(), header.Filename, contentType, header.Size, file)
}

func attachCallDocumentHandler(uc *usecase.CallUseCase, activityUC *usecase.ActivityUseCase) http.HandlerFunc {
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
