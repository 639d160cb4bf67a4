package http

import (
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/usecase"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/utils/safe"
)

func listKnowledgeHandler(uc *usecase.KnowledgeUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := uc.List(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, docs)
	}
}

// uploadKnowledgeHandler accepts a multipart form with the file body and
// metadata fields (title, description, comma-separated tags)
func uploadKnowledgeHandler(uc *usecase.KnowledgeUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			handleBadRequest(w, r, goerr.Wrap(err, "failed to parse multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			handleBadRequest(w, r, goerr.Wrap(err, "file field is required"))
			return
		}
		defer file.Close() //nolint:errcheck

		var tags []string
		if raw := r.FormValue("tags"); raw != "" {
			for _, tag := range strings.Split(raw, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					tags = append(tags, tag)
				}
			}
		}

		title := r.FormValue("title")
		if title == "" {
			title = header.Filename
		}

		created, err := uc.Upload(r.Context(), usecase.UploadInput{
			Title:       title,
			Description: r.FormValue("description"),
			Tags:        tags,
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		})
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusCreated, created)
	}
}

func getKnowledgeHandler(uc *usecase.KnowledgeUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			handleBadRequest(w, r, err)
			return
		}

		doc, err := uc.Get(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, doc)
	}
}

func downloadKnowledgeHandler(uc *usecase.KnowledgeUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			handleBadRequest(w, r, err)
			return
		}

		doc, body, err := uc.Open(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		defer safe.Close(r.Context(), body)

		if doc.ContentType != "" {
			w.Header().Set("Content-Type", doc.ContentType)
		}
		w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Title+`"`)
		safe.Copy(r.Context(), w, body)
	}
}

func deleteKnowledgeHandler(uc *usecase.KnowledgeUseCase) http.HandlerFunc {
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
