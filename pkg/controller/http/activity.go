package http

import (
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/usecase"
)

type createActivityRequest struct {
	ParentKind string              `json:"parentKind"`
	ParentID   int64               `json:"parentId"`
	Type       string              `json:"type"`
	Content    string              `json:"content"`
	Sentiment  string              `json:"sentiment"`
	Documents  []model.DocumentRef `json:"documents"`
}

// parentFromQuery reads the ?parentKind= and ?parentId= filter parameters
func parentFromQuery(r *http.Request) (types.ParentRef, error) {
	kind, err := types.ParseParentKind(r.URL.Query().Get("parentKind"))
	if err != nil {
		return types.ParentRef{}, goerr.Wrap(err, "invalid parentKind parameter")
	}

	rawID := r.URL.Query().Get("parentId")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return types.ParentRef{}, goerr.Wrap(err, "invalid parentId parameter", goerr.V("parentId", rawID))
	}

	return types.ParentRef{Kind: kind, ID: id}, nil
}

func listActivitiesHandler(uc *usecase.ActivityUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parent, err := parentFromQuery(r)
		if err != nil {
			handleBadRequest(w, r, err)
			return
		}

		activities, err := uc.ListByParent(r.Context(), parent)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, activities)
	}
}

func createActivityHandler(uc *usecase.ActivityUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createActivityRequest
		if err := decodeJSON(r, &req); err != nil {
			handleBadRequest(w, r, err)
			return
		}

		kind, err := types.ParseParentKind(req.ParentKind)
		if err != nil {
			handleBadRequest(w, r, goerr.Wrap(err, "invalid parentKind"))
			return
		}

		created, err := uc.Create(r.Context(), usecase.CreateActivityInput{
			Parent:    types.ParentRef{Kind: kind, ID: req.ParentID},
			Type:      req.Type,
			Content:   req.Content,
			Sentiment: req.Sentiment,
			Documents: req.Documents,
		})
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusCreated, created)
	}
}

func getActivityHandler(uc *usecase.ActivityUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			handleBadRequest(w, r, err)
			return
		}

		activity, err := uc.Get(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, activity)
	}
}
