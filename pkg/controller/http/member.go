package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/usecase"
)

type createMemberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Title string `json:"title"`
	Role  string `json:"role"`
}

type updateMemberRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Title *string `json:"title"`
	Role  *string `json:"role"`
}

func listMembersHandler(uc *usecase.MemberUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := uc.List(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, members)
	}
}

func createMemberHandler(uc *usecase.MemberUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMemberRequest
		if err := decodeJSON(r, &req); err != nil {
			handleBadRequest(w, r, err)
			return
		}

		created, err := uc.Create(r.Context(), usecase.CreateMemberInput{
			Name:  req.Name,
			Email: req.Email,
			Title: req.Title,
			Role:  req.Role,
		})
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusCreated, created)
	}
}

func getMemberHandler(uc *usecase.MemberUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		member, err := uc.Get(r.Context(), types.MemberID(chi.URLParam(r, "id")))
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, member)
	}
}

func updateMemberHandler(uc *usecase.MemberUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateMemberRequest
		if err := decodeJSON(r, &req); err != nil {
			handleBadRequest(w, r, err)
			return
		}

		updated, err := uc.Update(r.Context(), types.MemberID(chi.URLParam(r, "id")), usecase.UpdateMemberInput{
			Name:  req.Name,
			Email: req.Email,
			Title: req.Title,
			Role:  req.Role,
		})
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, updated)
	}
}

func deleteMemberHandler(uc *usecase.MemberUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := uc.Delete(r.Context(), types.MemberID(chi.URLParam(r, "id"))); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
