package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/commently/commently/internal/common"
	"github.com/commently/commently/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// commentRequest is the create payload. There is intentionally no owner
// field: ownership always comes from the authenticated identity.
type commentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Title   string `json:"title"`
	CpaID   string `json:"cpaId"`
}

// commentPatchRequest is the partial update payload; absent fields are left
// unchanged.
type commentPatchRequest struct {
	Name    *string `json:"name"`
	Content *string `json:"content"`
	Title   *string `json:"title"`
	CpaID   *string `json:"cpaId"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	cpaID := chi.URLParam(r, "cpaId")

	result, err := s.comments.ListByCpaID(r.Context(), cpaID)
	if err != nil {
		s.logger.Error(r.Context(), "listing comments failed", "cpa_id", cpaID, "error", err.Error())
		s.respondError(w, http.StatusInternalServerError, "error encountered")
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "missing token")
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := s.comments.Create(r.Context(), identity.ID, &services.CommentInput{
		Name:    req.Name,
		Content: req.Content,
		Title:   req.Title,
		CpaID:   req.CpaID,
	})
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			s.respondError(w, http.StatusNotImplemented, "provide all fields")
			return
		}
		s.logger.Error(r.Context(), "creating comment failed", "error", err.Error())
		s.respondError(w, http.StatusInternalServerError, "error encountered")
		return
	}

	s.respondJSON(w, http.StatusOK, comment)
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "missing token")
		return
	}

	var req commentPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := s.comments.Update(r.Context(), identity.ID, chi.URLParam(r, "id"), &services.CommentPatch{
		Name:    req.Name,
		Content: req.Content,
		Title:   req.Title,
		CpaID:   req.CpaID,
	})
	if err != nil {
		s.respondCommentMutationError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, comment)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "missing token")
		return
	}

	deleted, err := s.comments.Delete(r.Context(), identity.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.respondCommentMutationError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, messageResponse{Message: "deleted comment titled " + deleted.Title})
}

// respondCommentMutationError maps ownership-guarded mutation failures.
// The forbidden message is deliberately vague so a non-owner learns nothing
// about the resource.
func (s *Server) respondCommentMutationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		s.respondError(w, http.StatusNotFound, "comment not found")
	case errors.Is(err, common.ErrorForbidden):
		s.respondError(w, http.StatusUnauthorized, "invalid user or token")
	case errors.Is(err, common.ErrorValidation):
		s.respondError(w, http.StatusNotImplemented, "provide all fields")
	default:
		s.logger.Error(r.Context(), "comment mutation failed", "error", err.Error())
		s.respondError(w, http.StatusInternalServerError, "error encountered")
	}
}
