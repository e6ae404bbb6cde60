package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hanseo/dearday/backend/internal/domain"
)

// CheckAvailability handles GET /v1/slugs/availability?slug=...&exclude_id=...
// The endpoint sits behind the admission limiter; exceeding the window
// yields 429 before this handler runs.
func (s *Server) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("slug")
	if raw == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "slug query parameter is required")
		return
	}

	excludeID := uuid.Nil
	if v := r.URL.Query().Get("exclude_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "validation_error", "exclude_id must be an invitation id")
			return
		}
		excludeID = id
	}

	result, err := s.slugs.CheckAvailability(r.Context(), raw, excludeID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// renameRequest is the body of PUT /v1/invitations/{id}/slug.
// A null (or absent) slug clears the invitation's public path.
type renameRequest struct {
	Slug *string `json:"slug"`
}

// renameResponse reports the invitation's address after a rename or clear.
type renameResponse struct {
	Slug         *string `json:"slug"`
	CanonicalURL string  `json:"canonical_url"`
}

// RenameSlug handles PUT /v1/invitations/{id}/slug.
func (s *Server) RenameSlug(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "invitation not found")
		return
	}

	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body must be JSON with a slug field")
		return
	}

	inv, err := s.slugs.Rename(r.Context(), id, caller, req.Slug)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, renameResponse{
		Slug:         inv.Slug,
		CanonicalURL: s.canonicalURL(inv),
	})
}

// resolveResponse is the payload for identifier and direct hits.
type resolveResponse struct {
	Kind         domain.ResolutionKind `json:"kind"`
	Invitation   domain.Invitation     `json:"invitation"`
	CanonicalURL string                `json:"canonical_url"`
}

// Resolve handles GET /v1/resolve/{key} — the public page-load path.
// Identifier and direct hits return the invitation payload. Alias hits
// return a permanent redirect to the canonical path; the alias is never
// served as the canonical page.
func (s *Server) Resolve(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	res, err := s.slugs.Resolve(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "no invitation at this address")
			return
		}
		respondServiceError(w, r, err)
		return
	}

	if res.Kind == domain.ResolutionAlias {
		http.Redirect(w, r, s.baseURL+"/"+res.Canonical, http.StatusMovedPermanently)
		return
	}

	writeJSON(w, http.StatusOK, resolveResponse{
		Kind:         res.Kind,
		Invitation:   res.Invitation,
		CanonicalURL: s.canonicalURL(res.Invitation),
	})
}
