package handler

import (
	"net/http"

	"github.com/hanseo/dearday/backend/internal/domain"
)

// invitationResponse decorates the invitation record with its externally
// visible address.
type invitationResponse struct {
	domain.Invitation
	CanonicalURL string `json:"canonical_url"`
}

// CreateInvitation handles POST /v1/invitations.
// The record starts unslugged; the owner picks a public path later via
// PUT /v1/invitations/{id}/slug.
func (s *Server) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	inv, err := s.invitations.Create(r.Context(), caller)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, invitationResponse{Invitation: inv, CanonicalURL: s.canonicalURL(inv)})
}

// GetInvitation handles GET /v1/invitations/{id}.
func (s *Server) GetInvitation(w http.ResponseWriter, r *http.Request) {
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

	inv, err := s.invitations.GetByID(r.Context(), id, caller)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invitationResponse{Invitation: inv, CanonicalURL: s.canonicalURL(inv)})
}

// DeleteInvitation handles DELETE /v1/invitations/{id}.
// Aliases share the invitation's lifecycle and are removed with it.
func (s *Server) DeleteInvitation(w http.ResponseWriter, r *http.Request) {
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

	if err := s.invitations.Delete(r.Context(), id, caller); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
