package handler

import (
	"net/http"

	"github.com/hanseo/dearday/backend/internal/domain"
)

// ListAliases handles GET /v1/invitations/{id}/aliases.
// Owners use this to see which retired slugs still redirect, and to tell
// "available" apart from "available via reclaim" before renaming.
func (s *Server) ListAliases(w http.ResponseWriter, r *http.Request) {
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

	aliases, err := s.aliases.List(r.Context(), id, caller)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.SlugAlias{"data": aliases})
}

// DeleteAlias handles DELETE /v1/invitations/{id}/aliases/{aliasId}.
// The retired slug stops redirecting and becomes claimable again; this is
// also how an owner frees a slot when the alias ledger is full.
func (s *Server) DeleteAlias(w http.ResponseWriter, r *http.Request) {
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
	aliasID, err := pathID(r, "aliasId")
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "alias not found")
		return
	}

	if err := s.aliases.Delete(r.Context(), id, aliasID, caller); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
