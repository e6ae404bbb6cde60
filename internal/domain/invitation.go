// Package domain contains the core data types for the DearDay naming service.
// This package has zero external dependencies (besides uuid) and is imported
// by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Invitation is the naming service's view of an invitation: its permanent
// identifier, its owner, and its current public slug. Invitation content
// (template, RSVP state, guestbook) lives in other services and is addressed
// through this record.
type Invitation struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Slug      *string   `json:"slug"` // nil until the owner picks a public path
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Canonical returns the invitation's current public address segment: the
// active slug when one is set, otherwise the identifier string. The
// identifier is always resolvable, so this never returns an empty string.
func (i Invitation) Canonical() string {
	if i.Slug != nil && *i.Slug != "" {
		return *i.Slug
	}
	return i.ID.String()
}

// CanonicalPath returns the root-relative public path for the invitation.
func (i Invitation) CanonicalPath() string {
	return "/" + i.Canonical()
}
