package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxAliasesPerInvitation bounds how many retired slugs one invitation may
// keep. Renames that would exceed the bound are rejected; nothing is evicted
// silently. Owners free a slot by deleting an alias.
const MaxAliasesPerInvitation = 10

// SlugAlias is a retired slug that still resolves, via permanent redirect,
// to its owning invitation's current address. Aliases are created only by
// renames and removed only by same-owner reclaim or explicit deletion.
type SlugAlias struct {
	ID           uuid.UUID `json:"id"`
	InvitationID uuid.UUID `json:"invitation_id"`
	Slug         string    `json:"slug"`
	CreatedAt    time.Time `json:"created_at"`
}
