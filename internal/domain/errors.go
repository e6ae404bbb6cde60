package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when a slug candidate fails normalization rules
// (empty, wrong length, bad charset, reserved, identifier-shaped).
// Always a caller error — handlers map it to HTTP 422 and never retry.
var ErrValidation = errors.New("validation error")

// ErrSlugTaken is returned when a slug is held by a different invitation,
// either as its active slug or as one of its aliases.
// Handlers should map this to HTTP 409. See SlugTakenError for the carrier
// type that adds suggestions.
var ErrSlugTaken = errors.New("slug taken")

// ErrAliasCapacity is returned when a rename would push an invitation past
// MaxAliasesPerInvitation retired slugs. The owner must delete an alias to
// free a slot; nothing is evicted automatically.
var ErrAliasCapacity = errors.New("alias capacity reached")

// ErrUnauthorized is returned when no authenticated principal accompanies a
// request that requires one. Handlers map it to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when the authenticated principal is not the owner
// of the invitation being modified. Handlers map it to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrRateLimited is returned when a caller exceeds the fixed-window request
// budget on the public availability-check surface. Handlers map it to 429;
// the window length implies the retry-after.
var ErrRateLimited = errors.New("rate limited")

// SlugTakenError reports a conflict on a specific slug and carries up to
// three alternative candidates the client can offer instead.
// It unwraps to ErrSlugTaken so callers can match with errors.Is and pull
// the suggestions out with errors.As.
type SlugTakenError struct {
	Slug        string
	Suggestions []string
}

func (e *SlugTakenError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("slug taken: %q", e.Slug)
	}
	return fmt.Sprintf("slug taken: %q (try %s)", e.Slug, strings.Join(e.Suggestions, ", "))
}

func (e *SlugTakenError) Unwrap() error { return ErrSlugTaken }
