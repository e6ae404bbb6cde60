// Package slug implements canonicalization and validation for the public
// path segments that address invitations. Normalize is the single source of
// truth for what a slug looks like; every write path runs candidates through
// Normalize then Validate before touching the database.
package slug

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/hanseo/dearday/backend/internal/domain"
)

// Length bounds for a valid slug, inclusive.
const (
	MinLength = 3
	MaxLength = 30
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	invalidChars  = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)

	// slugPattern: lowercase-alphanumeric segments separated by single
	// hyphens, no leading or trailing hyphen.
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// reserved is the fixed deny-list of slugs that collide with system paths or
// product surfaces. Kept lowercase; candidates are normalized before lookup.
var reserved = map[string]struct{}{
	"admin":       {},
	"api":         {},
	"app":         {},
	"assets":      {},
	"dashboard":   {},
	"dearday":     {},
	"docs":        {},
	"guestbook":   {},
	"healthz":     {},
	"help":        {},
	"invitation":  {},
	"invitations": {},
	"login":       {},
	"logout":      {},
	"payment":     {},
	"payments":    {},
	"preview":     {},
	"privacy":     {},
	"resolve":     {},
	"rsvp":        {},
	"settings":    {},
	"signup":      {},
	"static":      {},
	"support":     {},
	"templates":   {},
	"terms":       {},
	"www":         {},
}

// Normalize converts arbitrary text into canonical slug form: lowercase,
// trimmed, whitespace runs collapsed to single hyphens, everything outside
// [a-z0-9-] stripped, hyphen runs collapsed, leading/trailing hyphens
// removed. Pure and idempotent: Normalize(Normalize(s)) == Normalize(s).
// The result is not guaranteed valid — run it through Validate.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.TrimSpace(s)
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = invalidChars.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Validate checks a normalized candidate against the slug rules,
// short-circuiting at the first failure. The returned error wraps
// domain.ErrValidation and includes the candidate so handlers can show the
// normalized form to the client.
func Validate(s string) error {
	if s == "" {
		return fmt.Errorf("%w: slug is empty after normalization", domain.ErrValidation)
	}
	if len(s) < MinLength || len(s) > MaxLength {
		return fmt.Errorf("%w: slug %q must be between %d and %d characters", domain.ErrValidation, s, MinLength, MaxLength)
	}
	if !slugPattern.MatchString(s) {
		return fmt.Errorf("%w: slug %q may only contain lowercase letters, digits and single hyphens", domain.ErrValidation, s)
	}
	if Reserved(s) {
		return fmt.Errorf("%w: slug %q is reserved", domain.ErrValidation, s)
	}
	// Keep the slug and identifier address spaces disjoint so the resolver
	// can dispatch on shape alone.
	if _, err := uuid.Parse(s); err == nil {
		return fmt.Errorf("%w: slug %q has the shape of an invitation id", domain.ErrValidation, s)
	}
	return nil
}

// Reserved reports whether s is on the deny-list of system and product paths.
func Reserved(s string) bool {
	_, ok := reserved[s]
	return ok
}
