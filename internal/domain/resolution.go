package domain

// ResolutionKind says how an inbound path key matched an invitation.
type ResolutionKind string

const (
	// ResolutionIdentifier: the key was an invitation identifier. Identifier
	// lookups bypass the slug system entirely — this is the durable fallback
	// address that works regardless of slug state.
	ResolutionIdentifier ResolutionKind = "identifier"

	// ResolutionDirect: the key equals an invitation's active slug.
	ResolutionDirect ResolutionKind = "direct"

	// ResolutionAlias: the key is a retired slug. The caller must issue a
	// permanent redirect to Canonical — an alias is never served as the
	// canonical page.
	ResolutionAlias ResolutionKind = "alias"
)

// Resolution is the outcome of mapping an inbound path key to an invitation.
// A miss is reported as ErrNotFound, not as a Resolution value.
type Resolution struct {
	Kind       ResolutionKind `json:"kind"`
	Invitation Invitation     `json:"invitation"`
	// Canonical is the invitation's current public address segment (active
	// slug, or identifier when no slug is set). For alias hits this is the
	// redirect target.
	Canonical string `json:"canonical"`
}

// Availability is the outcome of a public availability check.
// Reclaim is set when the slug is one of the asking invitation's own aliases:
// it reads as available, but claiming it promotes the alias back to active
// and deletes the ledger row.
type Availability struct {
	Slug        string   `json:"slug"`
	Available   bool     `json:"available"`
	Reclaim     bool     `json:"reclaim,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}
