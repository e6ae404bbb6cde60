// Package service contains the business logic for the naming service.
// Services normalize and validate input, enforce ownership and the alias
// bound, and orchestrate repo calls. No SQL lives here — services depend on
// repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hanseo/dearday/backend/internal/domain"
	"github.com/hanseo/dearday/backend/internal/repo"
	"github.com/hanseo/dearday/backend/internal/slug"
)

// maxSuggestions is how many alternatives a conflict response carries.
const maxSuggestions = 3

// SlugService owns the slug lifecycle: availability checks, the rename
// workflow with its alias ledger bookkeeping, suggestions, and the read-path
// resolution cascade.
type SlugService struct {
	invitations  repo.InvitationRepo
	aliases      repo.AliasRepo
	availability repo.AvailabilityRepo
	tx           repo.TxRunner
	log          *slog.Logger
}

// NewSlugService constructs a SlugService from its repo dependencies.
func NewSlugService(
	invitations repo.InvitationRepo,
	aliases repo.AliasRepo,
	availability repo.AvailabilityRepo,
	tx repo.TxRunner,
	log *slog.Logger,
) *SlugService {
	return &SlugService{
		invitations:  invitations,
		aliases:      aliases,
		availability: availability,
		tx:           tx,
		log:          log,
	}
}

// CheckAvailability normalizes and validates raw, then reports whether the
// resulting slug is free. Pass excludeID = uuid.Nil for an anonymous check;
// pass an invitation id to ignore that invitation's own slug and aliases.
// When the candidate is one of the excluded invitation's own aliases the
// result is available with Reclaim set, so clients can warn that claiming it
// deletes the redirect. When taken, up to three suggestions are attached.
func (s *SlugService) CheckAvailability(ctx context.Context, raw string, excludeID uuid.UUID) (domain.Availability, error) {
	normalized := slug.Normalize(raw)
	if err := slug.Validate(normalized); err != nil {
		return domain.Availability{}, fmt.Errorf("service.SlugService.CheckAvailability: %w", err)
	}

	available, err := s.availability.IsAvailable(ctx, normalized, excludeID)
	if err != nil {
		return domain.Availability{}, fmt.Errorf("service.SlugService.CheckAvailability: %w", err)
	}

	result := domain.Availability{Slug: normalized, Available: available}
	if available && excludeID != uuid.Nil {
		reclaim, err := s.isOwnAlias(ctx, normalized, excludeID)
		if err != nil {
			return domain.Availability{}, fmt.Errorf("service.SlugService.CheckAvailability: %w", err)
		}
		result.Reclaim = reclaim
	}
	if !available {
		result.Suggestions = s.suggestions(ctx, normalized, excludeID)
	}
	return result, nil
}

// Rename changes an invitation's active slug, preserving the vacated slug as
// a redirect in the alias ledger. A nil requested value clears the slug — the
// degenerate rename, which records no alias for the cleared value.
//
// The ledger mutations and the slug update run in one transaction, but the
// alias insert of the vacated slug is best-effort: losing a redirect entry is
// logged, never fatal, and must not block the rename. The guarded write in
// UpdateSlug is the uniqueness authority; the pre-flight availability check
// only exists to fail early with suggestions.
func (s *SlugService) Rename(ctx context.Context, invitationID, ownerID uuid.UUID, requested *string) (domain.Invitation, error) {
	inv, err := s.invitations.GetByID(ctx, invitationID)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("service.SlugService.Rename: %w", err)
	}
	if inv.OwnerID != ownerID {
		return domain.Invitation{}, fmt.Errorf("service.SlugService.Rename: %w", domain.ErrForbidden)
	}

	if requested == nil {
		cleared, err := s.invitations.ClearSlug(ctx, invitationID)
		if err != nil {
			return domain.Invitation{}, fmt.Errorf("service.SlugService.Rename: clear: %w", err)
		}
		return cleared, nil
	}

	normalized := slug.Normalize(*requested)
	if err := slug.Validate(normalized); err != nil {
		return domain.Invitation{}, fmt.Errorf("service.SlugService.Rename: %w", err)
	}

	// No-op rename: the invitation already answers to this slug.
	if inv.Slug != nil && *inv.Slug == normalized {
		return inv, nil
	}

	available, err := s.availability.IsAvailable(ctx, normalized, invitationID)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("service.SlugService.Rename: %w", err)
	}
	if !available {
		return domain.Invitation{}, fmt.Errorf("service.SlugService.Rename: %w", s.slugTaken(ctx, normalized, invitationID))
	}

	var renamed domain.Invitation
	err = s.tx.InTx(ctx, func(r repo.Repos) error {
		if inv.Slug != nil {
			// The current slug is being vacated and must keep redirecting.
			count, err := r.Aliases.CountByInvitation(ctx, invitationID)
			if err != nil {
				return err
			}
			if count >= domain.MaxAliasesPerInvitation {
				return fmt.Errorf("%w: invitation holds %d aliases", domain.ErrAliasCapacity, count)
			}

			// Reclaim: the requested slug is one of this invitation's own
			// retired slugs — promote it back to active by dropping the row.
			if err := r.Aliases.DeleteByInvitationAndSlug(ctx, invitationID, normalized); err != nil && !errors.Is(err, domain.ErrNotFound) {
				return err
			}

			if _, err := r.Aliases.Insert(ctx, invitationID, *inv.Slug); err != nil {
				// Best-effort: old links to the vacated slug will break, but
				// the rename itself goes through.
				s.log.WarnContext(ctx, "failed to record slug alias",
					"invitation_id", invitationID,
					"slug", *inv.Slug,
					"error", err,
				)
			}
		}

		updated, err := r.Invitations.UpdateSlug(ctx, invitationID, normalized)
		if err != nil {
			if errors.Is(err, domain.ErrSlugTaken) {
				// The pre-check passed but a concurrent writer won the slug.
				return s.slugTaken(ctx, normalized, invitationID)
			}
			return err
		}
		renamed = updated
		return nil
	})
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("service.SlugService.Rename: %w", err)
	}
	return renamed, nil
}

// Resolve maps an inbound path key to an invitation. The cascade short-
// circuits on the first match: identifier, then active slug, then alias.
// A miss at every step returns domain.ErrNotFound.
func (s *SlugService) Resolve(ctx context.Context, key string) (domain.Resolution, error) {
	if id, err := uuid.Parse(key); err == nil {
		inv, err := s.invitations.GetByID(ctx, id)
		if err != nil {
			return domain.Resolution{}, fmt.Errorf("service.SlugService.Resolve: %w", err)
		}
		return domain.Resolution{Kind: domain.ResolutionIdentifier, Invitation: inv, Canonical: inv.Canonical()}, nil
	}

	inv, err := s.invitations.GetBySlug(ctx, key)
	if err == nil {
		return domain.Resolution{Kind: domain.ResolutionDirect, Invitation: inv, Canonical: inv.Canonical()}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Resolution{}, fmt.Errorf("service.SlugService.Resolve: %w", err)
	}

	alias, err := s.aliases.GetBySlug(ctx, key)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("service.SlugService.Resolve: %w", err)
	}
	owner, err := s.invitations.GetByID(ctx, alias.InvitationID)
	if err != nil {
		// The FK guarantees the owner exists; a miss here is a storage
		// inconsistency, not a routine 404.
		return domain.Resolution{}, fmt.Errorf("service.SlugService.Resolve: alias owner: %w", err)
	}
	return domain.Resolution{Kind: domain.ResolutionAlias, Invitation: owner, Canonical: owner.Canonical()}, nil
}

// slugTaken builds the conflict error for normalized, decorated with up to
// three available alternatives.
func (s *SlugService) slugTaken(ctx context.Context, normalized string, excludeID uuid.UUID) *domain.SlugTakenError {
	return &domain.SlugTakenError{
		Slug:        normalized,
		Suggestions: s.suggestions(ctx, normalized, excludeID),
	}
}

// suggestions probes the fixed candidate list through the availability
// checker and returns the first maxSuggestions free ones. Best-effort: probe
// failures are logged and skipped, and nothing protects the result against a
// concurrent claim — the rename write stays the authority.
func (s *SlugService) suggestions(ctx context.Context, base string, excludeID uuid.UUID) []string {
	var out []string
	for _, candidate := range slug.Candidates(base) {
		if len(out) == maxSuggestions {
			break
		}
		available, err := s.availability.IsAvailable(ctx, candidate, excludeID)
		if err != nil {
			s.log.WarnContext(ctx, "suggestion probe failed", "candidate", candidate, "error", err)
			continue
		}
		if available {
			out = append(out, candidate)
		}
	}
	return out
}

// isOwnAlias reports whether normalized sits in invitationID's own ledger.
func (s *SlugService) isOwnAlias(ctx context.Context, normalized string, invitationID uuid.UUID) (bool, error) {
	alias, err := s.aliases.GetBySlug(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return alias.InvitationID == invitationID, nil
}
