package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AvailabilityRepo answers whether a slug is free to claim.
//
// A slug is unavailable when another invitation holds it as its active slug
// or in its alias ledger. Rows belonging to excludeInvitationID are not
// counted, so an invitation's own current slug and own aliases read as
// available — the latter is the reclaim path. Pass uuid.Nil to exclude
// nothing.
type AvailabilityRepo interface {
	IsAvailable(ctx context.Context, slug string, excludeInvitationID uuid.UUID) (bool, error)
}

type pgAvailabilityRepo struct {
	db db
}

// NewAvailabilityRepo constructs an AvailabilityRepo backed by the provided db.
func NewAvailabilityRepo(db db) AvailabilityRepo {
	return &pgAvailabilityRepo{db: db}
}

// IsAvailable checks both tables in one round trip. This answer is advisory:
// the guarded writes in InvitationRepo.UpdateSlug and AliasRepo.Insert are
// the uniqueness authority under concurrency.
func (r *pgAvailabilityRepo) IsAvailable(ctx context.Context, slug string, excludeInvitationID uuid.UUID) (bool, error) {
	const q = `
		SELECT NOT EXISTS (
			SELECT 1 FROM invitations
			WHERE slug = @slug AND id <> @exclude_id
			UNION ALL
			SELECT 1 FROM slug_aliases
			WHERE slug = @slug AND invitation_id <> @exclude_id
		)`

	var available bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug, "exclude_id": excludeInvitationID}).Scan(&available)
	if err != nil {
		return false, fmt.Errorf("repo.AvailabilityRepo.IsAvailable: %w", err)
	}
	return available, nil
}
