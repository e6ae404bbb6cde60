// Package repo contains all database access logic for the naming service.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
//
// Slug uniqueness is ultimately enforced here, not in the service layer: the
// unique constraints on invitations.slug and slug_aliases.slug plus the
// guarded write statements make the final write the authority. The service's
// pre-flight availability check only improves error messages.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/hanseo/dearday/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
//
// Begin is included so the alias repo can open a savepoint when it already
// runs inside a transaction (pgx.Tx.Begin creates a savepoint).
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// InvitationRepo defines the persistence operations for invitation records.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type InvitationRepo interface {
	// Create inserts an invitation record with a null slug for the given
	// owner and returns the persisted row.
	Create(ctx context.Context, ownerID uuid.UUID) (domain.Invitation, error)

	// GetByID retrieves an invitation by its identifier.
	// Returns domain.ErrNotFound if no such invitation exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Invitation, error)

	// GetBySlug retrieves the invitation whose active slug equals slug.
	// Returns domain.ErrNotFound when no invitation holds it.
	GetBySlug(ctx context.Context, slug string) (domain.Invitation, error)

	// UpdateSlug sets the invitation's active slug. The write is guarded:
	// it refuses to commit when another invitation's alias holds the slug,
	// and the unique constraint rejects a slug held as another invitation's
	// active slug. Both cases surface as domain.ErrSlugTaken — the write,
	// not the pre-check, is the uniqueness authority.
	UpdateSlug(ctx context.Context, id uuid.UUID, slug string) (domain.Invitation, error)

	// ClearSlug sets the invitation's slug to null and returns the updated
	// row. Returns domain.ErrNotFound if the invitation does not exist.
	ClearSlug(ctx context.Context, id uuid.UUID) (domain.Invitation, error)

	// Delete removes an invitation; its aliases go with it via ON DELETE
	// CASCADE. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgInvitationRepo is the Postgres implementation of InvitationRepo.
type pgInvitationRepo struct {
	db db
}

// NewInvitationRepo constructs an InvitationRepo backed by the provided db.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewInvitationRepo(db db) InvitationRepo {
	return &pgInvitationRepo{db: db}
}

func (r *pgInvitationRepo) Create(ctx context.Context, ownerID uuid.UUID) (domain.Invitation, error) {
	const q = `
		INSERT INTO invitations (owner_id)
		VALUES (@owner_id)
		RETURNING id, owner_id, slug, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	result, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("repo.InvitationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgInvitationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Invitation, error) {
	const q = `
		SELECT id, owner_id, slug, created_at, updated_at
		FROM invitations
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("repo.InvitationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgInvitationRepo) GetBySlug(ctx context.Context, slug string) (domain.Invitation, error) {
	const q = `
		SELECT id, owner_id, slug, created_at, updated_at
		FROM invitations
		WHERE slug = @slug`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug})
	result, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("repo.InvitationRepo.GetBySlug: %w", err)
	}
	return result, nil
}

// UpdateSlug performs the guarded slug write. The NOT EXISTS clause blocks
// the update when the slug is held as an alias by a different invitation;
// holding it as one's own alias is fine — the reclaim flow deletes that row
// in the same transaction before calling this.
func (r *pgInvitationRepo) UpdateSlug(ctx context.Context, id uuid.UUID, slug string) (domain.Invitation, error) {
	const q = `
		UPDATE invitations i
		SET slug = @slug, updated_at = now()
		WHERE i.id = @id
		  AND NOT EXISTS (
		      SELECT 1 FROM slug_aliases a
		      WHERE a.slug = @slug AND a.invitation_id <> @id
		  )
		RETURNING id, owner_id, slug, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "slug": slug})
	result, err := scanInvitation(row)
	if err != nil {
		// No row means the guard blocked the write (the caller has already
		// loaded the invitation, so a missing id is a concurrent delete and
		// aborting as a conflict is still correct). A unique violation means
		// another invitation's active slug won the race.
		if errors.Is(err, domain.ErrNotFound) || isUniqueViolation(err) {
			return domain.Invitation{}, fmt.Errorf("repo.InvitationRepo.UpdateSlug: %w", domain.ErrSlugTaken)
		}
		return domain.Invitation{}, fmt.Errorf("repo.InvitationRepo.UpdateSlug: %w", err)
	}
	return result, nil
}

func (r *pgInvitationRepo) ClearSlug(ctx context.Context, id uuid.UUID) (domain.Invitation, error) {
	const q = `
		UPDATE invitations
		SET slug = NULL, updated_at = now()
		WHERE id = @id
		RETURNING id, owner_id, slug, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("repo.InvitationRepo.ClearSlug: %w", err)
	}
	return result, nil
}

func (r *pgInvitationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM invitations WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.InvitationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.InvitationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanInvitation maps a single database row into a domain.Invitation.
// It handles the UUID and nullable slug conversions.
func scanInvitation(s scanner) (domain.Invitation, error) {
	var (
		inv     domain.Invitation
		id      pgtype.UUID
		ownerID pgtype.UUID
	)
	err := s.Scan(&id, &ownerID, &inv.Slug, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Invitation{}, domain.ErrNotFound
		}
		return domain.Invitation{}, err
	}
	inv.ID = uuid.UUID(id.Bytes)
	inv.OwnerID = uuid.UUID(ownerID.Bytes)
	return inv, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
