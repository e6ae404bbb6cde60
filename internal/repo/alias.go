package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/hanseo/dearday/backend/internal/domain"
)

// AliasRepo defines the persistence operations for the alias ledger — the
// bounded history of slugs an invitation has vacated.
type AliasRepo interface {
	// Insert records a vacated slug for an invitation. The statement is
	// guarded: it refuses to insert when another invitation's active slug
	// holds the value, and the unique constraint rejects a slug already in
	// the ledger. Both surface as domain.ErrSlugTaken. The owning
	// invitation's own active slug never blocks — the rename path inserts
	// the vacated slug while the invitation still holds it.
	//
	// The insert runs inside its own savepoint, so when the caller is mid
	// transaction a failure here does not poison the surrounding work —
	// rename treats a lost redirect entry as non-fatal.
	Insert(ctx context.Context, invitationID uuid.UUID, slug string) (domain.SlugAlias, error)

	// GetBySlug retrieves the alias row holding slug, whichever invitation
	// owns it. Returns domain.ErrNotFound when no alias holds it.
	GetBySlug(ctx context.Context, slug string) (domain.SlugAlias, error)

	// ListByInvitation returns an invitation's aliases, newest first.
	ListByInvitation(ctx context.Context, invitationID uuid.UUID) ([]domain.SlugAlias, error)

	// CountByInvitation returns how many aliases an invitation holds.
	CountByInvitation(ctx context.Context, invitationID uuid.UUID) (int64, error)

	// DeleteByInvitationAndSlug removes one invitation's alias for slug —
	// the reclaim path, where a retired slug is promoted back to active.
	// Returns domain.ErrNotFound if the invitation has no such alias.
	DeleteByInvitationAndSlug(ctx context.Context, invitationID uuid.UUID, slug string) error

	// DeleteByID removes an alias by id, scoped to its owning invitation.
	// Returns domain.ErrNotFound if the pair does not match a row.
	DeleteByID(ctx context.Context, invitationID, aliasID uuid.UUID) error
}

// pgAliasRepo is the Postgres implementation of AliasRepo.
type pgAliasRepo struct {
	db db
}

// NewAliasRepo constructs an AliasRepo backed by the provided db connection.
func NewAliasRepo(db db) AliasRepo {
	return &pgAliasRepo{db: db}
}

// Insert records the vacated slug inside a savepoint. On *pgxpool.Pool,
// Begin opens a plain transaction; on pgx.Tx it opens a savepoint, which is
// what lets the rename transaction survive a failed insert.
func (r *pgAliasRepo) Insert(ctx context.Context, invitationID uuid.UUID, slug string) (domain.SlugAlias, error) {
	const q = `
		INSERT INTO slug_aliases (invitation_id, slug)
		SELECT @invitation_id, @slug
		WHERE NOT EXISTS (
			SELECT 1 FROM invitations
			WHERE slug = @slug AND id <> @invitation_id
		)
		RETURNING id, invitation_id, slug, created_at`

	sp, err := r.db.Begin(ctx)
	if err != nil {
		return domain.SlugAlias{}, fmt.Errorf("repo.AliasRepo.Insert: begin: %w", err)
	}

	row := sp.QueryRow(ctx, q, pgx.NamedArgs{"invitation_id": invitationID, "slug": slug})
	result, err := scanAlias(row)
	if err != nil {
		_ = sp.Rollback(ctx)
		if errors.Is(err, domain.ErrNotFound) || isUniqueViolation(err) {
			return domain.SlugAlias{}, fmt.Errorf("repo.AliasRepo.Insert: %w", domain.ErrSlugTaken)
		}
		return domain.SlugAlias{}, fmt.Errorf("repo.AliasRepo.Insert: %w", err)
	}

	if err := sp.Commit(ctx); err != nil {
		return domain.SlugAlias{}, fmt.Errorf("repo.AliasRepo.Insert: commit: %w", err)
	}
	return result, nil
}

func (r *pgAliasRepo) GetBySlug(ctx context.Context, slug string) (domain.SlugAlias, error) {
	const q = `
		SELECT id, invitation_id, slug, created_at
		FROM slug_aliases
		WHERE slug = @slug`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug})
	result, err := scanAlias(row)
	if err != nil {
		return domain.SlugAlias{}, fmt.Errorf("repo.AliasRepo.GetBySlug: %w", err)
	}
	return result, nil
}

func (r *pgAliasRepo) ListByInvitation(ctx context.Context, invitationID uuid.UUID) ([]domain.SlugAlias, error) {
	const q = `
		SELECT id, invitation_id, slug, created_at
		FROM slug_aliases
		WHERE invitation_id = @invitation_id
		ORDER BY created_at DESC, slug`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"invitation_id": invitationID})
	if err != nil {
		return nil, fmt.Errorf("repo.AliasRepo.ListByInvitation: %w", err)
	}
	defer rows.Close()

	aliases := []domain.SlugAlias{}
	for rows.Next() {
		a, err := scanAlias(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.AliasRepo.ListByInvitation: scan: %w", err)
		}
		aliases = append(aliases, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AliasRepo.ListByInvitation: rows: %w", err)
	}
	return aliases, nil
}

func (r *pgAliasRepo) CountByInvitation(ctx context.Context, invitationID uuid.UUID) (int64, error) {
	const q = `SELECT count(*) FROM slug_aliases WHERE invitation_id = @invitation_id`

	var n int64
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"invitation_id": invitationID}).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repo.AliasRepo.CountByInvitation: %w", err)
	}
	return n, nil
}

func (r *pgAliasRepo) DeleteByInvitationAndSlug(ctx context.Context, invitationID uuid.UUID, slug string) error {
	const q = `
		DELETE FROM slug_aliases
		WHERE invitation_id = @invitation_id AND slug = @slug`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"invitation_id": invitationID, "slug": slug})
	if err != nil {
		return fmt.Errorf("repo.AliasRepo.DeleteByInvitationAndSlug: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.AliasRepo.DeleteByInvitationAndSlug: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgAliasRepo) DeleteByID(ctx context.Context, invitationID, aliasID uuid.UUID) error {
	const q = `
		DELETE FROM slug_aliases
		WHERE id = @id AND invitation_id = @invitation_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": aliasID, "invitation_id": invitationID})
	if err != nil {
		return fmt.Errorf("repo.AliasRepo.DeleteByID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.AliasRepo.DeleteByID: %w", domain.ErrNotFound)
	}
	return nil
}

// scanAlias maps a single database row into a domain.SlugAlias.
func scanAlias(s scanner) (domain.SlugAlias, error) {
	var (
		a     domain.SlugAlias
		id    pgtype.UUID
		invID pgtype.UUID
	)
	err := s.Scan(&id, &invID, &a.Slug, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SlugAlias{}, domain.ErrNotFound
		}
		return domain.SlugAlias{}, err
	}
	a.ID = uuid.UUID(id.Bytes)
	a.InvitationID = uuid.UUID(invID.Bytes)
	return a, nil
}
