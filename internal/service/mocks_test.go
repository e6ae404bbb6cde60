package service_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hanseo/dearday/backend/internal/domain"
	"github.com/hanseo/dearday/backend/internal/repo"
	"github.com/hanseo/dearday/backend/internal/service"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field — set only the ones your test needs.
// This is idiomatic Go: no mock generation library required for simple cases.

type mockInvitationRepo struct {
	create     func(ctx context.Context, ownerID uuid.UUID) (domain.Invitation, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Invitation, error)
	getBySlug  func(ctx context.Context, slug string) (domain.Invitation, error)
	updateSlug func(ctx context.Context, id uuid.UUID, slug string) (domain.Invitation, error)
	clearSlug  func(ctx context.Context, id uuid.UUID) (domain.Invitation, error)
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockInvitationRepo) Create(ctx context.Context, ownerID uuid.UUID) (domain.Invitation, error) {
	return m.create(ctx, ownerID)
}
func (m *mockInvitationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Invitation, error) {
	return m.getByID(ctx, id)
}
func (m *mockInvitationRepo) GetBySlug(ctx context.Context, slug string) (domain.Invitation, error) {
	return m.getBySlug(ctx, slug)
}
func (m *mockInvitationRepo) UpdateSlug(ctx context.Context, id uuid.UUID, slug string) (domain.Invitation, error) {
	return m.updateSlug(ctx, id, slug)
}
func (m *mockInvitationRepo) ClearSlug(ctx context.Context, id uuid.UUID) (domain.Invitation, error) {
	return m.clearSlug(ctx, id)
}
func (m *mockInvitationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockAliasRepo struct {
	insert                    func(ctx context.Context, invitationID uuid.UUID, slug string) (domain.SlugAlias, error)
	getBySlug                 func(ctx context.Context, slug string) (domain.SlugAlias, error)
	listByInvitation          func(ctx context.Context, invitationID uuid.UUID) ([]domain.SlugAlias, error)
	countByInvitation         func(ctx context.Context, invitationID uuid.UUID) (int64, error)
	deleteByInvitationAndSlug func(ctx context.Context, invitationID uuid.UUID, slug string) error
	deleteByID                func(ctx context.Context, invitationID, aliasID uuid.UUID) error
}

func (m *mockAliasRepo) Insert(ctx context.Context, invitationID uuid.UUID, slug string) (domain.SlugAlias, error) {
	return m.insert(ctx, invitationID, slug)
}
func (m *mockAliasRepo) GetBySlug(ctx context.Context, slug string) (domain.SlugAlias, error) {
	return m.getBySlug(ctx, slug)
}
func (m *mockAliasRepo) ListByInvitation(ctx context.Context, invitationID uuid.UUID) ([]domain.SlugAlias, error) {
	return m.listByInvitation(ctx, invitationID)
}
func (m *mockAliasRepo) CountByInvitation(ctx context.Context, invitationID uuid.UUID) (int64, error) {
	return m.countByInvitation(ctx, invitationID)
}
func (m *mockAliasRepo) DeleteByInvitationAndSlug(ctx context.Context, invitationID uuid.UUID, slug string) error {
	return m.deleteByInvitationAndSlug(ctx, invitationID, slug)
}
func (m *mockAliasRepo) DeleteByID(ctx context.Context, invitationID, aliasID uuid.UUID) error {
	return m.deleteByID(ctx, invitationID, aliasID)
}

type mockAvailabilityRepo struct {
	isAvailable func(ctx context.Context, slug string, excludeInvitationID uuid.UUID) (bool, error)
}

func (m *mockAvailabilityRepo) IsAvailable(ctx context.Context, slug string, excludeInvitationID uuid.UUID) (bool, error) {
	return m.isAvailable(ctx, slug, excludeInvitationID)
}

type mockTxRunner struct {
	inTx func(ctx context.Context, fn func(r repo.Repos) error) error
}

func (m *mockTxRunner) InTx(ctx context.Context, fn func(r repo.Repos) error) error {
	return m.inTx(ctx, fn)
}

// compile-time checks: the mocks must satisfy the repo interfaces.
var (
	_ repo.InvitationRepo   = (*mockInvitationRepo)(nil)
	_ repo.AliasRepo        = (*mockAliasRepo)(nil)
	_ repo.AvailabilityRepo = (*mockAvailabilityRepo)(nil)
	_ repo.TxRunner         = (*mockTxRunner)(nil)
)

// newSlugService wires a SlugService whose TxRunner hands the same mocks
// back to the callback, mirroring how the real runner scopes repos to one
// transaction. Logging is discarded.
func newSlugService(inv *mockInvitationRepo, aliases *mockAliasRepo, avail *mockAvailabilityRepo) *service.SlugService {
	repos := repo.Repos{Invitations: inv, Aliases: aliases, Availability: avail}
	tx := &mockTxRunner{inTx: func(_ context.Context, fn func(repo.Repos) error) error {
		return fn(repos)
	}}
	return service.NewSlugService(inv, aliases, avail, tx, discardLogger())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }
