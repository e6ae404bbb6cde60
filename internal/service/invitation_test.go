package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanseo/dearday/backend/internal/domain"
	"github.com/hanseo/dearday/backend/internal/service"
)

func TestInvitationService_Create(t *testing.T) {
	owner := uuid.New()
	repo := &mockInvitationRepo{
		create: func(_ context.Context, ownerID uuid.UUID) (domain.Invitation, error) {
			return domain.Invitation{ID: uuid.New(), OwnerID: ownerID}, nil
		},
	}
	svc := service.NewInvitationService(repo)

	inv, err := svc.Create(context.Background(), owner)

	require.NoError(t, err)
	assert.Equal(t, owner, inv.OwnerID)
	assert.Nil(t, inv.Slug)
}

func TestInvitationService_GetByID_OwnerOnly(t *testing.T) {
	inv := invitationFixture(nil)
	repo := &mockInvitationRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Invitation, error) { return inv, nil },
	}
	svc := service.NewInvitationService(repo)

	got, err := svc.GetByID(context.Background(), inv.ID, inv.OwnerID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, got.ID)

	_, err = svc.GetByID(context.Background(), inv.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestInvitationService_Delete(t *testing.T) {
	inv := invitationFixture(nil)
	deleted := false
	repo := &mockInvitationRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Invitation, error) { return inv, nil },
		delete: func(_ context.Context, id uuid.UUID) error {
			assert.Equal(t, inv.ID, id)
			deleted = true
			return nil
		},
	}
	svc := service.NewInvitationService(repo)

	require.NoError(t, svc.Delete(context.Background(), inv.ID, inv.OwnerID))
	assert.True(t, deleted)
}

func TestInvitationService_Delete_Forbidden(t *testing.T) {
	inv := invitationFixture(nil)
	repo := &mockInvitationRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Invitation, error) { return inv, nil },
		delete: func(_ context.Context, _ uuid.UUID) error {
			t.Fatal("delete must not be reached for a non-owner")
			return nil
		},
	}
	svc := service.NewInvitationService(repo)

	err := svc.Delete(context.Background(), inv.ID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestInvitationService_Delete_NotFound(t *testing.T) {
	repo := &mockInvitationRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Invitation, error) {
			return domain.Invitation{}, domain.ErrNotFound
		},
	}
	svc := service.NewInvitationService(repo)

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
