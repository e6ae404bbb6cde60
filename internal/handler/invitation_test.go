package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanseo/dearday/backend/internal/domain"
)

func TestCreateInvitation(t *testing.T) {
	caller := uuid.New()
	created := domain.Invitation{ID: uuid.New(), OwnerID: caller}
	invitations := &mockInvitationServicer{
		create: func(_ context.Context, ownerID uuid.UUID) (domain.Invitation, error) {
			assert.Equal(t, caller, ownerID)
			return created, nil
		},
	}
	router := newTestRouter(nil, invitations, nil)

	rec := doJSON(t, router, http.MethodPost, "/v1/invitations", &caller, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got struct {
		ID           uuid.UUID `json:"id"`
		Slug         *string   `json:"slug"`
		CanonicalURL string    `json:"canonical_url"`
	}
	decodeBody(t, rec, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Nil(t, got.Slug)
	assert.Equal(t, testBaseURL+"/"+created.ID.String(), got.CanonicalURL, "unslugged invitations are addressed by identifier")
}

func TestCreateInvitation_Unauthenticated(t *testing.T) {
	router := newTestRouter(nil, &mockInvitationServicer{}, nil)

	rec := doJSON(t, router, http.MethodPost, "/v1/invitations", nil, nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetInvitation(t *testing.T) {
	caller := uuid.New()
	inv := domain.Invitation{ID: uuid.New(), OwnerID: caller, Slug: strPtr("kim-lee-2027")}
	invitations := &mockInvitationServicer{
		getByID: func(_ context.Context, id, callerID uuid.UUID) (domain.Invitation, error) {
			assert.Equal(t, inv.ID, id)
			assert.Equal(t, caller, callerID)
			return inv, nil
		},
	}
	router := newTestRouter(nil, invitations, nil)

	rec := doJSON(t, router, http.MethodGet, "/v1/invitations/"+inv.ID.String(), &caller, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		CanonicalURL string `json:"canonical_url"`
	}
	decodeBody(t, rec, &got)
	assert.Equal(t, testBaseURL+"/kim-lee-2027", got.CanonicalURL)
}

func TestGetInvitation_Forbidden(t *testing.T) {
	caller := uuid.New()
	invitations := &mockInvitationServicer{
		getByID: func(_ context.Context, _, _ uuid.UUID) (domain.Invitation, error) {
			return domain.Invitation{}, domain.ErrForbidden
		},
	}
	router := newTestRouter(nil, invitations, nil)

	rec := doJSON(t, router, http.MethodGet, "/v1/invitations/"+uuid.NewString(), &caller, nil)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", errorCode(t, rec))
}

func TestGetInvitation_BadID(t *testing.T) {
	caller := uuid.New()
	router := newTestRouter(nil, &mockInvitationServicer{}, nil)

	rec := doJSON(t, router, http.MethodGet, "/v1/invitations/not-a-uuid", &caller, nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteInvitation(t *testing.T) {
	caller := uuid.New()
	invID := uuid.New()
	invitations := &mockInvitationServicer{
		delete: func(_ context.Context, id, callerID uuid.UUID) error {
			assert.Equal(t, invID, id)
			assert.Equal(t, caller, callerID)
			return nil
		},
	}
	router := newTestRouter(nil, invitations, nil)

	rec := doJSON(t, router, http.MethodDelete, "/v1/invitations/"+invID.String(), &caller, nil)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteInvitation_NotFound(t *testing.T) {
	caller := uuid.New()
	invitations := &mockInvitationServicer{
		delete: func(_ context.Context, _, _ uuid.UUID) error { return domain.ErrNotFound },
	}
	router := newTestRouter(nil, invitations, nil)

	rec := doJSON(t, router, http.MethodDelete, "/v1/invitations/"+uuid.NewString(), &caller, nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetHealth(t *testing.T) {
	router := newTestRouter(nil, nil, nil)

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]string
	decodeBody(t, rec, &got)
	assert.Equal(t, "ok", got["status"])
}
