package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/hanseo/dearday/backend/internal/domain"
	"github.com/hanseo/dearday/backend/internal/handler"
)

const testBaseURL = "https://dearday.example"

// Function-field test doubles for the servicer interfaces — set only what the
// test needs; an unset field panics, which fails the test loudly.

type mockSlugServicer struct {
	checkAvailability func(ctx context.Context, raw string, excludeID uuid.UUID) (domain.Availability, error)
	rename            func(ctx context.Context, invitationID, ownerID uuid.UUID, requested *string) (domain.Invitation, error)
	resolve           func(ctx context.Context, key string) (domain.Resolution, error)
}

func (m *mockSlugServicer) CheckAvailability(ctx context.Context, raw string, excludeID uuid.UUID) (domain.Availability, error) {
	return m.checkAvailability(ctx, raw, excludeID)
}
func (m *mockSlugServicer) Rename(ctx context.Context, invitationID, ownerID uuid.UUID, requested *string) (domain.Invitation, error) {
	return m.rename(ctx, invitationID, ownerID, requested)
}
func (m *mockSlugServicer) Resolve(ctx context.Context, key string) (domain.Resolution, error) {
	return m.resolve(ctx, key)
}

type mockInvitationServicer struct {
	create  func(ctx context.Context, ownerID uuid.UUID) (domain.Invitation, error)
	getByID func(ctx context.Context, id, callerID uuid.UUID) (domain.Invitation, error)
	delete  func(ctx context.Context, id, callerID uuid.UUID) error
}

func (m *mockInvitationServicer) Create(ctx context.Context, ownerID uuid.UUID) (domain.Invitation, error) {
	return m.create(ctx, ownerID)
}
func (m *mockInvitationServicer) GetByID(ctx context.Context, id, callerID uuid.UUID) (domain.Invitation, error) {
	return m.getByID(ctx, id, callerID)
}
func (m *mockInvitationServicer) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	return m.delete(ctx, id, callerID)
}

type mockAliasServicer struct {
	list   func(ctx context.Context, invitationID, callerID uuid.UUID) ([]domain.SlugAlias, error)
	delete func(ctx context.Context, invitationID, aliasID, callerID uuid.UUID) error
}

func (m *mockAliasServicer) List(ctx context.Context, invitationID, callerID uuid.UUID) ([]domain.SlugAlias, error) {
	return m.list(ctx, invitationID, callerID)
}
func (m *mockAliasServicer) Delete(ctx context.Context, invitationID, aliasID, callerID uuid.UUID) error {
	return m.delete(ctx, invitationID, aliasID, callerID)
}

var (
	_ handler.SlugServicer       = (*mockSlugServicer)(nil)
	_ handler.InvitationServicer = (*mockInvitationServicer)(nil)
	_ handler.AliasServicer      = (*mockAliasServicer)(nil)
)

// passthroughLimiter is the no-op admission middleware used in handler tests;
// limiter behaviour has its own tests in the middleware package.
func passthroughLimiter(next http.Handler) http.Handler { return next }

func newTestRouter(slugs *mockSlugServicer, invitations *mockInvitationServicer, aliases *mockAliasServicer) http.Handler {
	srv := handler.NewServer(slugs, invitations, aliases, testBaseURL)
	return srv.Routes(passthroughLimiter)
}

// doJSON performs a request against the router and returns the recorder.
// A non-nil asUser sets the gateway principal header; body may be nil.
func doJSON(t *testing.T, router http.Handler, method, target string, asUser *uuid.UUID, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	if asUser != nil {
		req.Header.Set("X-User-ID", asUser.String())
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the recorded JSON body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

// errorCode digs the machine-readable code out of an error body.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body handler.ErrorResponse
	decodeBody(t, rec, &body)
	return body.Error.Code
}

func strPtr(s string) *string { return &s }
