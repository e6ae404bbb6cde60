// Package handler implements the HTTP handlers for the naming service API.
// All handlers are methods on Server. Methods are split into resource-
// specific files (invitation.go, slug.go, etc.) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hanseo/dearday/backend/internal/domain"
)

// SlugServicer defines the slug operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type SlugServicer interface {
	CheckAvailability(ctx context.Context, raw string, excludeID uuid.UUID) (domain.Availability, error)
	Rename(ctx context.Context, invitationID, ownerID uuid.UUID, requested *string) (domain.Invitation, error)
	Resolve(ctx context.Context, key string) (domain.Resolution, error)
}

// InvitationServicer defines the invitation registry operations the handlers
// depend on.
type InvitationServicer interface {
	Create(ctx context.Context, ownerID uuid.UUID) (domain.Invitation, error)
	GetByID(ctx context.Context, id, callerID uuid.UUID) (domain.Invitation, error)
	Delete(ctx context.Context, id, callerID uuid.UUID) error
}

// AliasServicer defines the alias ledger operations the handlers depend on.
type AliasServicer interface {
	List(ctx context.Context, invitationID, callerID uuid.UUID) ([]domain.SlugAlias, error)
	Delete(ctx context.Context, invitationID, aliasID, callerID uuid.UUID) error
}

// Server holds the handler dependencies. Wire it in main.go and mount
// Routes on the application router.
type Server struct {
	slugs       SlugServicer
	invitations InvitationServicer
	aliases     AliasServicer
	baseURL     string // public origin used to build canonical URLs, no trailing slash
}

// NewServer constructs the Server with all its dependencies.
func NewServer(slugs SlugServicer, invitations InvitationServicer, aliases AliasServicer, baseURL string) *Server {
	return &Server{
		slugs:       slugs,
		invitations: invitations,
		aliases:     aliases,
		baseURL:     baseURL,
	}
}

// Routes builds the API router. limitAvailability wraps only the public
// availability-check endpoint — the one surface with an admission limiter.
func (s *Server) Routes(limitAvailability func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/v1", func(r chi.Router) {
		r.With(limitAvailability).Get("/slugs/availability", s.CheckAvailability)
		r.Get("/resolve/{key}", s.Resolve)

		r.Route("/invitations", func(r chi.Router) {
			r.Post("/", s.CreateInvitation)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetInvitation)
				r.Delete("/", s.DeleteInvitation)
				r.Put("/slug", s.RenameSlug)
				r.Get("/aliases", s.ListAliases)
				r.Delete("/aliases/{aliasId}", s.DeleteAlias)
			})
		})
	})

	return r
}

// principal extracts the authenticated caller injected by the upstream auth
// gateway as X-User-ID. Authentication itself happens outside this service;
// here an absent or malformed header is simply an unauthenticated request.
func principal(r *http.Request) (uuid.UUID, error) {
	v := r.Header.Get("X-User-ID")
	if v == "" {
		return uuid.Nil, domain.ErrUnauthorized
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}

// pathID parses the {id} URL parameter as an invitation identifier.
func pathID(r *http.Request, param string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, param))
}

// canonicalURL builds the externally visible URL for an invitation.
func (s *Server) canonicalURL(inv domain.Invitation) string {
	return s.baseURL + inv.CanonicalPath()
}
