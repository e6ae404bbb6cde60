package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hanseo/dearday/backend/internal/domain"
	"github.com/hanseo/dearday/backend/internal/repo"
)

// InvitationService implements the registry surface for invitation records.
// Invitations start unslugged; the slug lifecycle is SlugService's job.
type InvitationService struct {
	invitations repo.InvitationRepo
}

// NewInvitationService constructs an InvitationService backed by the provided repo.
func NewInvitationService(invitations repo.InvitationRepo) *InvitationService {
	return &InvitationService{invitations: invitations}
}

// Create registers an invitation for ownerID with a null slug.
func (s *InvitationService) Create(ctx context.Context, ownerID uuid.UUID) (domain.Invitation, error) {
	inv, err := s.invitations.Create(ctx, ownerID)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("service.InvitationService.Create: %w", err)
	}
	return inv, nil
}

// GetByID returns an invitation to its owner.
func (s *InvitationService) GetByID(ctx context.Context, id, callerID uuid.UUID) (domain.Invitation, error) {
	inv, err := s.invitations.GetByID(ctx, id)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("service.InvitationService.GetByID: %w", err)
	}
	if inv.OwnerID != callerID {
		return domain.Invitation{}, fmt.Errorf("service.InvitationService.GetByID: %w", domain.ErrForbidden)
	}
	return inv, nil
}

// Delete removes an invitation and, via the owned lifecycle, all its aliases.
func (s *InvitationService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	inv, err := s.invitations.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.InvitationService.Delete: %w", err)
	}
	if inv.OwnerID != callerID {
		return fmt.Errorf("service.InvitationService.Delete: %w", domain.ErrForbidden)
	}
	if err := s.invitations.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.InvitationService.Delete: %w", err)
	}
	return nil
}
