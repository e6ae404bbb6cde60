package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hanseo/dearday/backend/internal/domain"
	"github.com/hanseo/dearday/backend/internal/repo"
)

// AliasService exposes an invitation's alias ledger to its owner: listing it
// (how clients tell "available" apart from "available via reclaim") and
// deleting entries, which is the remediation when the ledger is full.
type AliasService struct {
	invitations repo.InvitationRepo
	aliases     repo.AliasRepo
}

// NewAliasService constructs an AliasService from its repo dependencies.
func NewAliasService(invitations repo.InvitationRepo, aliases repo.AliasRepo) *AliasService {
	return &AliasService{invitations: invitations, aliases: aliases}
}

// List returns an invitation's aliases, newest first, to its owner.
func (s *AliasService) List(ctx context.Context, invitationID, callerID uuid.UUID) ([]domain.SlugAlias, error) {
	if err := s.authorize(ctx, invitationID, callerID); err != nil {
		return nil, fmt.Errorf("service.AliasService.List: %w", err)
	}
	aliases, err := s.aliases.ListByInvitation(ctx, invitationID)
	if err != nil {
		return nil, fmt.Errorf("service.AliasService.List: %w", err)
	}
	return aliases, nil
}

// Delete removes one alias from an invitation's ledger. The retired slug
// stops redirecting and becomes claimable by anyone.
func (s *AliasService) Delete(ctx context.Context, invitationID, aliasID, callerID uuid.UUID) error {
	if err := s.authorize(ctx, invitationID, callerID); err != nil {
		return fmt.Errorf("service.AliasService.Delete: %w", err)
	}
	if err := s.aliases.DeleteByID(ctx, invitationID, aliasID); err != nil {
		return fmt.Errorf("service.AliasService.Delete: %w", err)
	}
	return nil
}

func (s *AliasService) authorize(ctx context.Context, invitationID, callerID uuid.UUID) error {
	inv, err := s.invitations.GetByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if inv.OwnerID != callerID {
		return domain.ErrForbidden
	}
	return nil
}
