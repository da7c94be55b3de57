package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"weddingstudio/internal/domain"
)

type accessService struct {
	domain.PermissionChecker

	accessRepo       domain.WeddingAccessRepository
	collaboratorRepo domain.CollaboratorRepository
	weddingRepo      domain.WeddingRepository
	userRepo         domain.UserRepository
	emailService     domain.EmailService
	contextTimeout   time.Duration
}

// NewAccessService creates the access grant store and collaborator lifecycle
// service. The embedded PermissionChecker answers CheckPermission.
func NewAccessService(checker domain.PermissionChecker,
	accessRepo domain.WeddingAccessRepository,
	collaboratorRepo domain.CollaboratorRepository,
	weddingRepo domain.WeddingRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.AccessService {
	return &accessService{
		PermissionChecker: checker,
		accessRepo:        accessRepo,
		collaboratorRepo:  collaboratorRepo,
		weddingRepo:       weddingRepo,
		userRepo:          userRepo,
		emailService:      emailService,
		contextTimeout:    timeout,
	}
}

// requireOwnerOrAdmin allows only the wedding owner (with a non-restricted
// role) or a platform admin to manage grants and collaborators.
func (s *accessService) requireOwnerOrAdmin(ctx context.Context, principal domain.Principal, weddingID string) error {
	if principal.IsAdmin {
		return nil
	}
	wedding, err := s.weddingRepo.GetByID(ctx, weddingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get wedding: %w", err)
	}
	if wedding.UserID != principal.UserID || principal.Role == domain.RoleGuestManager {
		return domain.ErrForbidden
	}
	return nil
}

func (s *accessService) GrantAccess(ctx context.Context, principal domain.Principal, userID, weddingID string, perms domain.Permissions) (*domain.WeddingAccess, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireOwnerOrAdmin(ctx, principal, weddingID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	access := &domain.WeddingAccess{
		UserID:      userID,
		WeddingID:   weddingID,
		Permissions: perms,
		CreatedAt:   time.Now(),
	}
	if err := s.accessRepo.Create(ctx, access); err != nil {
		return nil, fmt.Errorf("create wedding access: %w", err)
	}
	return access, nil
}

func (s *accessService) UpdateAccess(ctx context.Context, principal domain.Principal, userID, weddingID string, perms domain.Permissions) (*domain.WeddingAccess, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireOwnerOrAdmin(ctx, principal, weddingID); err != nil {
		return nil, err
	}
	updated, err := s.accessRepo.Update(ctx, userID, weddingID, perms)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update wedding access: %w", err)
	}
	return updated, nil
}

// RevokeAccess flips the collaborator behind the grant to revoked. The
// WeddingAccess row itself is kept for audit; the resolver's read path filters
// revoked collaborators out. A grant with no collaborator behind it (assigned
// directly, never invited) gets a collaborator row created already revoked so
// the same read path blocks it.
func (s *accessService) RevokeAccess(ctx context.Context, principal domain.Principal, userID, weddingID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireOwnerOrAdmin(ctx, principal, weddingID); err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	collab, err := s.collaboratorRepo.GetByEmailAndWedding(ctx, user.Email, weddingID)
	switch {
	case err == nil:
		if _, err := s.collaboratorRepo.SetStatus(ctx, collab.ID, domain.CollaboratorRevoked, nil, nil); err != nil {
			return fmt.Errorf("revoke collaborator: %w", err)
		}
	case errors.Is(err, domain.ErrNotFound):
		tombstone := &domain.GuestCollaborator{
			WeddingID: weddingID,
			Email:     strings.ToLower(user.Email),
			Name:      user.Name,
			Status:    domain.CollaboratorRevoked,
			InvitedAt: time.Now(),
		}
		if err := s.collaboratorRepo.Create(ctx, tombstone); err != nil {
			return fmt.Errorf("create revoked collaborator: %w", err)
		}
	default:
		return fmt.Errorf("get collaborator: %w", err)
	}
	return nil
}

func (s *accessService) InviteCollaborator(ctx context.Context, principal domain.Principal, weddingID, email, name string) (*domain.GuestCollaborator, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.requireOwnerOrAdmin(ctx, principal, weddingID); err != nil {
		return nil, err
	}
	wedding, err := s.weddingRepo.GetByID(ctx, weddingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get wedding: %w", err)
	}

	collab := &domain.GuestCollaborator{
		WeddingID: weddingID,
		Email:     email,
		Name:      strings.TrimSpace(name),
		Status:    domain.CollaboratorInvited,
		InvitedAt: time.Now(),
	}
	if err := s.collaboratorRepo.Create(ctx, collab); err != nil {
		if errors.Is(err, domain.ErrCollaboratorExists) {
			return nil, domain.ErrCollaboratorExists
		}
		return nil, fmt.Errorf("create collaborator: %w", err)
	}

	ownerName := ""
	if owner, err := s.userRepo.GetByID(ctx, wedding.UserID); err == nil && owner != nil {
		ownerName = owner.Name
	}
	data := &domain.CollaboratorInviteEmailData{
		Email:     email,
		Name:      collab.Name,
		Bride:     wedding.Bride,
		Groom:     wedding.Groom,
		OwnerName: ownerName,
	}
	// The invite email is best effort; the collaborator row is the source of
	// truth and the invite can be re-sent.
	_ = s.emailService.SendCollaboratorInvite(ctx, data)

	return collab, nil
}

func (s *accessService) ListCollaborators(ctx context.Context, principal domain.Principal, weddingID string) ([]*domain.GuestCollaborator, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireOwnerOrAdmin(ctx, principal, weddingID); err != nil {
		return nil, err
	}
	collabs, err := s.collaboratorRepo.ListByWeddingID(ctx, weddingID)
	if err != nil {
		return nil, fmt.Errorf("list collaborators: %w", err)
	}
	if collabs == nil {
		collabs = []*domain.GuestCollaborator{}
	}
	return collabs, nil
}

// AcceptCollaboratorInvite is the only invited -> active transition. Calling
// it for an already-active collaborator is not an error; it refreshes
// last_active_at and returns the existing row. Revoked invites cannot be
// accepted.
func (s *accessService) AcceptCollaboratorInvite(ctx context.Context, email, weddingID string) (*domain.GuestCollaborator, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	collab, err := s.collaboratorRepo.GetByEmailAndWedding(ctx, email, weddingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get collaborator: %w", err)
	}

	now := time.Now()
	switch collab.Status {
	case domain.CollaboratorActive:
		if err := s.collaboratorRepo.Touch(ctx, collab.ID, now); err != nil {
			return nil, fmt.Errorf("touch collaborator: %w", err)
		}
		collab.LastActiveAt = &now
		return collab, nil
	case domain.CollaboratorInvited:
		updated, err := s.collaboratorRepo.SetStatus(ctx, collab.ID, domain.CollaboratorActive, &now, &now)
		if err != nil {
			return nil, fmt.Errorf("activate collaborator: %w", err)
		}
		return updated, nil
	default:
		return nil, domain.ErrForbidden
	}
}
