package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"weddingstudio/internal/domain"
)

type permissionService struct {
	weddingRepo    domain.WeddingRepository
	accessRepo     domain.WeddingAccessRepository
	contextTimeout time.Duration
}

// NewPermissionService returns the permission resolver. Resolution order:
// platform admin, then wedding owner (unless the account role is
// guest_manager), then the active access grant for (user, wedding).
func NewPermissionService(weddingRepo domain.WeddingRepository, accessRepo domain.WeddingAccessRepository, timeout time.Duration) domain.PermissionChecker {
	return &permissionService{
		weddingRepo:    weddingRepo,
		accessRepo:     accessRepo,
		contextTimeout: timeout,
	}
}

func (s *permissionService) CheckPermission(ctx context.Context, principal domain.Principal, weddingID, capability string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if principal.IsAdmin {
		return true, nil
	}

	wedding, err := s.weddingRepo.GetByID(ctx, weddingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get wedding: %w", err)
	}

	// A guest_manager account is never treated as an owner, even when it
	// holds the user_id that created the wedding.
	if wedding.UserID == principal.UserID && principal.Role != domain.RoleGuestManager {
		return true, nil
	}

	access, err := s.accessRepo.GetActive(ctx, principal.UserID, weddingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get wedding access: %w", err)
	}
	return access.Permissions.Allows(capability), nil
}
