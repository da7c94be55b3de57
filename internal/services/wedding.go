package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"weddingstudio/internal/domain"
)

type weddingService struct {
	weddingRepo    domain.WeddingRepository
	permissions    domain.PermissionChecker
	contextTimeout time.Duration
}

// NewWeddingService creates the wedding lifecycle service.
func NewWeddingService(weddingRepo domain.WeddingRepository, permissions domain.PermissionChecker, timeout time.Duration) domain.WeddingService {
	return &weddingService{
		weddingRepo:    weddingRepo,
		permissions:    permissions,
		contextTimeout: timeout,
	}
}

// newUniqueURL generates the public slug for a wedding site. The slug is
// immutable after creation.
func newUniqueURL() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func (s *weddingService) CreateWedding(ctx context.Context, principal domain.Principal, w *domain.Wedding) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Restricted helper accounts cannot create weddings of their own.
	if principal.Role == domain.RoleGuestManager {
		return domain.ErrForbidden
	}
	w.Bride = strings.TrimSpace(w.Bride)
	w.Groom = strings.TrimSpace(w.Groom)
	if w.Bride == "" || w.Groom == "" || w.WeddingDate.IsZero() {
		return domain.ErrInvalidInput
	}
	if w.Template == "" {
		w.Template = "garden-romance"
	}
	if w.PrimaryColor == "" {
		w.PrimaryColor = "#D4B08C"
	}
	if w.AccentColor == "" {
		w.AccentColor = "#89916B"
	}

	w.UserID = principal.UserID
	w.UniqueURL = newUniqueURL()
	w.CreatedAt = time.Now()
	if err := s.weddingRepo.Create(ctx, w); err != nil {
		return fmt.Errorf("create wedding: %w", err)
	}
	return nil
}

func (s *weddingService) GetWeddingByURL(ctx context.Context, uniqueURL string) (*domain.Wedding, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	wedding, err := s.weddingRepo.GetByUniqueURL(ctx, uniqueURL)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get wedding by url: %w", err)
	}
	if !wedding.IsPublic {
		return nil, domain.ErrNotFound
	}
	return wedding, nil
}

func (s *weddingService) ListMyWeddings(ctx context.Context, principal domain.Principal) ([]*domain.Wedding, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	weddings, err := s.weddingRepo.ListByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("list weddings: %w", err)
	}
	if weddings == nil {
		weddings = []*domain.Wedding{}
	}
	return weddings, nil
}

func (s *weddingService) UpdateWedding(ctx context.Context, principal domain.Principal, weddingID string, upd domain.WeddingUpdate) (*domain.Wedding, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ok, err := s.permissions.CheckPermission(ctx, principal, weddingID, domain.CapEditDetails)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	updated, err := s.weddingRepo.Update(ctx, weddingID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update wedding: %w", err)
	}
	return updated, nil
}

// DeleteWedding removes the wedding and everything under it. Only the owner or
// an admin may delete; the repository runs the cascade in one transaction so a
// crash mid-delete cannot leave orphaned child rows.
func (s *weddingService) DeleteWedding(ctx context.Context, principal domain.Principal, weddingID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	wedding, err := s.weddingRepo.GetByID(ctx, weddingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get wedding: %w", err)
	}
	isOwner := wedding.UserID == principal.UserID && principal.Role != domain.RoleGuestManager
	if !principal.IsAdmin && !isOwner {
		return domain.ErrForbidden
	}
	if err := s.weddingRepo.DeleteCascade(ctx, weddingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete wedding: %w", err)
	}
	return nil
}
