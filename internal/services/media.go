package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"weddingstudio/internal/domain"
)

type photoService struct {
	photoRepo      domain.PhotoRepository
	permissions    domain.PermissionChecker
	contextTimeout time.Duration
}

// NewPhotoService creates the photo row lifecycle service. File storage itself
// lives behind the URL; only rows are managed here.
func NewPhotoService(photoRepo domain.PhotoRepository, permissions domain.PermissionChecker, timeout time.Duration) domain.PhotoService {
	return &photoService{
		photoRepo:      photoRepo,
		permissions:    permissions,
		contextTimeout: timeout,
	}
}

func (s *photoService) AddPhoto(ctx context.Context, principal domain.Principal, p *domain.Photo) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if p.WeddingID == "" || strings.TrimSpace(p.URL) == "" {
		return domain.ErrInvalidInput
	}
	ok, err := s.permissions.CheckPermission(ctx, principal, p.WeddingID, domain.CapManagePhotos)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	p.UploadedAt = time.Now()
	if err := s.photoRepo.Create(ctx, p); err != nil {
		return fmt.Errorf("create photo: %w", err)
	}
	return nil
}

func (s *photoService) ListPhotos(ctx context.Context, principal domain.Principal, weddingID string) ([]*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ok, err := s.permissions.CheckPermission(ctx, principal, weddingID, domain.CapViewPhotos)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	photos, err := s.photoRepo.ListByWeddingID(ctx, weddingID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	if photos == nil {
		photos = []*domain.Photo{}
	}
	return photos, nil
}

func (s *photoService) DeletePhoto(ctx context.Context, principal domain.Principal, photoID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get photo: %w", err)
	}
	ok, err := s.permissions.CheckPermission(ctx, principal, photo.WeddingID, domain.CapManagePhotos)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	if err := s.photoRepo.Delete(ctx, photoID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}

type guestBookService struct {
	guestBookRepo  domain.GuestBookRepository
	weddingRepo    domain.WeddingRepository
	contextTimeout time.Duration
}

// NewGuestBookService creates the public guest book service.
func NewGuestBookService(guestBookRepo domain.GuestBookRepository, weddingRepo domain.WeddingRepository, timeout time.Duration) domain.GuestBookService {
	return &guestBookService{
		guestBookRepo:  guestBookRepo,
		weddingRepo:    weddingRepo,
		contextTimeout: timeout,
	}
}

func (s *guestBookService) resolveWedding(ctx context.Context, uniqueURL string) (*domain.Wedding, error) {
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

func (s *guestBookService) SignGuestBook(ctx context.Context, uniqueURL string, e *domain.GuestBookEntry) (*domain.GuestBookEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	wedding, err := s.resolveWedding(ctx, uniqueURL)
	if err != nil {
		return nil, err
	}
	e.GuestName = strings.TrimSpace(e.GuestName)
	e.Message = strings.TrimSpace(e.Message)
	if e.GuestName == "" || e.Message == "" {
		return nil, domain.ErrInvalidInput
	}
	e.WeddingID = wedding.ID
	e.CreatedAt = time.Now()
	if err := s.guestBookRepo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create guest book entry: %w", err)
	}
	return e, nil
}

func (s *guestBookService) ListEntries(ctx context.Context, uniqueURL string) ([]*domain.GuestBookEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	wedding, err := s.resolveWedding(ctx, uniqueURL)
	if err != nil {
		return nil, err
	}
	entries, err := s.guestBookRepo.ListByWeddingID(ctx, wedding.ID)
	if err != nil {
		return nil, fmt.Errorf("list guest book entries: %w", err)
	}
	if entries == nil {
		entries = []*domain.GuestBookEntry{}
	}
	return entries, nil
}
