package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"weddingstudio/internal/domain"
)

type guestService struct {
	guestRepo      domain.GuestRepository
	weddingRepo    domain.WeddingRepository
	permissions    domain.PermissionChecker
	contextTimeout time.Duration
}

// NewGuestService creates the guest registry service.
func NewGuestService(guestRepo domain.GuestRepository,
	weddingRepo domain.WeddingRepository,
	permissions domain.PermissionChecker,
	timeout time.Duration,
) domain.GuestService {
	return &guestService{
		guestRepo:      guestRepo,
		weddingRepo:    weddingRepo,
		permissions:    permissions,
		contextTimeout: timeout,
	}
}

func (s *guestService) CreateGuest(ctx context.Context, principal domain.Principal, g *domain.Guest) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" || g.WeddingID == "" {
		return domain.ErrInvalidInput
	}
	if g.RSVPStatus == "" {
		g.RSVPStatus = domain.RSVPPending
	}
	if !domain.ValidRSVPStatus(g.RSVPStatus) {
		return domain.ErrInvalidInput
	}

	ok, err := s.permissions.CheckPermission(ctx, principal, g.WeddingID, domain.CapEditGuests)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}

	g.CreatedAt = time.Now()
	g.RespondedAt = nil
	if err := s.guestRepo.Create(ctx, g); err != nil {
		return fmt.Errorf("create guest: %w", err)
	}
	return nil
}

func (s *guestService) ListGuests(ctx context.Context, principal domain.Principal, weddingID, search string, params domain.PaginationParams) ([]*domain.Guest, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ok, err := s.permissions.CheckPermission(ctx, principal, weddingID, domain.CapViewGuests)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, domain.ErrForbidden
	}
	guests, total, err := s.guestRepo.Search(ctx, weddingID, search, params)
	if err != nil {
		return nil, 0, fmt.Errorf("search guests: %w", err)
	}
	if guests == nil {
		guests = []*domain.Guest{}
	}
	return guests, total, nil
}

// SubmitRSVP is the public write path: no principal, authenticated only by
// knowledge of the wedding's public URL. The submitter's asserted status is
// stored as-is.
func (s *guestService) SubmitRSVP(ctx context.Context, uniqueURL string, g *domain.Guest) (*domain.Guest, error) {
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

	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if g.RSVPStatus == "" {
		g.RSVPStatus = domain.RSVPPending
	}
	if !domain.ValidRSVPStatus(g.RSVPStatus) {
		return nil, domain.ErrInvalidInput
	}

	g.WeddingID = wedding.ID
	g.CreatedAt = time.Now()
	if g.RSVPStatus != domain.RSVPPending {
		now := g.CreatedAt
		g.RespondedAt = &now
	}
	if err := s.guestRepo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("create guest: %w", err)
	}
	return g, nil
}

func (s *guestService) UpdateGuestRSVP(ctx context.Context, principal domain.Principal, guestID string, upd domain.RSVPUpdate) (*domain.Guest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.ValidRSVPStatus(upd.Status) {
		return nil, domain.ErrInvalidInput
	}

	guest, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get guest: %w", err)
	}

	ok, err := s.permissions.CheckPermission(ctx, principal, guest.WeddingID, domain.CapEditGuests)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	// responded_at is stamped on every transition, including repeats of the
	// same status and transitions back to pending.
	updated, err := s.guestRepo.UpdateRSVP(ctx, guestID, upd.Status, upd.Message, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update rsvp: %w", err)
	}
	return updated, nil
}

// BulkUpdateRSVP applies the status to each guest independently. A failing
// guest does not abort or roll back the others; the outcome slice reports
// every guest, successes and failures alike.
func (s *guestService) BulkUpdateRSVP(ctx context.Context, principal domain.Principal, guestIDs []string, status string) ([]*domain.BulkRSVPOutcome, error) {
	if !domain.ValidRSVPStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	outcomes := make([]*domain.BulkRSVPOutcome, 0, len(guestIDs))
	for _, id := range guestIDs {
		guest, err := s.UpdateGuestRSVP(ctx, principal, id, domain.RSVPUpdate{Status: status})
		if err != nil {
			outcomes = append(outcomes, &domain.BulkRSVPOutcome{GuestID: id, Error: err.Error()})
			continue
		}
		outcomes = append(outcomes, &domain.BulkRSVPOutcome{GuestID: id, Guest: guest})
	}
	return outcomes, nil
}
