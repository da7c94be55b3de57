package services

import (
	"context"
	"fmt"
	"time"

	"weddingstudio/internal/domain"
)

type statsService struct {
	guestRepo        domain.GuestRepository
	invitationRepo   domain.InvitationRepository
	collaboratorRepo domain.CollaboratorRepository
	photoRepo        domain.PhotoRepository
	guestBookRepo    domain.GuestBookRepository
	permissions      domain.PermissionChecker
	contextTimeout   time.Duration
}

// NewStatsService creates the stats aggregator. It folds over the current
// rows on every call; nothing is cached or incremented, so the counts can
// never drift from the source collections.
func NewStatsService(guestRepo domain.GuestRepository,
	invitationRepo domain.InvitationRepository,
	collaboratorRepo domain.CollaboratorRepository,
	photoRepo domain.PhotoRepository,
	guestBookRepo domain.GuestBookRepository,
	permissions domain.PermissionChecker,
	timeout time.Duration,
) domain.StatsService {
	return &statsService{
		guestRepo:        guestRepo,
		invitationRepo:   invitationRepo,
		collaboratorRepo: collaboratorRepo,
		photoRepo:        photoRepo,
		guestBookRepo:    guestBookRepo,
		permissions:      permissions,
		contextTimeout:   timeout,
	}
}

func (s *statsService) GetWeddingStats(ctx context.Context, principal domain.Principal, weddingID string) (*domain.WeddingStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ok, err := s.permissions.CheckPermission(ctx, principal, weddingID, domain.CapViewAnalytics)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	guests, err := s.guestRepo.ListByWeddingID(ctx, weddingID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	invitations, err := s.invitationRepo.ListByWeddingID(ctx, weddingID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	collaborators, err := s.collaboratorRepo.ListByWeddingID(ctx, weddingID)
	if err != nil {
		return nil, fmt.Errorf("list collaborators: %w", err)
	}
	photoCount, err := s.photoRepo.CountByWeddingID(ctx, weddingID)
	if err != nil {
		return nil, fmt.Errorf("count photos: %w", err)
	}
	entryCount, err := s.guestBookRepo.CountByWeddingID(ctx, weddingID)
	if err != nil {
		return nil, fmt.Errorf("count guest book entries: %w", err)
	}

	stats := &domain.WeddingStats{
		TotalGuests:      len(guests),
		TotalPhotos:      photoCount,
		GuestBookEntries: entryCount,
	}
	for _, g := range guests {
		switch g.RSVPStatus {
		case domain.RSVPConfirmed:
			stats.ConfirmedGuests++
		case domain.RSVPPending:
			stats.PendingGuests++
		case domain.RSVPDeclined:
			stats.DeclinedGuests++
		case domain.RSVPMaybe:
			stats.MaybeGuests++
		}
	}
	for _, inv := range invitations {
		switch inv.Status {
		case domain.InvitationPending:
			stats.PendingInvitations++
		case domain.InvitationSent, domain.InvitationDelivered, domain.InvitationOpened:
			stats.SentInvitations++
		}
	}
	for _, c := range collaborators {
		if c.Status == domain.CollaboratorActive {
			stats.ActiveCollaborators++
		}
	}
	return stats, nil
}
