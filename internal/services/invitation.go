package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"weddingstudio/internal/domain"
)

type invitationService struct {
	invitationRepo domain.InvitationRepository
	guestRepo      domain.GuestRepository
	weddingRepo    domain.WeddingRepository
	permissions    domain.PermissionChecker
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewInvitationService creates the invitation delivery tracker.
func NewInvitationService(invitationRepo domain.InvitationRepository,
	guestRepo domain.GuestRepository,
	weddingRepo domain.WeddingRepository,
	permissions domain.PermissionChecker,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.InvitationService {
	return &invitationService{
		invitationRepo: invitationRepo,
		guestRepo:      guestRepo,
		weddingRepo:    weddingRepo,
		permissions:    permissions,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

// SendInvitation creates a new invitation row for the guest and hands the
// message to the mailer. Each attempt gets its own row; retries never rewind
// an existing invitation. A mailer failure is a recorded business event, not
// an error: the invitation lands in failed with the message stored.
func (s *invitationService) SendInvitation(ctx context.Context, principal domain.Principal, weddingID, guestID string) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ok, err := s.permissions.CheckPermission(ctx, principal, weddingID, domain.CapEditGuests)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	wedding, err := s.weddingRepo.GetByID(ctx, weddingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get wedding: %w", err)
	}
	guest, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get guest: %w", err)
	}
	if guest.WeddingID != weddingID {
		return nil, domain.ErrNotFound
	}
	if guest.Email == nil || *guest.Email == "" {
		return nil, domain.ErrInvalidInput
	}

	inv := &domain.Invitation{
		WeddingID: weddingID,
		GuestID:   guestID,
		Status:    domain.InvitationPending,
		CreatedAt: time.Now(),
	}
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	data := &domain.GuestInvitationEmailData{
		Email:      *guest.Email,
		GuestName:  guest.Name,
		Bride:      wedding.Bride,
		Groom:      wedding.Groom,
		WeddingURL: wedding.UniqueURL,
	}
	if sendErr := s.emailService.SendGuestInvitation(ctx, data); sendErr != nil {
		msg := sendErr.Error()
		failed, err := s.invitationRepo.SetStatus(ctx, inv.ID, domain.InvitationFailed, &msg, time.Now())
		if err != nil {
			return nil, fmt.Errorf("record invitation failure: %w", err)
		}
		return failed, nil
	}

	sent, err := s.invitationRepo.SetStatus(ctx, inv.ID, domain.InvitationSent, nil, time.Now())
	if err != nil {
		return nil, fmt.Errorf("mark invitation sent: %w", err)
	}
	return sent, nil
}

func (s *invitationService) ListInvitations(ctx context.Context, principal domain.Principal, weddingID string) ([]*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ok, err := s.permissions.CheckPermission(ctx, principal, weddingID, domain.CapViewGuests)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	invs, err := s.invitationRepo.ListByWeddingID(ctx, weddingID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	return invs, nil
}

// ListGuestInvitations returns every delivery attempt recorded for one guest;
// retries show up as separate rows.
func (s *invitationService) ListGuestInvitations(ctx context.Context, principal domain.Principal, weddingID, guestID string) ([]*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ok, err := s.permissions.CheckPermission(ctx, principal, weddingID, domain.CapViewGuests)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	guest, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get guest: %w", err)
	}
	if guest.WeddingID != weddingID {
		return nil, domain.ErrNotFound
	}
	invs, err := s.invitationRepo.ListByGuestID(ctx, guestID)
	if err != nil {
		return nil, fmt.Errorf("list guest invitations: %w", err)
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	return invs, nil
}

// MarkDelivered records a delivery report from the external sender.
// delivered_at is set only the first time; repeating the call leaves it at its
// first-set value.
func (s *invitationService) MarkDelivered(ctx context.Context, invitationID string) (*domain.Invitation, error) {
	return s.setStatus(ctx, invitationID, domain.InvitationDelivered, nil)
}

// MarkOpened records an open event. opened_at is write-once like delivered_at.
func (s *invitationService) MarkOpened(ctx context.Context, invitationID string) (*domain.Invitation, error) {
	return s.setStatus(ctx, invitationID, domain.InvitationOpened, nil)
}

// MarkFailed records a delivery failure with its reason. Failure is only
// reachable from pending or sent; previously-set timestamps are kept.
func (s *invitationService) MarkFailed(ctx context.Context, invitationID, errorMessage string) (*domain.Invitation, error) {
	if errorMessage == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.setStatus(ctx, invitationID, domain.InvitationFailed, &errorMessage)
}

// invitationRank orders the happy-path statuses so a late or duplicate
// callback cannot rewind a row. failed sits outside the chain and has its own
// gate.
var invitationRank = map[string]int{
	domain.InvitationPending:   0,
	domain.InvitationSent:      1,
	domain.InvitationDelivered: 2,
	domain.InvitationOpened:    3,
}

func (s *invitationService) setStatus(ctx context.Context, invitationID, status string, errorMessage *string) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	if status == domain.InvitationFailed {
		if inv.Status != domain.InvitationPending && inv.Status != domain.InvitationSent {
			return nil, domain.ErrInvalidInput
		}
	} else {
		// A failed attempt is never resurrected; retries create a new row.
		if inv.Status == domain.InvitationFailed {
			return nil, domain.ErrInvalidInput
		}
		// delivered and opened presuppose the message left: a pending row can
		// only advance to sent.
		if inv.Status == domain.InvitationPending && status != domain.InvitationSent {
			return nil, domain.ErrInvalidInput
		}
		// Out-of-order callbacks are no-ops: the row keeps its furthest state
		// and its first-set timestamps.
		if invitationRank[status] < invitationRank[inv.Status] {
			return inv, nil
		}
	}

	updated, err := s.invitationRepo.SetStatus(ctx, invitationID, status, errorMessage, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set invitation status: %w", err)
	}
	return updated, nil
}

// SendReminder stamps reminder_sent_at (latest reminder wins) and sends the
// reminder email. It does not change the invitation status.
func (s *invitationService) SendReminder(ctx context.Context, principal domain.Principal, invitationID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get invitation: %w", err)
	}

	ok, err := s.permissions.CheckPermission(ctx, principal, inv.WeddingID, domain.CapEditGuests)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}

	guest, err := s.guestRepo.GetByID(ctx, inv.GuestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get guest: %w", err)
	}
	if guest.Email == nil || *guest.Email == "" {
		return domain.ErrInvalidInput
	}
	wedding, err := s.weddingRepo.GetByID(ctx, inv.WeddingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get wedding: %w", err)
	}

	if err := s.invitationRepo.SetReminderSentAt(ctx, invitationID, time.Now()); err != nil {
		return fmt.Errorf("stamp reminder: %w", err)
	}

	data := &domain.RSVPReminderEmailData{
		Email:       *guest.Email,
		GuestName:   guest.Name,
		Bride:       wedding.Bride,
		Groom:       wedding.Groom,
		WeddingURL:  wedding.UniqueURL,
		WeddingDate: wedding.WeddingDate.Format("January 2, 2006"),
	}
	if err := s.emailService.SendRSVPReminder(ctx, data); err != nil {
		return fmt.Errorf("send reminder email: %w", err)
	}
	return nil
}
