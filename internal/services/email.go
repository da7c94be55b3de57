package services

import (
	"context"
	"fmt"
	"log"

	"weddingstudio/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendGuestInvitation sends the wedding invitation email using the "invitation" template.
func (s *emailService) SendGuestInvitation(ctx context.Context, data *domain.GuestInvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("invitation email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("invitation", data)
	if err != nil {
		return fmt.Errorf("failed to render invitation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	log.Printf("[EMAIL] Invitation sent to %s", data.Email)
	return nil
}

// SendRSVPReminder sends the RSVP reminder email using the "reminder" template.
func (s *emailService) SendRSVPReminder(ctx context.Context, data *domain.RSVPReminderEmailData) error {
	if data == nil {
		return fmt.Errorf("reminder email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("reminder", data)
	if err != nil {
		return fmt.Errorf("failed to render reminder template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	log.Printf("[EMAIL] RSVP reminder sent to %s", data.Email)
	return nil
}

// SendCollaboratorInvite sends the helper invitation email using the "collaborator_invite" template.
func (s *emailService) SendCollaboratorInvite(ctx context.Context, data *domain.CollaboratorInviteEmailData) error {
	if data == nil {
		return fmt.Errorf("collaborator invite data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("collaborator_invite", data)
	if err != nil {
		return fmt.Errorf("failed to render collaborator_invite template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send collaborator invite email: %w", err)
	}
	log.Printf("[EMAIL] Collaborator invite sent to %s", data.Email)
	return nil
}
