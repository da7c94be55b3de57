package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// GuestInvitationEmailData holds data for the invitation email sent to a guest.
type GuestInvitationEmailData struct {
	Email      string
	GuestName  string
	Bride      string
	Groom      string
	WeddingURL string
}

// RSVPReminderEmailData holds data for the RSVP reminder email.
type RSVPReminderEmailData struct {
	Email       string
	GuestName   string
	Bride       string
	Groom       string
	WeddingURL  string
	WeddingDate string
}

// CollaboratorInviteEmailData holds data for the helper invitation email.
type CollaboratorInviteEmailData struct {
	Email     string
	Name      string
	Bride     string
	Groom     string
	OwnerName string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendGuestInvitation(ctx context.Context, data *GuestInvitationEmailData) error
	SendRSVPReminder(ctx context.Context, data *RSVPReminderEmailData) error
	SendCollaboratorInvite(ctx context.Context, data *CollaboratorInviteEmailData) error
}
