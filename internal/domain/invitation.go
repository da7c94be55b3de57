package domain

import (
	"context"
	"time"
)

// Invitation delivery statuses. The happy path is forward-only
// (pending -> sent -> delivered -> opened); failed is reachable from
// pending or sent.
const (
	InvitationPending   = "pending"
	InvitationSent      = "sent"
	InvitationDelivered = "delivered"
	InvitationOpened    = "opened"
	InvitationFailed    = "failed"
)

// ValidInvitationStatus reports whether s is one of the known delivery statuses.
func ValidInvitationStatus(s string) bool {
	switch s {
	case InvitationPending, InvitationSent, InvitationDelivered, InvitationOpened, InvitationFailed:
		return true
	}
	return false
}

// Invitation tracks one delivery attempt for one guest. SentAt, DeliveredAt,
// and OpenedAt are set exactly once, the first time that status is reached;
// ReminderSentAt is overwritten on every reminder so only the most recent one
// is retained. Retries create a new row rather than rewinding this one.
// swagger:model Invitation
type Invitation struct {
	ID             string     `json:"id"`
	WeddingID      string     `json:"wedding_id"`
	GuestID        string     `json:"guest_id"`
	Status         string     `json:"status"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	OpenedAt       *time.Time `json:"opened_at,omitempty"`
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`
	ErrorMessage   *string    `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// InvitationRepository defines storage operations for invitations.
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id string) (*Invitation, error)
	ListByWeddingID(ctx context.Context, weddingID string) ([]*Invitation, error)
	ListByGuestID(ctx context.Context, guestID string) ([]*Invitation, error)
	// SetStatus updates the status, stamps the matching timestamp only when
	// it is still unset, and records errorMessage when present.
	SetStatus(ctx context.Context, id, status string, errorMessage *string, now time.Time) (*Invitation, error)
	// SetReminderSentAt overwrites the reminder timestamp.
	SetReminderSentAt(ctx context.Context, id string, at time.Time) error
}

// InvitationService defines the delivery/engagement tracker. Delivery itself is
// performed by an external collaborator; MarkDelivered/MarkOpened/MarkFailed
// record events that collaborator reports back.
type InvitationService interface {
	SendInvitation(ctx context.Context, principal Principal, weddingID, guestID string) (*Invitation, error)
	ListInvitations(ctx context.Context, principal Principal, weddingID string) ([]*Invitation, error)
	// ListGuestInvitations is the guest's delivery history: one row per
	// attempt, since retries create new rows.
	ListGuestInvitations(ctx context.Context, principal Principal, weddingID, guestID string) ([]*Invitation, error)
	MarkDelivered(ctx context.Context, invitationID string) (*Invitation, error)
	MarkOpened(ctx context.Context, invitationID string) (*Invitation, error)
	MarkFailed(ctx context.Context, invitationID, errorMessage string) (*Invitation, error)
	SendReminder(ctx context.Context, principal Principal, invitationID string) error
}
