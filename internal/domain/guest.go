package domain

import (
	"context"
	"time"
)

// RSVP statuses. Any status may transition to any other, including back to
// pending; there is no forbidden transition.
const (
	RSVPPending   = "pending"
	RSVPConfirmed = "confirmed"
	RSVPDeclined  = "declined"
	RSVPMaybe     = "maybe"
)

// ValidRSVPStatus reports whether s is one of the known RSVP statuses.
func ValidRSVPStatus(s string) bool {
	switch s {
	case RSVPPending, RSVPConfirmed, RSVPDeclined, RSVPMaybe:
		return true
	}
	return false
}

// Guest represents an invited guest and their RSVP answer. RespondedAt records
// the moment of the most recent status transition, including transitions back
// to pending, so it reads as "last touched" rather than "last responded".
// swagger:model Guest
type Guest struct {
	ID          string     `json:"id"`
	WeddingID   string     `json:"wedding_id"`
	Name        string     `json:"name"`
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	RSVPStatus  string     `json:"rsvp_status"`
	PlusOne     bool       `json:"plus_one"`
	Category    string     `json:"category"`
	Side        string     `json:"side"`
	Message     *string    `json:"message,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

// RSVPUpdate is a single guest's status change request.
type RSVPUpdate struct {
	Status  string
	Message *string
}

// BulkRSVPOutcome reports one guest's result within a bulk update. Updates are
// independent; one failure does not roll back the others.
type BulkRSVPOutcome struct {
	GuestID string `json:"guest_id"`
	Guest   *Guest `json:"guest,omitempty"`
	Error   string `json:"error,omitempty"`
}

// GuestRepository defines the interface for guest storage.
type GuestRepository interface {
	Create(ctx context.Context, g *Guest) error
	GetByID(ctx context.Context, id string) (*Guest, error)
	ListByWeddingID(ctx context.Context, weddingID string) ([]*Guest, error)
	// Search returns one page of guests matching the (optional) name/email
	// search term, plus the total match count.
	Search(ctx context.Context, weddingID, search string, params PaginationParams) ([]*Guest, int, error)
	// UpdateRSVP applies the status change and stamps responded_at atomically.
	UpdateRSVP(ctx context.Context, id string, status string, message *string, respondedAt time.Time) (*Guest, error)
}

// GuestService defines guest registry operations.
type GuestService interface {
	CreateGuest(ctx context.Context, principal Principal, g *Guest) error
	ListGuests(ctx context.Context, principal Principal, weddingID, search string, params PaginationParams) ([]*Guest, int, error)
	// SubmitRSVP is the public self-service write path: it is authenticated
	// only by knowledge of the wedding's public URL.
	SubmitRSVP(ctx context.Context, uniqueURL string, g *Guest) (*Guest, error)
	UpdateGuestRSVP(ctx context.Context, principal Principal, guestID string, upd RSVPUpdate) (*Guest, error)
	BulkUpdateRSVP(ctx context.Context, principal Principal, guestIDs []string, status string) ([]*BulkRSVPOutcome, error)
}
