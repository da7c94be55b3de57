package domain

import (
	"context"
	"time"
)

// GuestBookEntry is a public well-wishing message left on the wedding site.
// swagger:model GuestBookEntry
type GuestBookEntry struct {
	ID        string    `json:"id"`
	WeddingID string    `json:"wedding_id"`
	GuestName string    `json:"guest_name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// GuestBookRepository defines storage operations for guest book entries.
type GuestBookRepository interface {
	Create(ctx context.Context, e *GuestBookEntry) error
	ListByWeddingID(ctx context.Context, weddingID string) ([]*GuestBookEntry, error)
	CountByWeddingID(ctx context.Context, weddingID string) (int, error)
}

// GuestBookService defines guest book operations. Signing is public, like
// RSVP submission: knowing the wedding's URL is the only credential.
type GuestBookService interface {
	SignGuestBook(ctx context.Context, uniqueURL string, e *GuestBookEntry) (*GuestBookEntry, error)
	ListEntries(ctx context.Context, uniqueURL string) ([]*GuestBookEntry, error)
}
