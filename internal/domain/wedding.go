package domain

import (
	"context"
	"time"
)

// Wedding represents a published wedding website. It is owned exclusively by
// one user (the creator); ownership never transfers. UniqueURL is the public
// slug and is immutable after creation.
// swagger:model Wedding
type Wedding struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Bride        string    `json:"bride"`
	Groom        string    `json:"groom"`
	WeddingDate  time.Time `json:"wedding_date"`
	Venue        string    `json:"venue"`
	VenueAddress string    `json:"venue_address"`
	Story        string    `json:"story"`
	Template     string    `json:"template"`
	PrimaryColor string    `json:"primary_color"`
	AccentColor  string    `json:"accent_color"`
	UniqueURL    string    `json:"unique_url"`
	IsPublic     bool      `json:"is_public"`
	CreatedAt    time.Time `json:"created_at"`
}

// WeddingUpdate holds the mutable wedding fields. Nil means "leave unchanged".
// UniqueURL and UserID are deliberately absent.
type WeddingUpdate struct {
	WeddingDate  *time.Time
	Venue        *string
	VenueAddress *string
	Story        *string
	Template     *string
	PrimaryColor *string
	AccentColor  *string
	IsPublic     *bool
}

// WeddingRepository defines the interface for wedding storage.
type WeddingRepository interface {
	Create(ctx context.Context, w *Wedding) error
	GetByID(ctx context.Context, id string) (*Wedding, error)
	GetByUniqueURL(ctx context.Context, uniqueURL string) (*Wedding, error)
	ListByUserID(ctx context.Context, userID string) ([]*Wedding, error)
	Update(ctx context.Context, id string, upd WeddingUpdate) (*Wedding, error)
	// DeleteCascade removes the wedding and all of its child rows (guests,
	// invitations, collaborators, access grants, photos, guest book entries)
	// in a single transaction, children before the wedding row.
	DeleteCascade(ctx context.Context, id string) error
}

// WeddingService defines wedding lifecycle operations.
type WeddingService interface {
	CreateWedding(ctx context.Context, principal Principal, w *Wedding) error
	GetWeddingByURL(ctx context.Context, uniqueURL string) (*Wedding, error)
	ListMyWeddings(ctx context.Context, principal Principal) ([]*Wedding, error)
	UpdateWedding(ctx context.Context, principal Principal, weddingID string, upd WeddingUpdate) (*Wedding, error)
	DeleteWedding(ctx context.Context, principal Principal, weddingID string) error
}
