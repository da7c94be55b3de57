package domain

import (
	"context"
	"time"
)

// Photo is one uploaded photo row for a wedding. File storage mechanics live
// outside the core; only the row lifecycle is modeled here.
// swagger:model Photo
type Photo struct {
	ID         string    `json:"id"`
	WeddingID  string    `json:"wedding_id"`
	URL        string    `json:"url"`
	Caption    *string   `json:"caption,omitempty"`
	IsHero     bool      `json:"is_hero"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// PhotoRepository defines storage operations for photos.
type PhotoRepository interface {
	Create(ctx context.Context, p *Photo) error
	GetByID(ctx context.Context, id string) (*Photo, error)
	ListByWeddingID(ctx context.Context, weddingID string) ([]*Photo, error)
	CountByWeddingID(ctx context.Context, weddingID string) (int, error)
	Delete(ctx context.Context, id string) error
}

// PhotoService defines photo row lifecycle operations.
type PhotoService interface {
	AddPhoto(ctx context.Context, principal Principal, p *Photo) error
	ListPhotos(ctx context.Context, principal Principal, weddingID string) ([]*Photo, error)
	DeletePhoto(ctx context.Context, principal Principal, photoID string) error
}
