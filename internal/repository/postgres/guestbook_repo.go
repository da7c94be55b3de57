package postgres

import (
	"context"
	"database/sql"

	"weddingstudio/internal/domain"
)

type guestBookRepository struct {
	DB *sql.DB
}

func NewGuestBookRepository(db *sql.DB) domain.GuestBookRepository {
	return &guestBookRepository{
		DB: db,
	}
}

func (r *guestBookRepository) Create(ctx context.Context, e *domain.GuestBookEntry) error {
	query := `
		INSERT INTO guest_book_entries (wedding_id, guest_name, message, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, e.WeddingID, e.GuestName, e.Message, e.CreatedAt).
		Scan(&e.ID)
}

func (r *guestBookRepository) ListByWeddingID(ctx context.Context, weddingID string) ([]*domain.GuestBookEntry, error) {
	query := `
		SELECT id, wedding_id, guest_name, message, created_at
		FROM guest_book_entries
		WHERE wedding_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, weddingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]*domain.GuestBookEntry, 0)
	for rows.Next() {
		e := &domain.GuestBookEntry{}
		if err := rows.Scan(&e.ID, &e.WeddingID, &e.GuestName, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *guestBookRepository) CountByWeddingID(ctx context.Context, weddingID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM guest_book_entries WHERE wedding_id = $1`, weddingID).
		Scan(&count)
	return count, err
}
