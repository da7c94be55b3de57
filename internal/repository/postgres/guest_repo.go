package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"weddingstudio/internal/domain"
)

const guestColumns = `id, wedding_id, name, email, phone, rsvp_status, plus_one, category, side,
		message, created_at, responded_at`

type guestRepository struct {
	DB *sql.DB
}

func NewGuestRepository(db *sql.DB) domain.GuestRepository {
	return &guestRepository{
		DB: db,
	}
}

func (r *guestRepository) Create(ctx context.Context, g *domain.Guest) error {
	query := `
		INSERT INTO guests (wedding_id, name, email, phone, rsvp_status, plus_one, category, side,
			message, created_at, responded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		g.WeddingID, g.Name, g.Email, g.Phone, g.RSVPStatus, g.PlusOne, g.Category, g.Side,
		g.Message, g.CreatedAt, g.RespondedAt,
	).Scan(&g.ID)
}

func scanGuest(row interface{ Scan(...any) error }) (*domain.Guest, error) {
	g := &domain.Guest{}
	var email, phone, message sql.NullString
	var respondedAt sql.NullTime
	err := row.Scan(
		&g.ID, &g.WeddingID, &g.Name, &email, &phone, &g.RSVPStatus, &g.PlusOne, &g.Category, &g.Side,
		&message, &g.CreatedAt, &respondedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if email.Valid {
		g.Email = &email.String
	}
	if phone.Valid {
		g.Phone = &phone.String
	}
	if message.Valid {
		g.Message = &message.String
	}
	if respondedAt.Valid {
		g.RespondedAt = &respondedAt.Time
	}
	return g, nil
}

func (r *guestRepository) GetByID(ctx context.Context, id string) (*domain.Guest, error) {
	query := fmt.Sprintf(`SELECT %s FROM guests WHERE id = $1`, guestColumns)
	return scanGuest(r.DB.QueryRowContext(ctx, query, id))
}

func (r *guestRepository) ListByWeddingID(ctx context.Context, weddingID string) ([]*domain.Guest, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM guests
		WHERE wedding_id = $1
		ORDER BY created_at
	`, guestColumns)
	rows, err := r.DB.QueryContext(ctx, query, weddingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	guests := make([]*domain.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (r *guestRepository) Search(ctx context.Context, weddingID, search string, params domain.PaginationParams) ([]*domain.Guest, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM guests
		WHERE wedding_id = $1
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
	`
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, weddingID, search).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM guests
		WHERE wedding_id = $1
		  AND ($2 = '' OR name ILIKE '%%' || $2 || '%%' OR email ILIKE '%%' || $2 || '%%')
		ORDER BY name
		LIMIT $3 OFFSET $4
	`, guestColumns)
	rows, err := r.DB.QueryContext(ctx, query, weddingID, search, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	guests := make([]*domain.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, 0, err
		}
		guests = append(guests, g)
	}
	return guests, total, rows.Err()
}

// UpdateRSVP stamps responded_at on every call, repeats included. The status
// write and the timestamp write happen in one statement so a transition can
// never be half-applied.
func (r *guestRepository) UpdateRSVP(ctx context.Context, id, status string, message *string, respondedAt time.Time) (*domain.Guest, error) {
	query := fmt.Sprintf(`
		UPDATE guests
		SET rsvp_status = $2, message = COALESCE($3, message), responded_at = $4
		WHERE id = $1
		RETURNING %s
	`, guestColumns)
	return scanGuest(r.DB.QueryRowContext(ctx, query, id, status, message, respondedAt))
}
