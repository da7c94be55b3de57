package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weddingstudio/internal/domain"
)

const accessColumns = `a.id, a.user_id, a.wedding_id, a.can_edit_guests, a.can_view_guests,
		a.can_edit_details, a.can_view_photos, a.can_manage_photos, a.can_view_analytics, a.created_at`

type weddingAccessRepository struct {
	DB *sql.DB
}

func NewWeddingAccessRepository(db *sql.DB) domain.WeddingAccessRepository {
	return &weddingAccessRepository{
		DB: db,
	}
}

func (r *weddingAccessRepository) Create(ctx context.Context, a *domain.WeddingAccess) error {
	query := `
		INSERT INTO wedding_access (user_id, wedding_id, can_edit_guests, can_view_guests,
			can_edit_details, can_view_photos, can_manage_photos, can_view_analytics, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	p := a.Permissions
	return r.DB.QueryRowContext(ctx, query,
		a.UserID, a.WeddingID, p.CanEditGuests, p.CanViewGuests,
		p.CanEditDetails, p.CanViewPhotos, p.CanManagePhotos, p.CanViewAnalytics, a.CreatedAt,
	).Scan(&a.ID)
}

func scanAccess(row interface{ Scan(...any) error }) (*domain.WeddingAccess, error) {
	a := &domain.WeddingAccess{}
	err := row.Scan(
		&a.ID, &a.UserID, &a.WeddingID, &a.Permissions.CanEditGuests, &a.Permissions.CanViewGuests,
		&a.Permissions.CanEditDetails, &a.Permissions.CanViewPhotos, &a.Permissions.CanManagePhotos,
		&a.Permissions.CanViewAnalytics, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *weddingAccessRepository) Update(ctx context.Context, userID, weddingID string, perms domain.Permissions) (*domain.WeddingAccess, error) {
	query := `
		UPDATE wedding_access a
		SET can_edit_guests = $3, can_view_guests = $4, can_edit_details = $5,
			can_view_photos = $6, can_manage_photos = $7, can_view_analytics = $8
		WHERE a.user_id = $1 AND a.wedding_id = $2
		RETURNING ` + accessColumns
	return scanAccess(r.DB.QueryRowContext(ctx, query,
		userID, weddingID, perms.CanEditGuests, perms.CanViewGuests, perms.CanEditDetails,
		perms.CanViewPhotos, perms.CanManagePhotos, perms.CanViewAnalytics,
	))
}

// GetActive returns the grant only when its owning collaborator (matched by
// the user's email on the same wedding) is not revoked. A grant with no
// collaborator row, e.g. one assigned directly by an admin, counts as active.
func (r *weddingAccessRepository) GetActive(ctx context.Context, userID, weddingID string) (*domain.WeddingAccess, error) {
	query := `
		SELECT ` + accessColumns + `
		FROM wedding_access a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN guest_collaborators gc
			ON gc.wedding_id = a.wedding_id AND gc.email = u.email
		WHERE a.user_id = $1 AND a.wedding_id = $2
		  AND (gc.status IS NULL OR gc.status != 'revoked')
	`
	return scanAccess(r.DB.QueryRowContext(ctx, query, userID, weddingID))
}

func (r *weddingAccessRepository) ListByWeddingID(ctx context.Context, weddingID string) ([]*domain.WeddingAccess, error) {
	query := `
		SELECT ` + accessColumns + `
		FROM wedding_access a
		WHERE a.wedding_id = $1
		ORDER BY a.created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, weddingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	grants := make([]*domain.WeddingAccess, 0)
	for rows.Next() {
		a, err := scanAccess(rows)
		if err != nil {
			return nil, err
		}
		grants = append(grants, a)
	}
	return grants, rows.Err()
}
