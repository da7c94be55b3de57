package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"weddingstudio/internal/domain"
)

const weddingColumns = `id, user_id, bride, groom, wedding_date, venue, venue_address, story,
		template, primary_color, accent_color, unique_url, is_public, created_at`

type weddingRepository struct {
	DB *sql.DB
}

func NewWeddingRepository(db *sql.DB) domain.WeddingRepository {
	return &weddingRepository{
		DB: db,
	}
}

func (r *weddingRepository) Create(ctx context.Context, w *domain.Wedding) error {
	query := `
		INSERT INTO weddings (user_id, bride, groom, wedding_date, venue, venue_address, story,
			template, primary_color, accent_color, unique_url, is_public, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		w.UserID, w.Bride, w.Groom, w.WeddingDate, w.Venue, w.VenueAddress, w.Story,
		w.Template, w.PrimaryColor, w.AccentColor, w.UniqueURL, w.IsPublic, w.CreatedAt,
	).Scan(&w.ID)
}

func scanWedding(row interface{ Scan(...any) error }) (*domain.Wedding, error) {
	w := &domain.Wedding{}
	var story sql.NullString
	err := row.Scan(
		&w.ID, &w.UserID, &w.Bride, &w.Groom, &w.WeddingDate, &w.Venue, &w.VenueAddress, &story,
		&w.Template, &w.PrimaryColor, &w.AccentColor, &w.UniqueURL, &w.IsPublic, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	w.Story = story.String
	return w, nil
}

func (r *weddingRepository) GetByID(ctx context.Context, id string) (*domain.Wedding, error) {
	query := fmt.Sprintf(`SELECT %s FROM weddings WHERE id = $1`, weddingColumns)
	return scanWedding(r.DB.QueryRowContext(ctx, query, id))
}

func (r *weddingRepository) GetByUniqueURL(ctx context.Context, uniqueURL string) (*domain.Wedding, error) {
	query := fmt.Sprintf(`SELECT %s FROM weddings WHERE unique_url = $1`, weddingColumns)
	return scanWedding(r.DB.QueryRowContext(ctx, query, strings.TrimSpace(uniqueURL)))
}

func (r *weddingRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Wedding, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM weddings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, weddingColumns)
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	weddings := make([]*domain.Wedding, 0)
	for rows.Next() {
		w, err := scanWedding(rows)
		if err != nil {
			return nil, err
		}
		weddings = append(weddings, w)
	}
	return weddings, rows.Err()
}

func (r *weddingRepository) Update(ctx context.Context, id string, upd domain.WeddingUpdate) (*domain.Wedding, error) {
	setClauses := []string{}
	args := []interface{}{}
	n := 1
	if upd.WeddingDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("wedding_date = $%d", n))
		args = append(args, *upd.WeddingDate)
		n++
	}
	if upd.Venue != nil {
		setClauses = append(setClauses, fmt.Sprintf("venue = $%d", n))
		args = append(args, *upd.Venue)
		n++
	}
	if upd.VenueAddress != nil {
		setClauses = append(setClauses, fmt.Sprintf("venue_address = $%d", n))
		args = append(args, *upd.VenueAddress)
		n++
	}
	if upd.Story != nil {
		setClauses = append(setClauses, fmt.Sprintf("story = $%d", n))
		args = append(args, *upd.Story)
		n++
	}
	if upd.Template != nil {
		setClauses = append(setClauses, fmt.Sprintf("template = $%d", n))
		args = append(args, *upd.Template)
		n++
	}
	if upd.PrimaryColor != nil {
		setClauses = append(setClauses, fmt.Sprintf("primary_color = $%d", n))
		args = append(args, *upd.PrimaryColor)
		n++
	}
	if upd.AccentColor != nil {
		setClauses = append(setClauses, fmt.Sprintf("accent_color = $%d", n))
		args = append(args, *upd.AccentColor)
		n++
	}
	if upd.IsPublic != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_public = $%d", n))
		args = append(args, *upd.IsPublic)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE weddings SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, weddingColumns)
	return scanWedding(r.DB.QueryRowContext(ctx, query, args...))
}

// DeleteCascade removes all child rows and then the wedding, in one
// transaction, children first so no orphan can survive a crash mid-way.
func (r *weddingRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	childDeletes := []string{
		`DELETE FROM invitations WHERE wedding_id = $1`,
		`DELETE FROM guests WHERE wedding_id = $1`,
		`DELETE FROM guest_collaborators WHERE wedding_id = $1`,
		`DELETE FROM wedding_access WHERE wedding_id = $1`,
		`DELETE FROM photos WHERE wedding_id = $1`,
		`DELETE FROM guest_book_entries WHERE wedding_id = $1`,
	}
	for _, q := range childDeletes {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM weddings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}
