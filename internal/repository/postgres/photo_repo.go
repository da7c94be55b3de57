package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weddingstudio/internal/domain"
)

type photoRepository struct {
	DB *sql.DB
}

func NewPhotoRepository(db *sql.DB) domain.PhotoRepository {
	return &photoRepository{
		DB: db,
	}
}

func (r *photoRepository) Create(ctx context.Context, p *domain.Photo) error {
	query := `
		INSERT INTO photos (wedding_id, url, caption, is_hero, uploaded_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, p.WeddingID, p.URL, p.Caption, p.IsHero, p.UploadedAt).
		Scan(&p.ID)
}

func scanPhoto(row interface{ Scan(...any) error }) (*domain.Photo, error) {
	p := &domain.Photo{}
	var caption sql.NullString
	err := row.Scan(&p.ID, &p.WeddingID, &p.URL, &caption, &p.IsHero, &p.UploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if caption.Valid {
		p.Caption = &caption.String
	}
	return p, nil
}

func (r *photoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	query := `SELECT id, wedding_id, url, caption, is_hero, uploaded_at FROM photos WHERE id = $1`
	return scanPhoto(r.DB.QueryRowContext(ctx, query, id))
}

func (r *photoRepository) ListByWeddingID(ctx context.Context, weddingID string) ([]*domain.Photo, error) {
	query := `
		SELECT id, wedding_id, url, caption, is_hero, uploaded_at
		FROM photos
		WHERE wedding_id = $1
		ORDER BY uploaded_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, weddingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	photos := make([]*domain.Photo, 0)
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *photoRepository) CountByWeddingID(ctx context.Context, weddingID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos WHERE wedding_id = $1`, weddingID).
		Scan(&count)
	return count, err
}

func (r *photoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
