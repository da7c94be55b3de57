package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"weddingstudio/internal/domain"
)

const collaboratorColumns = `id, wedding_id, email, name, status, invited_at, accepted_at, last_active_at`

type collaboratorRepository struct {
	DB *sql.DB
}

func NewCollaboratorRepository(db *sql.DB) domain.CollaboratorRepository {
	return &collaboratorRepository{
		DB: db,
	}
}

func (r *collaboratorRepository) Create(ctx context.Context, c *domain.GuestCollaborator) error {
	query := `
		INSERT INTO guest_collaborators (wedding_id, email, name, status, invited_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, c.WeddingID, c.Email, c.Name, c.Status, c.InvitedAt).
		Scan(&c.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrCollaboratorExists
		}
		return err
	}
	return nil
}

func scanCollaborator(row interface{ Scan(...any) error }) (*domain.GuestCollaborator, error) {
	c := &domain.GuestCollaborator{}
	var acceptedAt, lastActiveAt sql.NullTime
	err := row.Scan(&c.ID, &c.WeddingID, &c.Email, &c.Name, &c.Status, &c.InvitedAt, &acceptedAt, &lastActiveAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if acceptedAt.Valid {
		c.AcceptedAt = &acceptedAt.Time
	}
	if lastActiveAt.Valid {
		c.LastActiveAt = &lastActiveAt.Time
	}
	return c, nil
}

func (r *collaboratorRepository) GetByID(ctx context.Context, id string) (*domain.GuestCollaborator, error) {
	query := fmt.Sprintf(`SELECT %s FROM guest_collaborators WHERE id = $1`, collaboratorColumns)
	return scanCollaborator(r.DB.QueryRowContext(ctx, query, id))
}

func (r *collaboratorRepository) GetByEmailAndWedding(ctx context.Context, email, weddingID string) (*domain.GuestCollaborator, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM guest_collaborators
		WHERE email = $1 AND wedding_id = $2
	`, collaboratorColumns)
	return scanCollaborator(r.DB.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email)), weddingID))
}

func (r *collaboratorRepository) ListByWeddingID(ctx context.Context, weddingID string) ([]*domain.GuestCollaborator, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM guest_collaborators
		WHERE wedding_id = $1
		ORDER BY invited_at
	`, collaboratorColumns)
	rows, err := r.DB.QueryContext(ctx, query, weddingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	collabs := make([]*domain.GuestCollaborator, 0)
	for rows.Next() {
		c, err := scanCollaborator(rows)
		if err != nil {
			return nil, err
		}
		collabs = append(collabs, c)
	}
	return collabs, rows.Err()
}

func (r *collaboratorRepository) SetStatus(ctx context.Context, id, status string, acceptedAt, lastActiveAt *time.Time) (*domain.GuestCollaborator, error) {
	query := fmt.Sprintf(`
		UPDATE guest_collaborators
		SET status = $2,
			accepted_at = COALESCE($3, accepted_at),
			last_active_at = COALESCE($4, last_active_at)
		WHERE id = $1
		RETURNING %s
	`, collaboratorColumns)
	return scanCollaborator(r.DB.QueryRowContext(ctx, query, id, status, acceptedAt, lastActiveAt))
}

func (r *collaboratorRepository) Touch(ctx context.Context, id string, lastActiveAt time.Time) error {
	query := `UPDATE guest_collaborators SET last_active_at = $2 WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id, lastActiveAt)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
