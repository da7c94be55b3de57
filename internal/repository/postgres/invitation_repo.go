package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"weddingstudio/internal/domain"
)

const invitationColumns = `id, wedding_id, guest_id, status, sent_at, delivered_at, opened_at,
		reminder_sent_at, error_message, created_at`

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{
		DB: db,
	}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (wedding_id, guest_id, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, inv.WeddingID, inv.GuestID, inv.Status, inv.CreatedAt).
		Scan(&inv.ID)
}

func scanInvitation(row interface{ Scan(...any) error }) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var sentAt, deliveredAt, openedAt, reminderSentAt sql.NullTime
	var errorMessage sql.NullString
	err := row.Scan(
		&inv.ID, &inv.WeddingID, &inv.GuestID, &inv.Status, &sentAt, &deliveredAt, &openedAt,
		&reminderSentAt, &errorMessage, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if sentAt.Valid {
		inv.SentAt = &sentAt.Time
	}
	if deliveredAt.Valid {
		inv.DeliveredAt = &deliveredAt.Time
	}
	if openedAt.Valid {
		inv.OpenedAt = &openedAt.Time
	}
	if reminderSentAt.Valid {
		inv.ReminderSentAt = &reminderSentAt.Time
	}
	if errorMessage.Valid {
		inv.ErrorMessage = &errorMessage.String
	}
	return inv, nil
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	query := fmt.Sprintf(`SELECT %s FROM invitations WHERE id = $1`, invitationColumns)
	return scanInvitation(r.DB.QueryRowContext(ctx, query, id))
}

func (r *invitationRepository) ListByWeddingID(ctx context.Context, weddingID string) ([]*domain.Invitation, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM invitations
		WHERE wedding_id = $1
		ORDER BY created_at DESC
	`, invitationColumns)
	return r.list(ctx, query, weddingID)
}

func (r *invitationRepository) ListByGuestID(ctx context.Context, guestID string) ([]*domain.Invitation, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM invitations
		WHERE guest_id = $1
		ORDER BY created_at DESC
	`, invitationColumns)
	return r.list(ctx, query, guestID)
}

func (r *invitationRepository) list(ctx context.Context, query, arg string) ([]*domain.Invitation, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	invs := make([]*domain.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

// SetStatus updates the status and stamps the timestamp for the status being
// reached only if still unset (COALESCE keeps the first-set value), so
// re-reporting an event never rewrites history. error_message is recorded
// when given and kept otherwise.
func (r *invitationRepository) SetStatus(ctx context.Context, id, status string, errorMessage *string, now time.Time) (*domain.Invitation, error) {
	query := fmt.Sprintf(`
		UPDATE invitations
		SET status = $2,
			sent_at = CASE WHEN $2 = 'sent' THEN COALESCE(sent_at, $3) ELSE sent_at END,
			delivered_at = CASE WHEN $2 = 'delivered' THEN COALESCE(delivered_at, $3) ELSE delivered_at END,
			opened_at = CASE WHEN $2 = 'opened' THEN COALESCE(opened_at, $3) ELSE opened_at END,
			error_message = COALESCE($4, error_message)
		WHERE id = $1
		RETURNING %s
	`, invitationColumns)
	return scanInvitation(r.DB.QueryRowContext(ctx, query, id, status, now, errorMessage))
}

// SetReminderSentAt overwrites the reminder timestamp; only the latest
// reminder is retained.
func (r *invitationRepository) SetReminderSentAt(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE invitations SET reminder_sent_at = $2 WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id, at)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
