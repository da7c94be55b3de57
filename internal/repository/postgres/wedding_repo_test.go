package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"weddingstudio/internal/domain"

	"github.com/stretchr/testify/require"
)

func weddingRows(w *domain.Wedding) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "bride", "groom", "wedding_date", "venue", "venue_address", "story",
		"template", "primary_color", "accent_color", "unique_url", "is_public", "created_at",
	}).AddRow(
		w.ID, w.UserID, w.Bride, w.Groom, w.WeddingDate, w.Venue, w.VenueAddress, w.Story,
		w.Template, w.PrimaryColor, w.AccentColor, w.UniqueURL, w.IsPublic, w.CreatedAt,
	)
}

func TestWeddingRepository_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("updates only the provided fields", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		venue := "Rosewood Hall"
		isPublic := false
		updated := &domain.Wedding{
			ID:          "wedding-1",
			UserID:      "user-1",
			Bride:       "Ana",
			Groom:       "Ben",
			WeddingDate: now,
			Venue:       venue,
			Template:    "garden-romance",
			UniqueURL:   "abc123def456",
			IsPublic:    false,
			CreatedAt:   now.Add(-time.Hour),
		}
		mock.ExpectQuery(`UPDATE weddings SET venue = \$1, is_public = \$2`).
			WithArgs(venue, isPublic, "wedding-1").
			WillReturnRows(weddingRows(updated))

		repo := NewWeddingRepository(db)
		w, err := repo.Update(ctx, "wedding-1", domain.WeddingUpdate{Venue: &venue, IsPublic: &isPublic})
		require.NoError(t, err)
		require.Equal(t, venue, w.Venue)
		require.False(t, w.IsPublic)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty update falls back to a fetch", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		current := &domain.Wedding{
			ID:          "wedding-1",
			UserID:      "user-1",
			Bride:       "Ana",
			Groom:       "Ben",
			WeddingDate: now,
			Template:    "garden-romance",
			UniqueURL:   "abc123def456",
			IsPublic:    true,
			CreatedAt:   now.Add(-time.Hour),
		}
		mock.ExpectQuery(`SELECT (.+) FROM weddings WHERE id`).
			WithArgs("wedding-1").
			WillReturnRows(weddingRows(current))

		repo := NewWeddingRepository(db)
		w, err := repo.Update(ctx, "wedding-1", domain.WeddingUpdate{})
		require.NoError(t, err)
		require.Equal(t, "Ana", w.Bride)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWeddingRepository_DeleteCascade(t *testing.T) {
	ctx := context.Background()

	childTables := []string{
		"invitations", "guests", "guest_collaborators", "wedding_access", "photos", "guest_book_entries",
	}

	t.Run("deletes children then the wedding in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		for _, table := range childTables {
			mock.ExpectExec(`DELETE FROM ` + table).
				WithArgs("wedding-1").
				WillReturnResult(sqlmock.NewResult(0, 3))
		}
		mock.ExpectExec(`DELETE FROM weddings`).
			WithArgs("wedding-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewWeddingRepository(db)
		require.NoError(t, repo.DeleteCascade(ctx, "wedding-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing wedding rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		for _, table := range childTables {
			mock.ExpectExec(`DELETE FROM ` + table).
				WithArgs("nonexistent").
				WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectExec(`DELETE FROM weddings`).
			WithArgs("nonexistent").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		repo := NewWeddingRepository(db)
		require.ErrorIs(t, repo.DeleteCascade(ctx, "nonexistent"), domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("child delete failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM invitations`).
			WithArgs("wedding-1").
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		repo := NewWeddingRepository(db)
		require.Error(t, repo.DeleteCascade(ctx, "wedding-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
