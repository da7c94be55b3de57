package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"weddingstudio/internal/domain"

	"github.com/stretchr/testify/require"
)

func collaboratorRows(c *domain.GuestCollaborator) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "wedding_id", "email", "name", "status", "invited_at", "accepted_at", "last_active_at",
	}).AddRow(
		c.ID, c.WeddingID, c.Email, c.Name, c.Status, c.InvitedAt,
		nullTime(c.AcceptedAt), nullTime(c.LastActiveAt),
	)
}

func TestCollaboratorRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO guest_collaborators`).
					WithArgs("wedding-1", "helper@example.com", "Helper", domain.CollaboratorInvited, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("collab-1"))
			},
		},
		{
			name: "unique violation returns ErrCollaboratorExists",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO guest_collaborators`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrCollaboratorExists,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO guest_collaborators`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewCollaboratorRepository(db)
			err = repo.Create(ctx, &domain.GuestCollaborator{
				WeddingID: "wedding-1",
				Email:     "helper@example.com",
				Name:      "Helper",
				Status:    domain.CollaboratorInvited,
				InvitedAt: now,
			})
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCollaboratorRepository_GetByEmailAndWedding(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	collab := &domain.GuestCollaborator{
		ID:        "collab-1",
		WeddingID: "wedding-1",
		Email:     "helper@example.com",
		Name:      "Helper",
		Status:    domain.CollaboratorInvited,
		InvitedAt: now,
	}
	// Lookup is normalized to lowercase.
	mock.ExpectQuery(`SELECT (.+) FROM guest_collaborators`).
		WithArgs("helper@example.com", "wedding-1").
		WillReturnRows(collaboratorRows(collab))

	repo := NewCollaboratorRepository(db)
	got, err := repo.GetByEmailAndWedding(ctx, "  Helper@Example.com ", "wedding-1")
	require.NoError(t, err)
	require.Equal(t, "collab-1", got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollaboratorRepository_SetStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("accept stamps accepted_at", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		updated := &domain.GuestCollaborator{
			ID:           "collab-1",
			WeddingID:    "wedding-1",
			Email:        "helper@example.com",
			Name:         "Helper",
			Status:       domain.CollaboratorActive,
			InvitedAt:    now.Add(-time.Hour),
			AcceptedAt:   &now,
			LastActiveAt: &now,
		}
		mock.ExpectQuery(`UPDATE guest_collaborators`).
			WithArgs("collab-1", domain.CollaboratorActive, &now, &now).
			WillReturnRows(collaboratorRows(updated))

		repo := NewCollaboratorRepository(db)
		got, err := repo.SetStatus(ctx, "collab-1", domain.CollaboratorActive, &now, &now)
		require.NoError(t, err)
		require.Equal(t, domain.CollaboratorActive, got.Status)
		require.NotNil(t, got.AcceptedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("revoke keeps timestamps", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		updated := &domain.GuestCollaborator{
			ID:         "collab-1",
			WeddingID:  "wedding-1",
			Email:      "helper@example.com",
			Name:       "Helper",
			Status:     domain.CollaboratorRevoked,
			InvitedAt:  now.Add(-time.Hour),
			AcceptedAt: &now,
		}
		mock.ExpectQuery(`UPDATE guest_collaborators`).
			WithArgs("collab-1", domain.CollaboratorRevoked, nil, nil).
			WillReturnRows(collaboratorRows(updated))

		repo := NewCollaboratorRepository(db)
		got, err := repo.SetStatus(ctx, "collab-1", domain.CollaboratorRevoked, nil, nil)
		require.NoError(t, err)
		require.Equal(t, domain.CollaboratorRevoked, got.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE guest_collaborators`).
			WillReturnError(sql.ErrNoRows)

		repo := NewCollaboratorRepository(db)
		_, err = repo.SetStatus(ctx, "nonexistent", domain.CollaboratorRevoked, nil, nil)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCollaboratorRepository_Touch(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE guest_collaborators SET last_active_at`).
		WithArgs("collab-1", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewCollaboratorRepository(db)
	require.NoError(t, repo.Touch(ctx, "collab-1", now))
	require.NoError(t, mock.ExpectationsWereMet())
}
