package services

import (
	"context"
	"testing"
	"time"

	"weddingstudio/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionService_CheckPermission(t *testing.T) {
	ctx := context.Background()
	wedding := &domain.Wedding{
		ID:        "wedding-1",
		UserID:    "owner-1",
		UniqueURL: "abc123def456",
		IsPublic:  true,
	}

	tests := []struct {
		name       string
		principal  domain.Principal
		weddingID  string
		capability string
		grants     []*domain.WeddingAccess
		want       bool
		wantErr    error
	}{
		{
			name:       "admin bypasses everything",
			principal:  domain.Principal{UserID: "anyone", IsAdmin: true},
			weddingID:  "wedding-1",
			capability: domain.CapEditDetails,
			want:       true,
		},
		{
			name:       "admin is allowed even when the wedding does not exist",
			principal:  domain.Principal{UserID: "anyone", IsAdmin: true},
			weddingID:  "nonexistent",
			capability: domain.CapEditGuests,
			want:       true,
		},
		{
			name:       "owner holds every capability",
			principal:  domain.Principal{UserID: "owner-1", Role: domain.RoleUser},
			weddingID:  "wedding-1",
			capability: domain.CapManagePhotos,
			want:       true,
		},
		{
			name:       "guest_manager never gets owner rights",
			principal:  domain.Principal{UserID: "owner-1", Role: domain.RoleGuestManager},
			weddingID:  "wedding-1",
			capability: domain.CapEditDetails,
			want:       false,
		},
		{
			name:       "guest_manager falls through to its grant",
			principal:  domain.Principal{UserID: "owner-1", Role: domain.RoleGuestManager},
			weddingID:  "wedding-1",
			capability: domain.CapEditGuests,
			grants: []*domain.WeddingAccess{{
				ID:        "access-1",
				UserID:    "owner-1",
				WeddingID: "wedding-1",
				Permissions: domain.Permissions{
					CanEditGuests: true,
					CanViewGuests: true,
				},
			}},
			want: true,
		},
		{
			name:       "grant holder gets only the granted capabilities",
			principal:  domain.Principal{UserID: "user-2", Role: domain.RoleUser},
			weddingID:  "wedding-1",
			capability: domain.CapViewGuests,
			grants: []*domain.WeddingAccess{{
				ID:          "access-2",
				UserID:      "user-2",
				WeddingID:   "wedding-1",
				Permissions: domain.Permissions{CanViewGuests: true},
			}},
			want: true,
		},
		{
			name:       "granted capability does not imply others",
			principal:  domain.Principal{UserID: "user-2", Role: domain.RoleUser},
			weddingID:  "wedding-1",
			capability: domain.CapEditGuests,
			grants: []*domain.WeddingAccess{{
				ID:          "access-2",
				UserID:      "user-2",
				WeddingID:   "wedding-1",
				Permissions: domain.Permissions{CanViewGuests: true},
			}},
			want: false,
		},
		{
			name:       "no grant denies without error",
			principal:  domain.Principal{UserID: "stranger", Role: domain.RoleUser},
			weddingID:  "wedding-1",
			capability: domain.CapViewGuests,
			want:       false,
		},
		{
			name:       "unknown capability denies even for a grant holder",
			principal:  domain.Principal{UserID: "user-2", Role: domain.RoleUser},
			weddingID:  "wedding-1",
			capability: "canDoAnything",
			grants: []*domain.WeddingAccess{{
				ID:        "access-2",
				UserID:    "user-2",
				WeddingID: "wedding-1",
				Permissions: domain.Permissions{
					CanEditGuests:    true,
					CanViewGuests:    true,
					CanEditDetails:   true,
					CanViewPhotos:    true,
					CanManagePhotos:  true,
					CanViewAnalytics: true,
				},
			}},
			want: false,
		},
		{
			name:       "missing wedding surfaces not found",
			principal:  domain.Principal{UserID: "owner-1", Role: domain.RoleUser},
			weddingID:  "nonexistent",
			capability: domain.CapEditGuests,
			wantErr:    domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accessRepo := newFakeAccessRepo()
			for _, g := range tt.grants {
				accessRepo.put(g)
			}
			svc := NewPermissionService(newFakeWeddingRepo(wedding), accessRepo, time.Second)

			got, err := svc.CheckPermission(ctx, tt.principal, tt.weddingID, tt.capability)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
