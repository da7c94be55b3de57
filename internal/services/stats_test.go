package services

import (
	"context"
	"testing"
	"time"

	"weddingstudio/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_GetWeddingStats(t *testing.T) {
	ctx := context.Background()
	principal := domain.Principal{UserID: "owner-1", Role: domain.RoleUser}

	newService := func(guests *fakeGuestRepo, invs *fakeInvitationRepo, collabs *fakeCollaboratorRepo, photos *fakePhotoRepo, entries *fakeGuestBookRepo, checker domain.PermissionChecker) domain.StatsService {
		return NewStatsService(guests, invs, collabs, photos, entries, checker, time.Second)
	}

	t.Run("counts fold from the current rows", func(t *testing.T) {
		guests := newFakeGuestRepo(
			&domain.Guest{ID: "g1", WeddingID: "wedding-1", RSVPStatus: domain.RSVPConfirmed},
			&domain.Guest{ID: "g2", WeddingID: "wedding-1", RSVPStatus: domain.RSVPConfirmed},
			&domain.Guest{ID: "g3", WeddingID: "wedding-1", RSVPStatus: domain.RSVPPending},
			&domain.Guest{ID: "g4", WeddingID: "wedding-1", RSVPStatus: domain.RSVPDeclined},
			&domain.Guest{ID: "g5", WeddingID: "wedding-1", RSVPStatus: domain.RSVPMaybe},
			&domain.Guest{ID: "g6", WeddingID: "wedding-9", RSVPStatus: domain.RSVPConfirmed},
		)
		invs := newFakeInvitationRepo(
			&domain.Invitation{ID: "i1", WeddingID: "wedding-1", Status: domain.InvitationPending},
			&domain.Invitation{ID: "i2", WeddingID: "wedding-1", Status: domain.InvitationSent},
			&domain.Invitation{ID: "i3", WeddingID: "wedding-1", Status: domain.InvitationDelivered},
			&domain.Invitation{ID: "i4", WeddingID: "wedding-1", Status: domain.InvitationOpened},
			&domain.Invitation{ID: "i5", WeddingID: "wedding-1", Status: domain.InvitationFailed},
		)
		collabs := newFakeCollaboratorRepo(
			&domain.GuestCollaborator{ID: "c1", WeddingID: "wedding-1", Email: "a@example.com", Status: domain.CollaboratorActive},
			&domain.GuestCollaborator{ID: "c2", WeddingID: "wedding-1", Email: "b@example.com", Status: domain.CollaboratorInvited},
			&domain.GuestCollaborator{ID: "c3", WeddingID: "wedding-1", Email: "c@example.com", Status: domain.CollaboratorRevoked},
		)
		photos := newFakePhotoRepo(
			&domain.Photo{ID: "p1", WeddingID: "wedding-1"},
			&domain.Photo{ID: "p2", WeddingID: "wedding-1"},
		)
		entries := &fakeGuestBookRepo{entries: []*domain.GuestBookEntry{
			{ID: "e1", WeddingID: "wedding-1", GuestName: "Maya", Message: "congrats"},
		}}

		svc := newService(guests, invs, collabs, photos, entries, allowAllChecker{})
		stats, err := svc.GetWeddingStats(ctx, principal, "wedding-1")
		require.NoError(t, err)

		assert.Equal(t, 5, stats.TotalGuests)
		assert.Equal(t, 2, stats.ConfirmedGuests)
		assert.Equal(t, 1, stats.PendingGuests)
		assert.Equal(t, 1, stats.DeclinedGuests)
		assert.Equal(t, 1, stats.MaybeGuests)
		assert.Equal(t, 1, stats.PendingInvitations)
		// sent, delivered and opened all count as sent; failed does not
		assert.Equal(t, 3, stats.SentInvitations)
		assert.Equal(t, 1, stats.ActiveCollaborators)
		assert.Equal(t, 2, stats.TotalPhotos)
		assert.Equal(t, 1, stats.GuestBookEntries)
	})

	t.Run("empty wedding yields zeros", func(t *testing.T) {
		svc := newService(newFakeGuestRepo(), newFakeInvitationRepo(), newFakeCollaboratorRepo(), newFakePhotoRepo(), &fakeGuestBookRepo{}, allowAllChecker{})
		stats, err := svc.GetWeddingStats(ctx, principal, "wedding-1")
		require.NoError(t, err)
		assert.Equal(t, &domain.WeddingStats{}, stats)
	})

	t.Run("denied without analytics capability", func(t *testing.T) {
		svc := newService(newFakeGuestRepo(), newFakeInvitationRepo(), newFakeCollaboratorRepo(), newFakePhotoRepo(), &fakeGuestBookRepo{}, denyAllChecker{})
		_, err := svc.GetWeddingStats(ctx, principal, "wedding-1")
		require.ErrorIs(t, err, domain.ErrForbidden)
	})
}
