package domain

import "context"

// WeddingStats is the aggregate view of one wedding's guests, invitations,
// collaborators, photos, and guest book. It is recomputed on demand by folding
// over the current rows, never cached or incremented.
// swagger:model WeddingStats
type WeddingStats struct {
	TotalGuests         int `json:"totalGuests"`
	ConfirmedGuests     int `json:"confirmedGuests"`
	PendingGuests       int `json:"pendingGuests"`
	DeclinedGuests      int `json:"declinedGuests"`
	MaybeGuests         int `json:"maybeGuests"`
	TotalPhotos         int `json:"totalPhotos"`
	GuestBookEntries    int `json:"guestBookEntries"`
	PendingInvitations  int `json:"pendingInvitations"`
	SentInvitations     int `json:"sentInvitations"`
	ActiveCollaborators int `json:"activeCollaborators"`
}

// StatsService computes wedding statistics.
type StatsService interface {
	GetWeddingStats(ctx context.Context, principal Principal, weddingID string) (*WeddingStats, error)
}
