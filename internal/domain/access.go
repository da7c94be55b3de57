package domain

import (
	"context"
	"errors"
	"time"
)

// ErrCollaboratorExists is returned when inviting an email that already has a
// collaborator row for the wedding.
var ErrCollaboratorExists = errors.New("collaborator already invited")

// Collaborator statuses form a small lifecycle: invited -> active -> revoked.
// AcceptCollaboratorInvite is the only invited -> active path.
const (
	CollaboratorInvited = "invited"
	CollaboratorActive  = "active"
	CollaboratorRevoked = "revoked"
)

// GuestCollaborator is a proposed helper for one wedding, keyed by email until
// they accept and are bound to an access grant.
// swagger:model GuestCollaborator
type GuestCollaborator struct {
	ID           string     `json:"id"`
	WeddingID    string     `json:"wedding_id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Status       string     `json:"status"`
	InvitedAt    time.Time  `json:"invited_at"`
	AcceptedAt   *time.Time `json:"accepted_at,omitempty"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
}

// Capabilities a wedding access grant can carry. Each one is independent;
// nothing is inferred transitively.
const (
	CapEditGuests    = "canEditGuests"
	CapViewGuests    = "canViewGuests"
	CapEditDetails   = "canEditDetails"
	CapViewPhotos    = "canViewPhotos"
	CapManagePhotos  = "canManagePhotos"
	CapViewAnalytics = "canViewAnalytics"
)

// Permissions is the fixed capability set of a wedding access grant. A struct
// of named booleans rather than an open map so the resolver is exhaustively
// checkable.
type Permissions struct {
	CanEditGuests    bool `json:"canEditGuests"`
	CanViewGuests    bool `json:"canViewGuests"`
	CanEditDetails   bool `json:"canEditDetails"`
	CanViewPhotos    bool `json:"canViewPhotos"`
	CanManagePhotos  bool `json:"canManagePhotos"`
	CanViewAnalytics bool `json:"canViewAnalytics"`
}

// Allows returns the boolean named by capability. Unknown capabilities deny.
func (p Permissions) Allows(capability string) bool {
	switch capability {
	case CapEditGuests:
		return p.CanEditGuests
	case CapViewGuests:
		return p.CanViewGuests
	case CapEditDetails:
		return p.CanEditDetails
	case CapViewPhotos:
		return p.CanViewPhotos
	case CapManagePhotos:
		return p.CanManagePhotos
	case CapViewAnalytics:
		return p.CanViewAnalytics
	}
	return false
}

// WeddingAccess binds a (user, wedding) pair to a permission set. It is the
// only row type that can grant a non-owner, non-admin user any authority over
// a wedding. Revoked grants are kept for audit and filtered out on read.
// swagger:model WeddingAccess
type WeddingAccess struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	WeddingID   string      `json:"wedding_id"`
	Permissions Permissions `json:"permissions"`
	CreatedAt   time.Time   `json:"created_at"`
}

// CollaboratorRepository defines storage operations for guest collaborators.
type CollaboratorRepository interface {
	Create(ctx context.Context, c *GuestCollaborator) error
	GetByID(ctx context.Context, id string) (*GuestCollaborator, error)
	GetByEmailAndWedding(ctx context.Context, email, weddingID string) (*GuestCollaborator, error)
	ListByWeddingID(ctx context.Context, weddingID string) ([]*GuestCollaborator, error)
	SetStatus(ctx context.Context, id, status string, acceptedAt, lastActiveAt *time.Time) (*GuestCollaborator, error)
	Touch(ctx context.Context, id string, lastActiveAt time.Time) error
}

// WeddingAccessRepository defines storage operations for access grants.
type WeddingAccessRepository interface {
	Create(ctx context.Context, a *WeddingAccess) error
	Update(ctx context.Context, userID, weddingID string, perms Permissions) (*WeddingAccess, error)
	// GetActive returns the grant for (userID, weddingID) whose owning
	// collaborator, if any, is not revoked. ErrNotFound otherwise.
	GetActive(ctx context.Context, userID, weddingID string) (*WeddingAccess, error)
	ListByWeddingID(ctx context.Context, weddingID string) ([]*WeddingAccess, error)
}

// PermissionChecker answers "may this principal perform this capability on
// this wedding". Every mutating service consults it before touching rows.
type PermissionChecker interface {
	CheckPermission(ctx context.Context, principal Principal, weddingID, capability string) (bool, error)
}

// AccessService manages access grants and the collaborator lifecycle.
type AccessService interface {
	PermissionChecker

	GrantAccess(ctx context.Context, principal Principal, userID, weddingID string, perms Permissions) (*WeddingAccess, error)
	UpdateAccess(ctx context.Context, principal Principal, userID, weddingID string, perms Permissions) (*WeddingAccess, error)
	RevokeAccess(ctx context.Context, principal Principal, userID, weddingID string) error

	InviteCollaborator(ctx context.Context, principal Principal, weddingID, email, name string) (*GuestCollaborator, error)
	ListCollaborators(ctx context.Context, principal Principal, weddingID string) ([]*GuestCollaborator, error)
	// AcceptCollaboratorInvite transitions invited -> active. Idempotent:
	// accepting an already-active collaborator refreshes last_active_at.
	AcceptCollaboratorInvite(ctx context.Context, email, weddingID string) (*GuestCollaborator, error)
}
