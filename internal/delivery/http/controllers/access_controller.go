package controllers

import (
	"log/slog"
	"net/http"

	"weddingstudio/internal/delivery/http/helpers"
	"weddingstudio/internal/domain"
)

// GrantAccessRequest assigns a capability set to an existing user.
type GrantAccessRequest struct {
	UserID      string             `json:"user_id"`
	Permissions domain.Permissions `json:"permissions"`
}

// Validate implements Validator.
func (g GrantAccessRequest) Validate() []string {
	if g.UserID == "" {
		return []string{"user_id is required"}
	}
	return nil
}

// UpdateAccessRequest replaces a grant's capability set.
type UpdateAccessRequest struct {
	Permissions domain.Permissions `json:"permissions"`
}

// Validate implements Validator.
func (u UpdateAccessRequest) Validate() []string { return nil }

// InviteCollaboratorRequest invites a helper by email; they need not have an
// account yet.
type InviteCollaboratorRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Validate implements Validator.
func (i InviteCollaboratorRequest) Validate() []string {
	var errs []string
	if !emailRegex.MatchString(i.Email) {
		errs = append(errs, "email must be a valid email address")
	}
	if i.Name == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

type AccessController struct {
	Logger  *slog.Logger
	Service domain.AccessService
}

func NewAccessController(logger *slog.Logger, svc domain.AccessService) *AccessController {
	return &AccessController{
		Logger:  logger,
		Service: svc,
	}
}

// GrantAccess godoc
// @Summary Grant a user access to a wedding
// @Description Owner or admin only. The grant carries an explicit capability set; nothing is implied.
// @Tags access
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param weddingID path string true "Wedding ID"
// @Param body body GrantAccessRequest true "User and capabilities"
// @Success 201 {object} helpers.APIResponse "data contains the created grant"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /weddings/{weddingID}/access [post]
func (c *AccessController) GrantAccess(w http.ResponseWriter, r *http.Request) {
	var req GrantAccessRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	grant, err := c.Service.GrantAccess(r.Context(), principal, req.UserID, r.PathValue("weddingID"), req.Permissions)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, grant)
}

// UpdateAccess handles PATCH /weddings/{weddingID}/access/{userID}.
func (c *AccessController) UpdateAccess(w http.ResponseWriter, r *http.Request) {
	var req UpdateAccessRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	grant, err := c.Service.UpdateAccess(r.Context(), principal, r.PathValue("userID"), r.PathValue("weddingID"), req.Permissions)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, grant)
}

// RevokeAccess godoc
// @Summary Revoke a user's access to a wedding
// @Description The grant row is kept for audit; the collaborator record is flagged revoked, which the resolver treats as denial.
// @Tags access
// @Produce json
// @Security BearerAuth
// @Param weddingID path string true "Wedding ID"
// @Param userID path string true "User ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /weddings/{weddingID}/access/{userID} [delete]
func (c *AccessController) RevokeAccess(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	if err := c.Service.RevokeAccess(r.Context(), principal, r.PathValue("userID"), r.PathValue("weddingID")); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "access revoked"})
}

// InviteCollaborator godoc
// @Summary Invite a collaborator by email
// @Tags access
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param weddingID path string true "Wedding ID"
// @Param body body InviteCollaboratorRequest true "Invitee"
// @Success 201 {object} helpers.APIResponse "data contains the collaborator record"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already invited)"
// @Router /weddings/{weddingID}/collaborators [post]
func (c *AccessController) InviteCollaborator(w http.ResponseWriter, r *http.Request) {
	var req InviteCollaboratorRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	collab, err := c.Service.InviteCollaborator(r.Context(), principal, r.PathValue("weddingID"), req.Email, req.Name)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, collab)
}

// ListCollaborators handles GET /weddings/{weddingID}/collaborators.
func (c *AccessController) ListCollaborators(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	collabs, err := c.Service.ListCollaborators(r.Context(), principal, r.PathValue("weddingID"))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, collabs)
}

// AcceptCollaboratorInvite handles POST /weddings/{weddingID}/collaborators/accept.
// The caller's own email, taken from their token, is the one accepted.
// Accepting an already-active invite is a no-op that refreshes last_active_at.
func (c *AccessController) AcceptCollaboratorInvite(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	collab, err := c.Service.AcceptCollaboratorInvite(r.Context(), principal.Email, r.PathValue("weddingID"))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, collab)
}
