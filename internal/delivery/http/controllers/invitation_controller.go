package controllers

import (
	"log/slog"
	"net/http"

	"weddingstudio/internal/delivery/http/helpers"
	"weddingstudio/internal/domain"
)

// SendInvitationRequest names the guest to invite.
type SendInvitationRequest struct {
	GuestID string `json:"guest_id"`
}

// Validate implements Validator.
func (s SendInvitationRequest) Validate() []string {
	if s.GuestID == "" {
		return []string{"guest_id is required"}
	}
	return nil
}

// MarkFailedRequest carries the delivery failure reason.
type MarkFailedRequest struct {
	ErrorMessage string `json:"error_message"`
}

// Validate implements Validator.
func (m MarkFailedRequest) Validate() []string {
	if m.ErrorMessage == "" {
		return []string{"error_message is required"}
	}
	return nil
}

type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// SendInvitation godoc
// @Summary Send an invitation email to a guest
// @Description Creates a tracking record and dispatches the email. A delivery failure is recorded on the invitation, not returned as an error.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param weddingID path string true "Wedding ID"
// @Param body body SendInvitationRequest true "Guest to invite"
// @Success 201 {object} helpers.APIResponse "data contains the invitation, status sent or failed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (guest has no email)"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /weddings/{weddingID}/invitations [post]
func (c *InvitationController) SendInvitation(w http.ResponseWriter, r *http.Request) {
	var req SendInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	inv, err := c.Service.SendInvitation(r.Context(), principal, r.PathValue("weddingID"), req.GuestID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, inv)
}

// ListInvitations handles GET /weddings/{weddingID}/invitations.
func (c *InvitationController) ListInvitations(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	invitations, err := c.Service.ListInvitations(r.Context(), principal, r.PathValue("weddingID"))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invitations)
}

// ListGuestInvitations handles GET /weddings/{weddingID}/guests/{guestID}/invitations,
// the guest's delivery history across retries.
func (c *InvitationController) ListGuestInvitations(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	invitations, err := c.Service.ListGuestInvitations(r.Context(), principal, r.PathValue("weddingID"), r.PathValue("guestID"))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invitations)
}

// MarkDelivered handles POST /invitations/{invitationID}/delivered. Called by
// the delivery webhook, so it carries no principal.
func (c *InvitationController) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	inv, err := c.Service.MarkDelivered(r.Context(), r.PathValue("invitationID"))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// MarkOpened handles GET /invitations/{invitationID}/opened, the tracking
// pixel endpoint. Responds with the updated invitation rather than an image;
// clients that want a pixel can ignore the body.
func (c *InvitationController) MarkOpened(w http.ResponseWriter, r *http.Request) {
	inv, err := c.Service.MarkOpened(r.Context(), r.PathValue("invitationID"))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// MarkFailed godoc
// @Summary Record a delivery failure
// @Description Only pending or sent invitations can fail; the reason is required.
// @Tags invitations
// @Accept json
// @Produce json
// @Param invitationID path string true "Invitation ID"
// @Param body body MarkFailedRequest true "Failure reason"
// @Success 200 {object} helpers.APIResponse "data contains the updated invitation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /invitations/{invitationID}/failed [post]
func (c *InvitationController) MarkFailed(w http.ResponseWriter, r *http.Request) {
	var req MarkFailedRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	inv, err := c.Service.MarkFailed(r.Context(), r.PathValue("invitationID"), req.ErrorMessage)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// SendReminder handles POST /invitations/{invitationID}/reminder. The reminder
// timestamp always reflects the latest reminder.
func (c *InvitationController) SendReminder(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	if err := c.Service.SendReminder(r.Context(), principal, r.PathValue("invitationID")); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "reminder sent"})
}
