package controllers

import (
	"log/slog"
	"net/http"

	"weddingstudio/internal/delivery/http/helpers"
	"weddingstudio/internal/domain"
)

// CreateGuestRequest is the request body for POST /weddings/{weddingID}/guests.
type CreateGuestRequest struct {
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	PlusOne  bool    `json:"plus_one"`
	Category string  `json:"category"`
	Side     string  `json:"side"`
}

// Validate implements Validator.
func (g CreateGuestRequest) Validate() []string {
	var errs []string
	if g.Name == "" {
		errs = append(errs, "name is required")
	}
	if g.Email != nil && !emailRegex.MatchString(*g.Email) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}

// SubmitRSVPRequest is the public self-service RSVP body. The guest is created
// or matched on the server side; the only credential is the wedding URL.
type SubmitRSVPRequest struct {
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Status  string  `json:"status"`
	PlusOne bool    `json:"plus_one"`
	Message *string `json:"message"`
}

// Validate implements Validator.
func (s SubmitRSVPRequest) Validate() []string {
	var errs []string
	if s.Name == "" {
		errs = append(errs, "name is required")
	}
	if !domain.ValidRSVPStatus(s.Status) {
		errs = append(errs, "status must be one of pending, confirmed, declined, maybe")
	}
	return errs
}

// UpdateRSVPRequest is the host-side status change body.
type UpdateRSVPRequest struct {
	Status  string  `json:"status"`
	Message *string `json:"message"`
}

// Validate implements Validator.
func (u UpdateRSVPRequest) Validate() []string {
	if !domain.ValidRSVPStatus(u.Status) {
		return []string{"status must be one of pending, confirmed, declined, maybe"}
	}
	return nil
}

// BulkRSVPRequest updates several guests to a single status in one call.
type BulkRSVPRequest struct {
	GuestIDs []string `json:"guest_ids"`
	Status   string   `json:"status"`
}

// Validate implements Validator.
func (b BulkRSVPRequest) Validate() []string {
	var errs []string
	if len(b.GuestIDs) == 0 {
		errs = append(errs, "guest_ids must not be empty")
	}
	if !domain.ValidRSVPStatus(b.Status) {
		errs = append(errs, "status must be one of pending, confirmed, declined, maybe")
	}
	return errs
}

type GuestController struct {
	Logger  *slog.Logger
	Service domain.GuestService
}

func NewGuestController(logger *slog.Logger, svc domain.GuestService) *GuestController {
	return &GuestController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateGuest godoc
// @Summary Add a guest to a wedding
// @Tags guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param weddingID path string true "Wedding ID"
// @Param body body CreateGuestRequest true "Guest data"
// @Success 201 {object} helpers.APIResponse "data contains the created guest"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /weddings/{weddingID}/guests [post]
func (c *GuestController) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req CreateGuestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	guest := &domain.Guest{
		WeddingID: r.PathValue("weddingID"),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		PlusOne:   req.PlusOne,
		Category:  req.Category,
		Side:      req.Side,
	}
	if err := c.Service.CreateGuest(r.Context(), principal, guest); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, guest)
}

// ListGuests godoc
// @Summary List a wedding's guests
// @Description Supports free-text search over name and email, paginated.
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param weddingID path string true "Wedding ID"
// @Param search query string false "Name or email search term"
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size (max 100)"
// @Success 200 {object} helpers.APIResponse "data contains guests plus pagination metadata"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /weddings/{weddingID}/guests [get]
func (c *GuestController) ListGuests(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	params := helpers.ParsePagination(r)
	search := r.URL.Query().Get("search")
	guests, total, err := c.Service.ListGuests(r.Context(), principal, r.PathValue("weddingID"), search, params)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]any{
		"guests":     guests,
		"pagination": helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// SubmitRSVP handles POST /public/weddings/{uniqueURL}/rsvp. No auth; the
// wedding must be public.
func (c *GuestController) SubmitRSVP(w http.ResponseWriter, r *http.Request) {
	var req SubmitRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	guest := &domain.Guest{
		Name:       req.Name,
		Email:      req.Email,
		RSVPStatus: req.Status,
		PlusOne:    req.PlusOne,
		Message:    req.Message,
	}
	saved, err := c.Service.SubmitRSVP(r.Context(), r.PathValue("uniqueURL"), guest)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, saved)
}

// UpdateGuestRSVP godoc
// @Summary Change a guest's RSVP status
// @Description Any status may move to any other. responded_at is stamped on every transition.
// @Tags guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param guestID path string true "Guest ID"
// @Param body body UpdateRSVPRequest true "New status"
// @Success 200 {object} helpers.APIResponse "data contains the updated guest"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /guests/{guestID}/rsvp [patch]
func (c *GuestController) UpdateGuestRSVP(w http.ResponseWriter, r *http.Request) {
	var req UpdateRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	upd := domain.RSVPUpdate{Status: req.Status, Message: req.Message}
	guest, err := c.Service.UpdateGuestRSVP(r.Context(), principal, r.PathValue("guestID"), upd)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, guest)
}

// BulkUpdateRSVP godoc
// @Summary Set one RSVP status across many guests
// @Description Each guest is updated independently; the response carries a per-guest outcome and always returns 200.
// @Tags guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BulkRSVPRequest true "Guest IDs and target status"
// @Success 200 {object} helpers.APIResponse "data contains per-guest outcomes"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /guests/rsvp/bulk [post]
func (c *GuestController) BulkUpdateRSVP(w http.ResponseWriter, r *http.Request) {
	var req BulkRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	outcomes, err := c.Service.BulkUpdateRSVP(r.Context(), principal, req.GuestIDs, req.Status)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]any{"results": outcomes})
}
