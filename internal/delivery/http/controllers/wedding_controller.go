package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"weddingstudio/internal/delivery/http/helpers"
	"weddingstudio/internal/domain"
)

// CreateWeddingRequest is the request body for POST /weddings. The unique URL
// and owner are server-assigned.
type CreateWeddingRequest struct {
	Bride        string    `json:"bride"`
	Groom        string    `json:"groom"`
	WeddingDate  time.Time `json:"wedding_date"`
	Venue        string    `json:"venue"`
	VenueAddress string    `json:"venue_address"`
	Story        string    `json:"story"`
	Template     string    `json:"template"`
	PrimaryColor string    `json:"primary_color"`
	AccentColor  string    `json:"accent_color"`
	IsPublic     *bool     `json:"is_public"`
}

// Validate implements Validator.
func (c CreateWeddingRequest) Validate() []string {
	var errs []string
	if c.Bride == "" {
		errs = append(errs, "bride is required")
	}
	if c.Groom == "" {
		errs = append(errs, "groom is required")
	}
	if c.WeddingDate.IsZero() {
		errs = append(errs, "wedding_date is required")
	}
	return errs
}

// UpdateWeddingRequest is the request body for PATCH /weddings/{weddingID}.
// Absent fields are left unchanged.
type UpdateWeddingRequest struct {
	WeddingDate  *time.Time `json:"wedding_date"`
	Venue        *string    `json:"venue"`
	VenueAddress *string    `json:"venue_address"`
	Story        *string    `json:"story"`
	Template     *string    `json:"template"`
	PrimaryColor *string    `json:"primary_color"`
	AccentColor  *string    `json:"accent_color"`
	IsPublic     *bool      `json:"is_public"`
}

type WeddingController struct {
	Logger  *slog.Logger
	Service domain.WeddingService
	Stats   domain.StatsService
}

func NewWeddingController(logger *slog.Logger, svc domain.WeddingService, stats domain.StatsService) *WeddingController {
	return &WeddingController{
		Logger:  logger,
		Service: svc,
		Stats:   stats,
	}
}

// CreateWedding godoc
// @Summary Create a wedding site
// @Description The authenticated user becomes the owner. The public URL slug is generated server-side and is immutable.
// @Tags weddings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateWeddingRequest true "Wedding data"
// @Success 201 {object} helpers.APIResponse "data contains the created wedding"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /weddings [post]
func (c *WeddingController) CreateWedding(w http.ResponseWriter, r *http.Request) {
	var req CreateWeddingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	wedding := &domain.Wedding{
		Bride:        req.Bride,
		Groom:        req.Groom,
		WeddingDate:  req.WeddingDate,
		Venue:        req.Venue,
		VenueAddress: req.VenueAddress,
		Story:        req.Story,
		Template:     req.Template,
		PrimaryColor: req.PrimaryColor,
		AccentColor:  req.AccentColor,
		IsPublic:     true,
	}
	if req.IsPublic != nil {
		wedding.IsPublic = *req.IsPublic
	}
	if err := c.Service.CreateWedding(r.Context(), principal, wedding); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, wedding)
}

// GetWeddingByURL handles GET /public/weddings/{uniqueURL}. Public, no auth.
func (c *WeddingController) GetWeddingByURL(w http.ResponseWriter, r *http.Request) {
	wedding, err := c.Service.GetWeddingByURL(r.Context(), r.PathValue("uniqueURL"))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, wedding)
}

// ListMyWeddings handles GET /weddings.
func (c *WeddingController) ListMyWeddings(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	weddings, err := c.Service.ListMyWeddings(r.Context(), principal)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, weddings)
}

// UpdateWedding godoc
// @Summary Update wedding details
// @Tags weddings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param weddingID path string true "Wedding ID"
// @Param body body UpdateWeddingRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated wedding"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /weddings/{weddingID} [patch]
func (c *WeddingController) UpdateWedding(w http.ResponseWriter, r *http.Request) {
	var req UpdateWeddingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	upd := domain.WeddingUpdate{
		WeddingDate:  req.WeddingDate,
		Venue:        req.Venue,
		VenueAddress: req.VenueAddress,
		Story:        req.Story,
		Template:     req.Template,
		PrimaryColor: req.PrimaryColor,
		AccentColor:  req.AccentColor,
		IsPublic:     req.IsPublic,
	}
	wedding, err := c.Service.UpdateWedding(r.Context(), principal, r.PathValue("weddingID"), upd)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, wedding)
}

// DeleteWedding godoc
// @Summary Delete a wedding and everything under it
// @Description Cascades to guests, invitations, collaborators, access grants, photos, and the guest book in one transaction.
// @Tags weddings
// @Produce json
// @Security BearerAuth
// @Param weddingID path string true "Wedding ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /weddings/{weddingID} [delete]
func (c *WeddingController) DeleteWedding(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteWedding(r.Context(), principal, r.PathValue("weddingID")); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "wedding deleted"})
}

// GetWeddingStats handles GET /weddings/{weddingID}/stats. Counts are folded
// from the current rows on every call.
func (c *WeddingController) GetWeddingStats(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	stats, err := c.Stats.GetWeddingStats(r.Context(), principal, r.PathValue("weddingID"))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}
