package controllers

import (
	"log/slog"
	"net/http"

	"weddingstudio/internal/delivery/http/helpers"
	"weddingstudio/internal/domain"
)

// AddPhotoRequest is the request body for POST /weddings/{weddingID}/photos.
type AddPhotoRequest struct {
	URL     string  `json:"url"`
	Caption *string `json:"caption"`
	IsHero  bool    `json:"is_hero"`
}

// Validate implements Validator.
func (a AddPhotoRequest) Validate() []string {
	if a.URL == "" {
		return []string{"url is required"}
	}
	return nil
}

// SignGuestBookRequest is the public guest book body.
type SignGuestBookRequest struct {
	GuestName string `json:"guest_name"`
	Message   string `json:"message"`
}

// Validate implements Validator.
func (s SignGuestBookRequest) Validate() []string {
	var errs []string
	if s.GuestName == "" {
		errs = append(errs, "guest_name is required")
	}
	if s.Message == "" {
		errs = append(errs, "message is required")
	}
	return errs
}

// MediaController serves photos and the guest book. They share a controller
// because both are thin row-lifecycle surfaces over the same wedding site.
type MediaController struct {
	Logger    *slog.Logger
	Photos    domain.PhotoService
	GuestBook domain.GuestBookService
}

func NewMediaController(logger *slog.Logger, photos domain.PhotoService, guestBook domain.GuestBookService) *MediaController {
	return &MediaController{
		Logger:    logger,
		Photos:    photos,
		GuestBook: guestBook,
	}
}

// AddPhoto godoc
// @Summary Register an uploaded photo
// @Tags media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param weddingID path string true "Wedding ID"
// @Param body body AddPhotoRequest true "Photo data"
// @Success 201 {object} helpers.APIResponse "data contains the photo"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /weddings/{weddingID}/photos [post]
func (c *MediaController) AddPhoto(w http.ResponseWriter, r *http.Request) {
	var req AddPhotoRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	photo := &domain.Photo{
		WeddingID: r.PathValue("weddingID"),
		URL:       req.URL,
		Caption:   req.Caption,
		IsHero:    req.IsHero,
	}
	if err := c.Photos.AddPhoto(r.Context(), principal, photo); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, photo)
}

// ListPhotos handles GET /weddings/{weddingID}/photos.
func (c *MediaController) ListPhotos(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	photos, err := c.Photos.ListPhotos(r.Context(), principal, r.PathValue("weddingID"))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, photos)
}

// DeletePhoto handles DELETE /photos/{photoID}.
func (c *MediaController) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	if err := c.Photos.DeletePhoto(r.Context(), principal, r.PathValue("photoID")); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "photo deleted"})
}

// SignGuestBook handles POST /public/weddings/{uniqueURL}/guestbook. Public
// like RSVP submission; the wedding must be public.
func (c *MediaController) SignGuestBook(w http.ResponseWriter, r *http.Request) {
	var req SignGuestBookRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	entry := &domain.GuestBookEntry{
		GuestName: req.GuestName,
		Message:   req.Message,
	}
	saved, err := c.GuestBook.SignGuestBook(r.Context(), r.PathValue("uniqueURL"), entry)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, saved)
}

// ListGuestBookEntries handles GET /public/weddings/{uniqueURL}/guestbook.
func (c *MediaController) ListGuestBookEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := c.GuestBook.ListEntries(r.Context(), r.PathValue("uniqueURL"))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entries)
}
