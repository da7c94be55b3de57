package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"weddingstudio/internal/delivery/http/controllers"
	"weddingstudio/internal/delivery/http/middleware"
	"weddingstudio/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Public routes (the wedding site surface) take no token; everything else
// is wrapped in RequireAuth.
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	weddingController *controllers.WeddingController,
	guestController *controllers.GuestController,
	invitationController *controllers.InvitationController,
	accessController *controllers.AccessController,
	mediaController *controllers.MediaController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("POST /auth/guest-managers", auth(authController.CreateGuestManager))

	// Weddings
	mux.HandleFunc("POST /weddings", auth(weddingController.CreateWedding))
	mux.HandleFunc("GET /weddings", auth(weddingController.ListMyWeddings))
	mux.HandleFunc("PATCH /weddings/{weddingID}", auth(weddingController.UpdateWedding))
	mux.HandleFunc("DELETE /weddings/{weddingID}", auth(weddingController.DeleteWedding))
	mux.HandleFunc("GET /weddings/{weddingID}/stats", auth(weddingController.GetWeddingStats))

	// Guests
	mux.HandleFunc("POST /weddings/{weddingID}/guests", auth(guestController.CreateGuest))
	mux.HandleFunc("GET /weddings/{weddingID}/guests", auth(guestController.ListGuests))
	mux.HandleFunc("PATCH /guests/{guestID}/rsvp", auth(guestController.UpdateGuestRSVP))
	mux.HandleFunc("POST /guests/rsvp/bulk", auth(guestController.BulkUpdateRSVP))

	// Invitations. The delivered/failed hooks are called by the mail
	// provider's webhook and the opened hook by the tracking pixel, so
	// they carry no bearer token.
	mux.HandleFunc("POST /weddings/{weddingID}/invitations", auth(invitationController.SendInvitation))
	mux.HandleFunc("GET /weddings/{weddingID}/invitations", auth(invitationController.ListInvitations))
	mux.HandleFunc("GET /weddings/{weddingID}/guests/{guestID}/invitations", auth(invitationController.ListGuestInvitations))
	mux.HandleFunc("POST /invitations/{invitationID}/delivered", invitationController.MarkDelivered)
	mux.HandleFunc("GET /invitations/{invitationID}/opened", invitationController.MarkOpened)
	mux.HandleFunc("POST /invitations/{invitationID}/failed", invitationController.MarkFailed)
	mux.HandleFunc("POST /invitations/{invitationID}/reminder", auth(invitationController.SendReminder))

	// Access grants and collaborators
	mux.HandleFunc("POST /weddings/{weddingID}/access", auth(accessController.GrantAccess))
	mux.HandleFunc("PATCH /weddings/{weddingID}/access/{userID}", auth(accessController.UpdateAccess))
	mux.HandleFunc("DELETE /weddings/{weddingID}/access/{userID}", auth(accessController.RevokeAccess))
	mux.HandleFunc("POST /weddings/{weddingID}/collaborators", auth(accessController.InviteCollaborator))
	mux.HandleFunc("GET /weddings/{weddingID}/collaborators", auth(accessController.ListCollaborators))
	mux.HandleFunc("POST /weddings/{weddingID}/collaborators/accept", auth(accessController.AcceptCollaboratorInvite))

	// Photos
	mux.HandleFunc("POST /weddings/{weddingID}/photos", auth(mediaController.AddPhoto))
	mux.HandleFunc("GET /weddings/{weddingID}/photos", auth(mediaController.ListPhotos))
	mux.HandleFunc("DELETE /photos/{photoID}", auth(mediaController.DeletePhoto))

	// Public wedding site
	mux.HandleFunc("GET /public/weddings/{uniqueURL}", weddingController.GetWeddingByURL)
	mux.HandleFunc("POST /public/weddings/{uniqueURL}/rsvp", guestController.SubmitRSVP)
	mux.HandleFunc("POST /public/weddings/{uniqueURL}/guestbook", mediaController.SignGuestBook)
	mux.HandleFunc("GET /public/weddings/{uniqueURL}/guestbook", mediaController.ListGuestBookEntries)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
