package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"weddingstudio/config"
	"weddingstudio/internal/adapters/auth"
	"weddingstudio/internal/adapters/email"
	deliveryhttp "weddingstudio/internal/delivery/http"
	"weddingstudio/internal/delivery/http/controllers"
	"weddingstudio/internal/delivery/http/middleware"
	"weddingstudio/internal/repository/postgres"
	"weddingstudio/internal/services"
)

// @title Wedding Studio API
// @version 1.0
// @description Wedding website backend: wedding sites, guests and RSVPs, invitation delivery tracking, and collaborator access grants.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "error", err)
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailerProvider,
		FromAddress: cfg.MailerFromAddress,
		FromName:    cfg.MailerFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	weddingRepo := postgres.NewWeddingRepository(db)
	guestRepo := postgres.NewGuestRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)
	collaboratorRepo := postgres.NewCollaboratorRepository(db)
	accessRepo := postgres.NewWeddingAccessRepository(db)
	photoRepo := postgres.NewPhotoRepository(db)
	guestBookRepo := postgres.NewGuestBookRepository(db)

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := auth.NewJWTCodec(cfg.JWTSecret)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	const timeout = 5 * time.Second
	permissions := services.NewPermissionService(weddingRepo, accessRepo, timeout)
	authService := services.NewAuthService(userRepo, hasher, tokens, timeout)
	weddingService := services.NewWeddingService(weddingRepo, permissions, timeout)
	guestService := services.NewGuestService(guestRepo, weddingRepo, permissions, timeout)
	invitationService := services.NewInvitationService(invitationRepo, guestRepo, weddingRepo, permissions, emailService, timeout)
	accessService := services.NewAccessService(permissions, accessRepo, collaboratorRepo, weddingRepo, userRepo, emailService, timeout)
	statsService := services.NewStatsService(guestRepo, invitationRepo, collaboratorRepo, photoRepo, guestBookRepo, permissions, timeout)
	photoService := services.NewPhotoService(photoRepo, permissions, timeout)
	guestBookService := services.NewGuestBookService(guestBookRepo, weddingRepo, timeout)

	mux := deliveryhttp.NewRouter(
		tokens,
		controllers.NewAuthController(logger, authService),
		controllers.NewWeddingController(logger, weddingService, statsService),
		controllers.NewGuestController(logger, guestService),
		controllers.NewInvitationController(logger, invitationService),
		controllers.NewAccessController(logger, accessService),
		controllers.NewMediaController(logger, photoService, guestBookService),
	)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.LoggingMiddleware(logger, mux))

	addr := ":" + cfg.Port
	logger.Info("server starting", "addr", addr, "environment", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
