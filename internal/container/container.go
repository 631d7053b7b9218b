package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campushub/api/internal/config"
	"github.com/campushub/api/internal/mailer"
	"github.com/campushub/api/internal/models"
	"github.com/campushub/api/internal/otp"
	"github.com/campushub/api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger        *slog.Logger
	Cloudinary    *cloudinary.Cloudinary
	MongoDBClient *mongo.Client

	UserRepo models.UserRepo

	UserService         *services.UserService
	EventService        *services.EventService
	RegistrationService *services.RegistrationService
	FeedbackService     *services.FeedbackService
	StatsService        *services.StatsService

	JWTSecret string
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cld *cloudinary.Cloudinary,
	mongoDBClient *mongo.Client,
	cfg *config.Config,
) *Container {
	repo := models.MongodbNewRepo(mongoDBClient)
	mail := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	otpStore := otp.NewCacheStore(otp.DefaultTTL)

	userService := services.NewUserService(repo, mail, otpStore, logger, cfg.JWTSecret, cfg.JWTExpiry, cfg.ClientURL)
	eventService := services.NewEventService(repo, repo, cld, logger)
	registrationService := services.NewRegistrationService(repo, repo, repo, logger)
	feedbackService := services.NewFeedbackService(repo, repo, repo, repo, logger)
	statsService := services.NewStatsService(repo, repo, repo, repo, logger)

	return &Container{
		Logger:              logger,
		Cloudinary:          cld,
		MongoDBClient:       mongoDBClient,
		UserRepo:            repo,
		UserService:         userService,
		EventService:        eventService,
		RegistrationService: registrationService,
		FeedbackService:     feedbackService,
		StatsService:        statsService,
		JWTSecret:           cfg.JWTSecret,
	}
}
