package routes

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/campushub/api/internal/container"
	"github.com/campushub/api/internal/handlers"
	"github.com/campushub/api/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	clientURL := os.Getenv("CLIENT_URL")
	if clientURL == "" {
		clientURL = "http://localhost:3000"
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{clientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", "x-auth-token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	auth := middleware.Auth(container.UserRepo, container.JWTSecret, container.Logger)
	adminOnly := middleware.RequireRole("admin")
	studentOnly := middleware.RequireRole("student")

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "campushub-api",
			})
		})

		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/signup", handlers.Signup(container.UserService))
			authRoutes.POST("/login", handlers.Login(container.UserService))
			authRoutes.POST("/send-otp", handlers.SendOtp(container.UserService))
			authRoutes.POST("/verify-otp", handlers.VerifyOtp(container.UserService))
			authRoutes.POST("/reset-password", handlers.ResetPassword(container.UserService))
			authRoutes.GET("/me", auth, handlers.Me())
		}

		eventRoutes := v1.Group("/events")
		{
			eventRoutes.GET("/", handlers.ListEvents(container.EventService))
			eventRoutes.GET("/:id", handlers.GetEvent(container.EventService))

			eventRoutes.POST("/", auth, adminOnly, handlers.CreateEvent(container.EventService))
			eventRoutes.PUT("/:id", auth, adminOnly, handlers.UpdateEvent(container.EventService))
			eventRoutes.DELETE("/:id", auth, adminOnly, handlers.DeleteEvent(container.EventService))

			eventRoutes.POST("/:id/register", auth, studentOnly, handlers.RegisterForEvent(container.RegistrationService))
			eventRoutes.DELETE("/:id/register", auth, studentOnly, handlers.CancelRegistration(container.RegistrationService))
		}

		registrationRoutes := v1.Group("/registrations")
		registrationRoutes.Use(auth)
		{
			registrationRoutes.GET("/my", handlers.MyRegistrations(container.RegistrationService))
			registrationRoutes.GET("/", adminOnly, handlers.ListRegistrations(container.RegistrationService))
			registrationRoutes.PUT("/:id/approve", adminOnly, handlers.ApproveRegistration(container.RegistrationService))
			registrationRoutes.PUT("/:id/reject", adminOnly, handlers.RejectRegistration(container.RegistrationService))
			registrationRoutes.DELETE("/:id", handlers.DeleteRegistration(container.RegistrationService))
		}

		feedbackRoutes := v1.Group("/feedback")
		feedbackRoutes.Use(auth)
		{
			feedbackRoutes.POST("/:eventId", handlers.SubmitFeedback(container.FeedbackService))
			feedbackRoutes.GET("/:eventId", handlers.GetEventFeedback(container.FeedbackService))
			feedbackRoutes.GET("/:eventId/me", handlers.MyEventFeedback(container.FeedbackService))
		}

		statsRoutes := v1.Group("/stats")
		statsRoutes.Use(auth, adminOnly)
		{
			statsRoutes.GET("/", handlers.AdminStats(container.StatsService))
		}
	}

	return r
}
