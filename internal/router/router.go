package router

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spincrate/backend/internal/handlers"
	"github.com/spincrate/backend/internal/lookup"
	"github.com/spincrate/backend/internal/middleware"
	"github.com/spincrate/backend/internal/models"
	"github.com/spincrate/backend/internal/notifier"
	"github.com/spincrate/backend/internal/realtime"
	"github.com/spincrate/backend/internal/repositories"
	"github.com/spincrate/backend/pkg/config"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware and the error shape.
// Every error response is {"error": "<message>"}.
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.HTTPErrorHandler = errorHandler
	log.Println("Global middleware configured.")
}

func errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	} else {
		log.Printf("unhandled error: %v", err)
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
		} else {
			_ = c.JSON(code, map[string]string{"error": message})
		}
	}
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, hub *realtime.Hub) {
	// AutoMigrate PostgreSQL models
	err := db.AutoMigrate(
		&models.User{},
		&models.Vinyl{},
		&models.Follow{},
		&models.Like{},
		&models.Comment{},
		&models.CommentLike{},
		&models.Notification{},
		&models.PushSubscription{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	vinylRepo := repositories.NewPostgresVinylRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	commentLikeRepo := repositories.NewPostgresCommentLikeRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	subscriptionRepo := repositories.NewPostgresPushSubscriptionRepository(db)

	// --- Notification fan-out: row + web push + realtime ---
	var pushSender notifier.PushSender
	if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey != "" {
		pushSender = notifier.NewWebPushSender(cfg.VAPIDSubscriber, cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
	} else {
		log.Println("VAPID keys not configured, web push delivery disabled.")
	}
	emitter := notifier.NewNotifier(notificationRepo, subscriptionRepo, userRepo, hub, pushSender)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// Realtime channel authenticates its own token query parameter
	wsHandler := handlers.NewWSHandler(hub)
	wsHandler.RegisterWSRoutes(e.Group("/api/v1"))

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo, followRepo, vinylRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Catalogue routes
	vinylGroup := api.Group("/vinyls")
	vinylHandler := handlers.NewVinylHandler(vinylRepo, userRepo, followRepo)
	vinylHandler.RegisterVinylRoutes(vinylGroup)
	lookupHandler := handlers.NewLookupHandler(lookup.NewClient(cfg.LookupBaseURL, cfg.CoverArtBaseURL))
	lookupHandler.RegisterLookupRoutes(vinylGroup)
	log.Println("Catalogue routes configured.")

	// Follow graph and feed routes
	followGroup := api.Group("/followers")
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, emitter)
	followHandler.RegisterFollowRoutes(followGroup)
	feedHandler := handlers.NewFeedHandler(vinylRepo, userRepo)
	feedHandler.RegisterFeedRoutes(followGroup)
	log.Println("Follow routes configured.")

	// Interaction routes
	interactionGroup := api.Group("/interactions")
	likeHandler := handlers.NewLikeHandler(likeRepo, vinylRepo, userRepo, followRepo, emitter)
	likeHandler.RegisterLikeRoutes(interactionGroup)
	commentHandler := handlers.NewCommentHandler(commentRepo, commentLikeRepo, vinylRepo, userRepo, followRepo, emitter)
	commentHandler.RegisterCommentRoutes(interactionGroup)
	log.Println("Interaction routes configured.")

	// Notification routes
	notificationGroup := api.Group("/notifications")
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, subscriptionRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(notificationGroup)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
