package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/KingCobra-dev/goprompt-sub000/internal/gateway"
	"github.com/KingCobra-dev/goprompt-sub000/internal/handlers"
	"github.com/KingCobra-dev/goprompt-sub000/internal/middleware"
	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Repo{},
		&models.Heart{},
		&models.Save{},
		&models.Follow{},
		&models.RepoStar{},
		&models.Collection{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Gateways ---
	profiles := gateway.NewPostgresProfileGateway(pgdb)
	prompts := gateway.NewMongoPromptGateway(mgClient.Database("promptsgo"))
	repos := gateway.NewPostgresRepoGateway(pgdb)
	social := gateway.NewPostgresSocialGateway(pgdb)
	comments := gateway.NewPostgresCommentGateway(pgdb)
	notifications := gateway.NewPostgresNotificationGateway(pgdb)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(profiles)
	authHandler.RegisterAuthRoutes(authGroup, middleware.FirebaseAuthMiddleware(firebaseAuthClient))
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// Profile routes
	profileHandler := handlers.NewProfileHandler(profiles, social)
	profileHandler.RegisterProfileRoutes(api)
	log.Println("Profile routes configured.")

	// Prompt routes
	promptHandler := handlers.NewPromptHandler(prompts, repos, social, profiles)
	promptHandler.RegisterPromptRoutes(api)
	log.Println("Prompt routes configured.")

	// Repo routes
	repoHandler := handlers.NewRepoHandler(repos, prompts, social, notifications, profiles)
	repoHandler.RegisterRepoRoutes(api)
	log.Println("Repo routes configured.")

	// Heart routes
	heartHandler := handlers.NewHeartHandler(social, prompts)
	heartHandler.RegisterHeartRoutes(api)
	log.Println("Heart routes configured.")

	// Save routes
	saveHandler := handlers.NewSaveHandler(social, prompts, notifications, profiles)
	saveHandler.RegisterSaveRoutes(api)
	log.Println("Save routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(social, profiles, notifications)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(comments, prompts, profiles, notifications)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notifications, profiles)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
