package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/igr/media-backend/internal/handlers"
	"github.com/igr/media-backend/internal/middleware"
	"github.com/igr/media-backend/internal/models"
	"github.com/igr/media-backend/internal/repositories"
	"github.com/igr/media-backend/internal/services"
	"github.com/igr/media-backend/internal/storage"
	"github.com/igr/media-backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Friend{},
		&models.PostReading{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories and services ---
	mongoDB := mgClient.Database("media")
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	friendRepo := repositories.NewPostgresFriendRepository(pgdb)
	readingRepo := repositories.NewPostgresPostReadingRepository(pgdb)
	messageRepo := repositories.NewMongoMessageRepository(mongoDB)
	postRepo := repositories.NewMongoPostRepository(mongoDB)

	avatarStore := storage.NewAvatarStore(cfg.UserPhotoDir)
	securityService := services.NewSecurityService(models.RoleUser)
	userService := services.NewUserService(userRepo, friendRepo, readingRepo, messageRepo, postRepo, avatarStore, securityService)

	// --- Unprotected routes ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	userHandler := handlers.NewUserHandler(userService)
	userHandler.RegisterPublicRoutes(e)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	friendHandler := handlers.NewFriendHandler(userService)
	friendHandler.RegisterFriendRoutes(api)
	log.Println("Friend routes configured.")

	postHandler := handlers.NewPostHandler(postRepo, readingRepo)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	log.Println("All routes configured.")
}
