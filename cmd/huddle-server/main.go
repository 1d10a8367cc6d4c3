package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/huddleapp/huddle/pkg/huddle/auth"
	"github.com/huddleapp/huddle/pkg/huddle/database"
	"github.com/huddleapp/huddle/pkg/huddle/groups"
	"github.com/huddleapp/huddle/pkg/huddle/models"
	"github.com/huddleapp/huddle/pkg/huddle/posts"
	"github.com/huddleapp/huddle/pkg/huddle/users"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Huddle API
// @version 1.0
// @description A community group posting service: join groups, publish posts and events.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name huddle_session
// @description Session token cookie set by /auth/login

func main() {
	// Get database path from environment or use default
	dbPath := os.Getenv("HUDDLE_DB_PATH")
	if dbPath == "" {
		dbPath = "huddle.db"
	}

	db, err := database.Connect(dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Session signing secret, constructed once and injected everywhere
	secret := os.Getenv("HUDDLE_SESSION_SECRET")
	if secret == "" {
		// Default for development only - should be set in production
		secret = "huddle-dev-secret-change-in-production"
		log.Println("HUDDLE_SESSION_SECRET not set - using development default")
	}
	tokens := auth.NewTokenService(secret)

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "huddle",
			})
		})

		sessionGuard := auth.Middleware(tokens)

		// Auth routes (public; verify guards itself)
		authHandler := auth.NewHandler(db, tokens)
		authHandler.RegisterRoutes(api.Group("/auth"))

		// User dashboard (session required)
		usersHandler := users.NewHandler(db)
		usersHandler.RegisterRoutes(api.Group("/user", sessionGuard))

		// Group routes: listing is public, everything else needs a session
		groupsHandler := groups.NewHandler(db)
		groupsHandler.RegisterPublicRoutes(api.Group("/groups"))
		groupsHandler.RegisterRoutes(api.Group("/groups", sessionGuard))

		// Post routes (session required)
		postsHandler := posts.NewHandler(db)
		postsHandler.RegisterRoutes(api.Group("/posts", sessionGuard))
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting Huddle server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
