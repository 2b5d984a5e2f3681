package main

import (
	"log"
	"net/http"

	"pharmacy-api/config"
	"pharmacy-api/middleware"
	"pharmacy-api/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables (.env is optional)
	_ = godotenv.Load()

	cfg := config.Load()
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	config.InitDB(cfg.DBPath)

	// Token signing key is injected here, not read from a global
	auth := middleware.NewAuthenticator([]byte(cfg.SecretKey))

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS for frontend integration
	r.Use(cors.Default())

	// Uploaded profile images are served statically
	r.Static("/uploads", cfg.UploadDir)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Pharmacy E-commerce API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "💊 Welcome to the Pharmacy E-commerce API",
			"health":  "/health",
		})
	})

	// Register all routes
	routes.SetupRoutes(r, auth, cfg.UploadDir)

	// Start server
	log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
