package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"

	"word-market/internal/auth"
	"word-market/internal/cache"
	"word-market/internal/classifier"
	"word-market/internal/config"
	"word-market/internal/content"
	"word-market/internal/database"
	"word-market/internal/handlers"
	"word-market/internal/middleware"
	"word-market/internal/payment"
	"word-market/internal/repository"
	"word-market/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Cache: redis when configured, in-memory otherwise
	var cacheRepo cache.Repository
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		cacheRepo = cache.NewRedisRepository(redis.NewClient(opts))
		log.Println("Using redis cache")
	} else {
		cacheRepo = cache.NewMemoryRepository(time.Minute)
		log.Println("Using in-memory cache")
	}

	// Toxicity classifier, constructed once and injected into the gate
	var cls classifier.Classifier
	if cfg.Moderation.ClassifierURL != "" {
		cls = classifier.NewHTTPClassifier(cfg.Moderation.ClassifierURL, cfg.Moderation.ClassifierAPIKey)
		log.Println("Toxicity classifier enabled")
	} else {
		log.Println("No classifier configured, content gate runs format rules only")
	}

	gate := content.NewGate(cls, content.Config{
		WordThreshold:    cfg.Moderation.WordThreshold,
		MessageThreshold: cfg.Moderation.MessageThreshold,
		ReportThreshold:  cfg.Moderation.ReportThreshold,
		FailOpen:         true,
	})

	// Payment verification: provider-backed when configured
	var verifier payment.Verifier
	if cfg.Payment.ProviderURL != "" {
		verifier = payment.NewHTTPVerifier(cfg.Payment.ProviderURL, cfg.Payment.SecretKey)
	} else {
		verifier = payment.NoopVerifier{}
		log.Println("Warning: no payment provider configured, all purchases are accepted")
	}

	// Initialize repository and services
	repo := repository.NewRepository(database.GetDB())
	wordService := services.NewWordService(database.GetDB(), repo, gate)
	moderationService := services.NewModerationService(database.GetDB(), repo, gate)
	adminService := services.NewAdminService(database.GetDB(), repo)

	// Initialize handlers
	wordHandler := handlers.NewWordHandler(wordService)
	purchaseHandler := handlers.NewPurchaseHandler(wordService, verifier, cacheRepo)
	moderationHandler := handlers.NewModerationHandler(moderationService)
	leaderboardHandler := handlers.NewLeaderboardHandler(repo, wordService, cacheRepo)
	adminHandler := handlers.NewAdminHandler(adminService, cfg.App.AdminPasswordHash, cacheRepo)

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if cfg.Server.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.Server.FrontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiting and error logging
	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateLimitBurst)
	router.Use(middleware.RateLimit(limiter))
	router.Use(middleware.ErrorLogger(adminService))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Public word routes
	api := router.Group("/api")
	{
		api.GET("/words/search", wordHandler.SearchWords)
		api.GET("/words/random", wordHandler.RandomWord)
		api.GET("/words/:word", wordHandler.GetWord)

		api.POST("/purchase/intent", purchaseHandler.CreatePaymentIntent)
		api.POST("/purchase/add/:word", purchaseHandler.AddWord)
		api.POST("/purchase/:word", purchaseHandler.StealWord)

		api.POST("/report/:id", moderationHandler.ReportMessage)

		api.GET("/leaderboard/expensive", leaderboardHandler.MostExpensive)
		api.GET("/leaderboard/recent", leaderboardHandler.RecentPurchases)
		api.GET("/leaderboard/stats", leaderboardHandler.Stats)
	}

	// Admin routes (protected)
	router.POST("/api/admin/login", adminHandler.Login)

	admin := router.Group("/api/admin")
	admin.Use(auth.AdminMiddleware())
	{
		admin.GET("/dashboard", adminHandler.GetDashboard)
		admin.GET("/income", adminHandler.GetIncomeStats)
		admin.GET("/popular-words", adminHandler.GetPopularWords)
		admin.GET("/errors", adminHandler.GetRecentErrors)
		admin.POST("/reset-word", adminHandler.ResetWord)
		admin.GET("/moderation/queue", moderationHandler.PendingQueue)
		admin.POST("/moderation/:id", moderationHandler.Adjudicate)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
