package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spacelister/internal/config"
	"spacelister/internal/handler"
	"spacelister/internal/repository"
	"spacelister/internal/service"
	"spacelister/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("SpaceLister Listing Assistant")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize session store
	var sessionStore store.SessionStore
	if cfg.Redis.Enabled {
		redisStore, err := store.NewRedisStore(
			cfg.RedisAddr(),
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Session.TTLHours)*time.Hour,
		)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		sessionStore = redisStore
		log.Println("✅ Connected to Redis session store")
	} else {
		sessionStore = store.NewMemoryStore()
		log.Println("⚠️  Redis is disabled - sessions are kept in memory only")
		log.Println("   Set REDIS_HOST environment variable to enable persistent sessions")
	}

	// Initialize listing store
	var listingStore repository.ListingStore
	if cfg.PostgreSQL.DSN != "" {
		repo, err := repository.NewPostgresRepository(
			cfg.PostgreSQL.DSN,
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := repo.CreateTable(); err != nil {
			log.Fatalf("Failed to create listings table: %v", err)
		}
		defer repo.Close()
		listingStore = repo
		log.Println("✅ Connected to PostgreSQL database")
	} else {
		listingStore = repository.NewMemoryRepository()
		log.Println("⚠️  PostgreSQL is disabled - published listings are kept in memory only")
		log.Println("   Set DATABASE_URL environment variable to enable persistent listings")
	}

	// Initialize OpenAI client
	var aiClient service.AIClient
	if cfg.OpenAI.Enabled {
		openaiClient := service.NewOpenAIClient(&cfg.OpenAI)
		aiClient = openaiClient
		log.Printf("✅ OpenAI client initialized")
		log.Printf("   - API Base: %s", cfg.OpenAI.APIBase)
		log.Printf("   - Chat model: %s", cfg.OpenAI.ChatModel)
		log.Printf("   - Chat Temperature: %.2f", cfg.OpenAI.ChatTemperature)
		log.Printf("   - Chat MaxTokens: %d", cfg.OpenAI.ChatMaxTokens)
	} else {
		log.Println("⚠️  OpenAI is disabled - replies use the rule-based generator")
		log.Println("   Set OPENAI_API_KEY environment variable to enable AI replies")
	}

	// Initialize services
	conversationService := service.NewConversationService(sessionStore, aiClient)
	listingService := service.NewListingService(listingStore)

	log.Println("✅ Services initialized")

	// Initialize handlers
	chatHandler := handler.NewChatHandler(conversationService)
	listingHandler := handler.NewListingHandler(listingService, conversationService)
	pricingHandler := handler.NewPricingHandler()

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "spacelister",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Conversation endpoints
		apiV1.POST("/chat", chatHandler.Chat)
		apiV1.POST("/chat/amenities", chatHandler.SetAmenities)
		apiV1.POST("/chat/features", chatHandler.SetFeatures)
		apiV1.GET("/sessions/:id", chatHandler.GetSession)

		// Pricing endpoint
		apiV1.POST("/pricing/suggest", pricingHandler.Suggest)

		// Listing endpoints
		apiV1.POST("/listings", listingHandler.Publish)
		apiV1.GET("/listings", listingHandler.List)
		apiV1.GET("/listings/:id", listingHandler.Get)
		apiV1.GET("/listings/:id/export", listingHandler.Export)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API root: http://localhost:%d/api/v1", cfg.Server.Port)

	// Graceful shutdown
	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
