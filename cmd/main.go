package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/socialpro-hub/content-service/internal/cache"
	"github.com/socialpro-hub/content-service/internal/clients/genai"
	"github.com/socialpro-hub/content-service/internal/config"
	"github.com/socialpro-hub/content-service/internal/events"
	"github.com/socialpro-hub/content-service/internal/handlers"
	"github.com/socialpro-hub/content-service/internal/health"
	"github.com/socialpro-hub/content-service/internal/middleware"
	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/repository"
	"github.com/socialpro-hub/content-service/internal/services"
	"github.com/socialpro-hub/content-service/internal/workers"
)

func main() {
	// Check if running health check
	if len(os.Args) > 1 && os.Args[1] == "health" {
		resp, err := http.Get("http://localhost:8087/livez")
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.NewConfig()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Run database migrations
	if err := runMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize NATS events publisher (graceful degradation if unavailable)
	var publisher events.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = events.NewPublisher(cfg.NATS.URL, logger)
		if err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (events won't be published)", err)
			publisher = nil
		} else {
			log.Println("✓ NATS events publisher initialized")
		}
	} else {
		log.Println("NATS_URL not set, event publishing disabled")
	}

	// Initialize Redis client (graceful degradation if unavailable)
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Printf("WARNING: Failed to parse Redis URL: %v (caching disabled)", err)
		} else {
			redisClient = redis.NewClient(opt)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Printf("WARNING: Failed to connect to Redis: %v (caching disabled)", err)
				redisClient = nil
			} else {
				log.Println("✓ Redis connection established")
			}
		}
	}

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	postRepo := repository.NewPostRepository(db)
	metricRepo := repository.NewMetricRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	hashtagRepo := repository.NewHashtagRepository(db)
	ideaRepo := repository.NewIdeaRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize services
	dashboardCache := cache.NewDashboardCache(redisClient)
	analyticsService := services.NewAnalyticsService(analyticsRepo, dashboardCache, logger)
	postService := services.NewPostService(postRepo, publisher, logger)
	genaiClient := genai.NewClient(cfg.GenAI.BaseURL, cfg.GenAI.APIKey, cfg.GenAI.Model, 0)
	aiStudioService := services.NewAIStudioService(genaiClient, ideaRepo, logger)
	seedService := services.NewSeedService(db, publisher, logger)

	// Start the scheduled post publisher
	scheduler := workers.NewPublishScheduler(db, publisher, workers.DefaultScanInterval)
	scheduler.Start()

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(accountRepo, analyticsService, publisher, logger)
	postHandler := handlers.NewPostHandler(postService, analyticsService)
	metricHandler := handlers.NewMetricHandler(metricRepo, analyticsService)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotRepo)
	calendarHandler := handlers.NewCalendarHandler(calendarRepo, postRepo)
	hashtagHandler := handlers.NewHashtagHandler(hashtagRepo, analyticsService)
	ideaHandler := handlers.NewIdeaHandler(ideaRepo, analyticsService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	aiStudioHandler := handlers.NewAIStudioHandler(aiStudioService, analyticsService)
	seedHandler := handlers.NewSeedHandler(seedService, analyticsService)

	// Initialize health checker
	healthChecker := health.NewHealthChecker(db, cfg.App.Version)

	// Initialize Gin router
	router := setupRouter(routerDeps{
		accounts:  accountHandler,
		posts:     postHandler,
		metrics:   metricHandler,
		snapshots: snapshotHandler,
		calendar:  calendarHandler,
		hashtags:  hashtagHandler,
		ideas:     ideaHandler,
		analytics: analyticsHandler,
		aiStudio:  aiStudioHandler,
		seed:      seedHandler,
		health:    healthChecker,
	})

	// Mark service as ready
	healthChecker.SetReady(true)

	// Start server
	serverAddr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Printf("🚀 Content Service starting on %s", serverAddr)
	log.Printf("🏥 Health endpoints: /health, /livez, /readyz")
	log.Printf("📊 Metrics available at http://%s/metrics", serverAddr)

	// Graceful shutdown handling
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		scheduler.Stop()
		if publisher != nil {
			publisher.Close()
		}
		if redisClient != nil {
			redisClient.Close()
		}
		os.Exit(0)
	}()

	if err := router.Run(serverAddr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// initializeDatabase establishes database connection
func initializeDatabase(dbConfig config.DatabaseConfig) (*gorm.DB, error) {
	dsn := dbConfig.DSN()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL database for ping
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying database: %w", err)
	}

	// Test database connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Database connection established successfully")
	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *gorm.DB) error {
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.SocialAccount{},
		&models.Post{},
		&models.PostMetric{},
		&models.ContentCalendarEntry{},
		&models.HashtagGroup{},
		&models.AudienceSnapshot{},
		&models.AIContentIdea{},
	); err != nil {
		log.Printf("⚠️  AutoMigrate warning: %v", err)
		// Don't fail - the table may already exist with slightly different schema
	}

	log.Println("✅ Database migrations completed successfully")
	return nil
}

type routerDeps struct {
	accounts  *handlers.AccountHandler
	posts     *handlers.PostHandler
	metrics   *handlers.MetricHandler
	snapshots *handlers.SnapshotHandler
	calendar  *handlers.CalendarHandler
	hashtags  *handlers.HashtagHandler
	ideas     *handlers.IdeaHandler
	analytics *handlers.AnalyticsHandler
	aiStudio  *handlers.AIStudioHandler
	seed      *handlers.SeedHandler
	health    *health.HealthChecker
}

// setupRouter configures the Gin router with middleware and routes
func setupRouter(deps routerDeps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.SetupCORS())
	router.Use(health.MetricsMiddleware())

	// Health and observability endpoints (no tenant context required)
	router.GET("/health", deps.health.HealthHandler)
	router.GET("/livez", deps.health.LivezHandler)
	router.GET("/readyz", deps.health.ReadyzHandler)
	router.GET("/metrics", health.MetricsHandler())

	// API v1 routes, all tenant scoped
	v1 := router.Group("/api/v1")
	v1.Use(middleware.TenantMiddleware())
	v1.Use(middleware.AuthMiddleware())
	{
		accounts := v1.Group("/accounts")
		{
			accounts.GET("", deps.accounts.ListAccounts)
			accounts.POST("", deps.accounts.CreateAccount)
			accounts.GET("/:id", deps.accounts.GetAccount)
			accounts.PATCH("/:id", deps.accounts.UpdateAccount)
			accounts.DELETE("/:id", deps.accounts.DeleteAccount)
		}

		posts := v1.Group("/posts")
		{
			posts.GET("", deps.posts.ListPosts)
			posts.POST("", deps.posts.CreatePost)
			posts.GET("/upcoming", deps.posts.ListUpcoming)
			posts.GET("/:id", deps.posts.GetPost)
			posts.PATCH("/:id", deps.posts.UpdatePost)
			posts.DELETE("/:id", deps.posts.DeletePost)
			posts.POST("/:id/schedule", deps.posts.SchedulePost)
			posts.POST("/:id/publish", deps.posts.PublishPost)
		}

		metrics := v1.Group("/metrics")
		{
			metrics.GET("", deps.metrics.ListMetrics)
			metrics.POST("", deps.metrics.CreateMetric)
			metrics.GET("/:id", deps.metrics.GetMetric)
			metrics.PATCH("/:id", deps.metrics.UpdateMetric)
			metrics.DELETE("/:id", deps.metrics.DeleteMetric)
		}

		snapshots := v1.Group("/snapshots")
		{
			snapshots.GET("", deps.snapshots.ListSnapshots)
			snapshots.POST("", deps.snapshots.CreateSnapshot)
			snapshots.GET("/:id", deps.snapshots.GetSnapshot)
			snapshots.PATCH("/:id", deps.snapshots.UpdateSnapshot)
			snapshots.DELETE("/:id", deps.snapshots.DeleteSnapshot)
		}

		calendar := v1.Group("/calendar")
		{
			calendar.GET("", deps.calendar.ListEntries)
			calendar.POST("", deps.calendar.CreateEntry)
			calendar.GET("/day/:date", deps.calendar.DayView)
			calendar.GET("/:id", deps.calendar.GetEntry)
			calendar.PATCH("/:id", deps.calendar.UpdateEntry)
			calendar.DELETE("/:id", deps.calendar.DeleteEntry)
		}

		hashtags := v1.Group("/hashtag-groups")
		{
			hashtags.GET("", deps.hashtags.ListGroups)
			hashtags.POST("", deps.hashtags.CreateGroup)
			hashtags.GET("/:id", deps.hashtags.GetGroup)
			hashtags.PATCH("/:id", deps.hashtags.UpdateGroup)
			hashtags.DELETE("/:id", deps.hashtags.DeleteGroup)
		}

		ideas := v1.Group("/ideas")
		{
			ideas.GET("", deps.ideas.ListIdeas)
			ideas.POST("", deps.ideas.CreateIdea)
			ideas.GET("/:id", deps.ideas.GetIdea)
			ideas.PATCH("/:id", deps.ideas.UpdateIdea)
			ideas.DELETE("/:id", deps.ideas.DeleteIdea)
		}

		analytics := v1.Group("/analytics")
		{
			analytics.GET("/dashboard", deps.analytics.Dashboard)
			analytics.GET("/series", deps.analytics.MetricSeries)
			analytics.GET("/top-posts", deps.analytics.TopPosts)
			analytics.GET("/totals", deps.analytics.Totals)
			analytics.GET("/audience-growth", deps.analytics.AudienceGrowth)
		}

		ai := v1.Group("/ai")
		{
			ai.GET("/status", deps.aiStudio.Status)
			ai.POST("/generate", deps.aiStudio.GenerateIdeas)
			ai.POST("/caption", deps.aiStudio.WriteCaption)
			ai.POST("/hashtags", deps.aiStudio.ResearchHashtags)
			ai.POST("/repurpose", deps.aiStudio.RepurposeContent)
		}

		v1.POST("/seed", deps.seed.SeedTenant)
	}

	return router
}
