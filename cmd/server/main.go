package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/talentaworks/talenta-backend/internal/config"
	"github.com/talentaworks/talenta-backend/internal/database"
	"github.com/talentaworks/talenta-backend/internal/handlers"
	"github.com/talentaworks/talenta-backend/internal/middleware"
	"github.com/talentaworks/talenta-backend/internal/routes"
	"github.com/talentaworks/talenta-backend/internal/services"
	"github.com/talentaworks/talenta-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	if cfg.MongoURI != "" {
		// Mask password in log for security
		maskedURI := cfg.MongoURI
		if strings.Contains(maskedURI, "@") {
			parts := strings.Split(maskedURI, "@")
			if len(parts) > 0 && strings.Contains(parts[0], ":") {
				userPass := strings.Split(parts[0], ":")
				if len(userPass) >= 3 {
					maskedURI = strings.Replace(maskedURI, userPass[2], "***", 1)
				}
			}
		}
		log.Printf("MongoDB URI: %s", maskedURI)
	}
	mongoDB, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoDB.Disconnect()

	if err := mongoDB.EnsureIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB indexes: %v", err)
	} else {
		log.Println("✅ MongoDB indexes ensured")
	}

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	rdb, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer rdb.Close()

	// Initialize Cloudinary service
	var cloudinarySvc *services.CloudinaryService
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cloudinarySvc, err = services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("File uploads will not be available")
			cloudinarySvc = nil
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. File uploads will not be available")
	}

	// Stores
	userStore := store.NewUserStore(mongoDB.DB)
	activityStore := store.NewActivityStore(mongoDB.DB)
	leaderboardStore := store.NewLeaderboardStore(mongoDB.DB)
	bountyStore := store.NewBountyStore(mongoDB.DB)
	donationStore := store.NewDonationStore(mongoDB.DB)

	// Services
	feedSvc := services.NewFeedService(rdb)
	boardSvc := services.NewLeaderboardService(leaderboardStore, userStore, activityStore)
	pointsSvc := services.NewPointsService(userStore, activityStore, boardSvc, feedSvc)
	activitySvc := services.NewActivityService(activityStore, feedSvc)
	userSvc := services.NewUserService(userStore, pointsSvc, boardSvc)
	bountySvc := services.NewBountyService(bountyStore, userStore, pointsSvc, activitySvc)
	donationSvc := services.NewDonationService(donationStore, userStore, pointsSvc, activitySvc)
	sessions := services.NewSessions(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the shared feed subscriber and periodic leaderboard reconciliation
	feedSvc.Start(ctx)
	boardSvc.StartReconciler(ctx, time.Hour)
	log.Println("✅ Leaderboard reconciler started (runs every hour)")

	// Setup router
	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(rdb))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, routes.Handlers{
		Auth:        handlers.NewAuthHandler(userSvc, sessions),
		Users:       handlers.NewUsersHandler(userSvc),
		Points:      handlers.NewPointsHandler(pointsSvc),
		Activities:  handlers.NewActivitiesHandler(activitySvc),
		Leaderboard: handlers.NewLeaderboardHandler(boardSvc),
		Bounties:    handlers.NewBountiesHandler(bountySvc),
		Donations:   handlers.NewDonationsHandler(donationSvc),
		Upload:      handlers.NewUploadHandler(cloudinarySvc),
		Feed:        handlers.NewFeedHandler(feedSvc),
	})

	log.Printf("🚀 Talenta backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
