package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Shishir2405/notenex-api/internal/config"
	"github.com/Shishir2405/notenex-api/internal/handlers"
	"github.com/Shishir2405/notenex-api/internal/middleware"
	"github.com/Shishir2405/notenex-api/internal/services"
)

func Setup(db *gorm.DB, cfg *config.Config, log *zap.Logger) *gin.Engine {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		log.Warn("failed to initialize storage service", zap.Error(err))
	}

	tikaService := services.NewTextExtractionService(cfg)
	searchService := services.NewSearchService(cfg, log)
	activityService := services.NewActivityService(db)
	engagementService := services.NewEngagementService(db)
	discoveryService := services.NewDiscoveryService(db)
	leaderboardService := services.NewLeaderboardService(db)
	emailService := services.NewEmailService(cfg)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RedisURL)
	if err != nil {
		log.Warn("failed to initialize rate limiter", zap.Error(err))
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(middleware.Metrics())

	// Health and metrics endpoints
	r.GET("/health", handlers.HealthCheck(db))
	r.GET("/metrics", gin.WrapH(middleware.MetricsHandler()))

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// Public routes
		auth := api.Group("/auth")
		if rateLimiter != nil {
			auth.Use(rateLimiter.RateLimitByIP(20, 900))
		}
		{
			auth.POST("/register", handlers.Register(db, cfg))
			auth.POST("/login", handlers.Login(db, cfg))
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(db, cfg))
		{
			// Auth
			protected.GET("/auth/me", handlers.GetCurrentUser(db))

			// Notes: discovery + upload
			protected.GET("/notes", handlers.ListNotes(discoveryService))
			protected.POST("/notes", handlers.UploadNote(db, cfg, storageService, tikaService, engagementService, activityService))
			protected.GET("/notes/:id", handlers.GetNote(db, engagementService))
			if rateLimiter != nil {
				protected.GET("/notes/:id/download",
					rateLimiter.RateLimitByIP(120, 3600),
					handlers.DownloadNote(db, storageService, engagementService))
			} else {
				protected.GET("/notes/:id/download", handlers.DownloadNote(db, storageService, engagementService))
			}

			// Engagement
			protected.POST("/notes/:id/like", handlers.ToggleLike(engagementService))
			protected.POST("/notes/:id/bookmark", handlers.ToggleBookmark(engagementService))
			protected.GET("/notes/:id/comments", handlers.GetNoteComments(db))
			protected.POST("/notes/:id/comments", handlers.AddComment(engagementService))
			protected.POST("/notes/:id/report", handlers.ReportNote(engagementService))

			// Search and leaderboard
			protected.GET("/search", handlers.Search(searchService))
			protected.GET("/leaderboard", handlers.Leaderboard(leaderboardService))

			// Profile
			protected.PUT("/users/me", handlers.UpdateProfile(db))
			protected.GET("/users/me/notes", handlers.ListMyNotes(db))
			protected.GET("/users/me/bookmarks", handlers.ListBookmarks(db))
			protected.GET("/users/me/downloads", handlers.ListDownloadHistory(db))
			protected.GET("/users/:id", handlers.GetPublicProfile(db))

			// Activities
			protected.GET("/activities/recent", handlers.GetRecentActivities(activityService))

			// Study groups
			protected.POST("/groups", handlers.CreateGroup(db))
			protected.GET("/groups", handlers.ListGroups(db))
			protected.POST("/groups/:id/join", handlers.JoinGroup(db))
			protected.POST("/groups/:id/leave", handlers.LeaveGroup(db))
			protected.GET("/groups/:id/posts", handlers.ListGroupPosts(db))
			protected.POST("/groups/:id/posts", handlers.CreateGroupPost(db))
			protected.DELETE("/groups/:id", handlers.DeleteGroup(db))
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(db, cfg), middleware.AdminRequired())
		{
			// Moderation
			admin.GET("/notes/pending", handlers.ListPendingNotes(discoveryService))
			admin.GET("/notes/reported", handlers.ListReportedNotes(discoveryService))
			admin.PUT("/notes/:id/approve", handlers.ApproveNote(db, searchService, activityService, log))
			admin.PUT("/notes/:id/reject", handlers.RejectNote(db, searchService, activityService, log))
			admin.PUT("/notes/:id/quality", handlers.UpdateNoteQuality(db, searchService, log))
			admin.PUT("/notes/:id/resolve-reports", handlers.ResolveReports(engagementService))
			admin.DELETE("/notes/:id", handlers.DeleteNote(db, storageService, searchService, activityService, log))

			// User management
			admin.GET("/users", handlers.ListUsers(db))
			admin.PUT("/users/:id/ban", handlers.BanUser(db, emailService, log))
			admin.PUT("/users/:id/unban", handlers.UnbanUser(db))
			admin.POST("/users/:id/warn", handlers.WarnUser(db, emailService, log))
		}
	}

	return r
}
