package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Shishir2405/notenex-api/internal/config"
	"github.com/Shishir2405/notenex-api/internal/database"
	"github.com/Shishir2405/notenex-api/internal/models"
	"github.com/Shishir2405/notenex-api/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Initialize search service
	searchService := services.NewSearchService(cfg, logger)

	// Only approved notes belong in the index
	var dbCount int64
	if err := db.Model(&models.Note{}).Where("is_approved = ?", true).Count(&dbCount).Error; err != nil {
		logger.Fatal("failed to count approved notes", zap.Error(err))
	}

	meiliCount, err := searchService.GetNoteCount()
	if err != nil {
		logger.Fatal("failed to count indexed notes", zap.Error(err))
	}

	logger.Info("note counts", zap.Int64("database", dbCount), zap.Int64("meilisearch", meiliCount))

	// Fetch approved notes in batches
	batchSize := 100
	var offset int
	totalIndexed := 0

	for {
		var notes []models.Note
		if err := db.Where("is_approved = ?", true).
			Limit(batchSize).Offset(offset).Find(&notes).Error; err != nil {
			logger.Fatal("failed to fetch notes", zap.Error(err))
		}

		if len(notes) == 0 {
			break
		}

		if err := searchService.IndexNotes(notes); err != nil {
			logger.Warn("failed to index batch", zap.Int("offset", offset), zap.Error(err))
		} else {
			totalIndexed += len(notes)
			logger.Info("indexed batch", zap.Int("count", len(notes)), zap.Int("total", totalIndexed))
		}

		offset += batchSize
		time.Sleep(100 * time.Millisecond) // Be nice to Meilisearch
	}

	finalCount, err := searchService.GetNoteCount()
	if err != nil {
		logger.Fatal("failed to count indexed notes", zap.Error(err))
	}
	logger.Info("reindex complete", zap.Int("indexed", totalIndexed), zap.Int64("meilisearch", finalCount))
}
