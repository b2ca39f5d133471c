package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Shishir2405/notenex-api/internal/models"
)

var ErrUnknownLeaderboard = errors.New("unknown leaderboard type")

// LeaderboardColumn maps a leaderboard variant to the stored column it
// sorts on. Ties fall to natural collection order; no tie-break rule
// is defined.
func LeaderboardColumn(kind string) (string, error) {
	switch kind {
	case "contributor", "":
		return "contributor_score", nil
	case "uploader":
		return "total_uploads", nil
	case "downloader":
		return "total_downloads", nil
	}
	return "", ErrUnknownLeaderboard
}

type LeaderboardService struct {
	db *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// Top returns the leading users for the given variant, truncated to
// limit. No separate ranking structure exists; this sorts the user
// collection by the stored counter.
func (s *LeaderboardService) Top(kind string, limit int) ([]models.User, error) {
	column, err := LeaderboardColumn(kind)
	if err != nil {
		return nil, err
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var users []models.User
	err = s.db.
		Select("id", "username", "full_name", "college", "avatar_url",
			"total_uploads", "total_downloads", "contributor_score", "trust_ranking").
		Where("is_active = ? AND is_banned = ?", true, false).
		Order(column + " DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
