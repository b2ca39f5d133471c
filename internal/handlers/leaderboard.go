package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Shishir2405/notenex-api/internal/services"
)

func Leaderboard(leaderboard *services.LeaderboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := c.DefaultQuery("type", "contributor")
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

		users, err := leaderboard.Top(kind, limit)
		if err != nil {
			if errors.Is(err, services.ErrUnknownLeaderboard) {
				respondError(c, http.StatusBadRequest, "Unknown leaderboard type")
				return
			}
			respondError(c, http.StatusInternalServerError, "Failed to fetch leaderboard")
			return
		}

		respondData(c, http.StatusOK, users)
	}
}
