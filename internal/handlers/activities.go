package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Shishir2405/notenex-api/internal/services"
)

func GetRecentActivities(activity *services.ActivityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if limit < 1 || limit > 100 {
			limit = 20
		}

		activities, err := activity.GetRecentActivities(limit)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch activities")
			return
		}

		respondData(c, http.StatusOK, activities)
	}
}
