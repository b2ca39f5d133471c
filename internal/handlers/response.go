package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Shishir2405/notenex-api/internal/services"
)

// Response envelope: {status: "success"|"error", message?, data?}.

func respondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{
		"status": "success",
		"data":   data,
	})
}

func respondMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"status":  "success",
		"message": message,
	})
}

func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"status":  "error",
		"message": message,
	})
}

func respondPage(c *gin.Context, code int, data interface{}, pagination services.Pagination) {
	c.JSON(code, gin.H{
		"status":     "success",
		"data":       data,
		"pagination": pagination,
	})
}
