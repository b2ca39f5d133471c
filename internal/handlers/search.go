package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/Shishir2405/notenex-api/internal/services"
)

// Search is the dedicated relevance search endpoint backed by
// Meilisearch. Unlike the general listing filter, it enforces a
// two-character minimum on the query.
func Search(search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("q"))
		if utf8.RuneCountInString(query) < 2 {
			respondError(c, http.StatusBadRequest, "Search query must be at least 2 characters")
			return
		}

		limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

		result, err := search.Search(query, c.Query("subject"), limit)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Search failed")
			return
		}

		respondData(c, http.StatusOK, result.Hits)
	}
}
