package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSearchRejectsShortQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := Search(nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/search?q=a", nil)

	handler(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
}

func TestSearchMinimumCountsRunesNotBytes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := Search(nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	// One CJK character is three bytes but still a single character.
	c.Request = httptest.NewRequest(http.MethodGet, "/search?q=%E7%A0%94", nil)

	handler(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchRejectsWhitespaceQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := Search(nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/search?q=%20%20x", nil)

	handler(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
