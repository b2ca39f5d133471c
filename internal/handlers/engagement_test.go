package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestToggleLikeInvalidNoteID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := ToggleLike(nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/notes/not-a-uuid/like", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	handler(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportNoteInvalidReason(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := ReportNote(nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	body := `{"reason": "because"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/notes/x/report", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Set("user_id", uuid.New().String())

	handler(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp["status"])
	assert.Equal(t, "Invalid report reason", resp["message"])
}

func TestReportNoteMissingReason(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := ReportNote(nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/notes/x/report", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Set("user_id", uuid.New().String())

	handler(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddCommentRejectsEmptyContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := AddComment(nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/notes/x/comments", strings.NewReader(`{"content": ""}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Set("user_id", uuid.New().String())

	handler(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
