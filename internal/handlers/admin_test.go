package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUpdateNoteQualityInvalidTier(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := UpdateNoteQuality(nil, nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/admin/notes/x/quality", strings.NewReader(`{"quality": "excellent"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

	handler(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateNoteQualityNegativePrice(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := UpdateNoteQuality(nil, nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/admin/notes/x/quality", strings.NewReader(`{"quality": "premium", "price": -5}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

	handler(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateNoteQualitySkipsIndexForUnapproved(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newHandlerMockDB(t)

	noteID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "subject", "is_approved", "quality"}).
			AddRow(noteID.String(), "Calc notes", "Math", false, "medium"))
	mock.ExpectExec(`UPDATE "notes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// A nil search service is safe here: unapproved notes are not in
	// the index, so no document push happens.
	handler := UpdateNoteQuality(db, nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/admin/notes/x/quality", strings.NewReader(`{"quality": "high"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: noteID.String()}}

	handler(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectNoteRequiresReason(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := RejectNote(nil, nil, nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/admin/notes/x/reject", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Set("user_id", uuid.New().String())

	handler(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
