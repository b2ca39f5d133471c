package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Shishir2405/notenex-api/internal/models"
)

func newHandlerMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Discard,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"math", "calculus"}, splitList("math, calculus"))
	assert.Equal(t, []string{"one"}, splitList("one"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b , "))
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList("   "))
}

func TestDownloadNoteHidesUnapprovedFromOthers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newHandlerMockDB(t)

	noteID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "uploaded_by", "is_approved"}).
			AddRow(noteID.String(), uuid.New().String(), false))

	// Storage and engagement stay untouched when the note is hidden.
	handler := DownloadNote(db, nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/notes/x/download", nil)
	c.Params = gin.Params{{Key: "id", Value: noteID.String()}}
	c.Set("user_id", uuid.New().String())
	c.Set("role", string(models.RoleStudent))

	handler(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
