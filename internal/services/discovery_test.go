package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Shishir2405/notenex-api/internal/models"
)

func newMockDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	return db
}

func buildSQL(t *testing.T, db *gorm.DB, f NoteFilter) (string, []interface{}) {
	t.Helper()
	svc := NewDiscoveryService(db)
	var notes []models.Note
	stmt := svc.approved(f).Session(&gorm.Session{DryRun: true}).Find(&notes).Statement
	return stmt.SQL.String(), stmt.Vars
}

func TestApprovedFilterAlwaysApplied(t *testing.T) {
	db := newMockDB(t)

	sql, vars := buildSQL(t, db, NoteFilter{})
	assert.Contains(t, sql, "notes.is_approved")
	assert.Contains(t, vars, true)
}

func TestApprovedFilterSurvivesOtherFilters(t *testing.T) {
	db := newMockDB(t)

	sql, vars := buildSQL(t, db, NoteFilter{
		Subject: "physics",
		Quality: "high",
		Premium: "false",
		Search:  "optics",
	})
	assert.Contains(t, sql, "notes.is_approved")
	assert.Contains(t, sql, "notes.subject")
	assert.Contains(t, sql, "notes.quality")
	assert.Contains(t, sql, "notes.is_premium")
	assert.Contains(t, sql, "ILIKE")
	assert.Contains(t, vars, "physics")
	assert.Contains(t, vars, "%optics%")
}

func TestAllSentinelIgnoresFilter(t *testing.T) {
	db := newMockDB(t)

	sql, _ := buildSQL(t, db, NoteFilter{
		Subject:  FilterAll,
		Semester: FilterAll,
		College:  FilterAll,
		Course:   FilterAll,
		Quality:  FilterAll,
		Premium:  FilterAll,
	})
	assert.NotContains(t, sql, "notes.subject")
	assert.NotContains(t, sql, "notes.semester")
	assert.NotContains(t, sql, "notes.college")
	assert.NotContains(t, sql, "notes.course")
	assert.NotContains(t, sql, "notes.quality")
	assert.NotContains(t, sql, "notes.is_premium")
	assert.Contains(t, sql, "notes.is_approved")
}

func TestNormalizeDefaults(t *testing.T) {
	f := NoteFilter{}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, defaultPageSize, f.Limit)
	assert.Equal(t, SortRecent, f.SortBy)
}

func TestNormalizeClampsLimit(t *testing.T) {
	f := NoteFilter{Page: -3, Limit: 9999, SortBy: "bogus"}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, maxPageSize, f.Limit)
	assert.Equal(t, SortRecent, f.SortBy)
}

func TestSortClauses(t *testing.T) {
	assert.Equal(t, "notes.created_at DESC", SortClause(SortRecent))
	assert.Equal(t, "notes.download_count DESC, notes.view_count DESC", SortClause(SortPopular))
	assert.Equal(t, "like_count DESC", SortClause(SortLikes))
	assert.Equal(t, "notes.view_count DESC", SortClause(SortViews))
	assert.Equal(t, "notes.created_at DESC", SortClause("unknown"))
}

func TestPaginationIdentity(t *testing.T) {
	p := NewPagination(25, 2, 10)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(25), p.TotalNotes)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestPaginationFirstAndLastPage(t *testing.T) {
	first := NewPagination(25, 1, 10)
	assert.False(t, first.HasPrev)
	assert.True(t, first.HasNext)

	last := NewPagination(25, 3, 10)
	assert.True(t, last.HasPrev)
	assert.False(t, last.HasNext)
}

func TestPaginationEmptyResult(t *testing.T) {
	p := NewPagination(0, 1, 10)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestPaginationExactMultiple(t *testing.T) {
	p := NewPagination(20, 2, 10)
	assert.Equal(t, 2, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
}
