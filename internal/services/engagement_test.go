package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Shishir2405/notenex-api/internal/models"
)

func newEngagementMock(t *testing.T) (*EngagementService, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Discard,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return NewEngagementService(db), mock
}

func TestRecordViewIncrementsAtomically(t *testing.T) {
	svc, mock := newEngagementMock(t)
	noteID := uuid.New()

	mock.ExpectExec(`UPDATE "notes" SET "view_count"=view_count \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.RecordView(noteID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordViewUnknownNote(t *testing.T) {
	svc, mock := newEngagementMock(t)

	mock.ExpectExec(`UPDATE "notes" SET "view_count"=view_count \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.RecordView(uuid.New())
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestReportRejectsDuplicate(t *testing.T) {
	svc, mock := newEngagementMock(t)
	noteID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "note_reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := svc.Report(noteID, userID, models.ReportSpam, "")
	assert.ErrorIs(t, err, ErrDuplicateReport)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportUnknownNote(t *testing.T) {
	svc, mock := newEngagementMock(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := svc.Report(uuid.New(), uuid.New(), models.ReportSpam, "")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestFirstDownloadCreditsUploaderAndRecomputesScore(t *testing.T) {
	svc, mock := newEngagementMock(t)
	noteID := uuid.New()
	userID := uuid.New()
	uploaderID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "uploaded_by", "download_count"}).
			AddRow(noteID.String(), uploaderID.String(), int64(0)))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "notes" SET "download_count"=download_count \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "download_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "download_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectExec(`UPDATE "users" SET "total_downloads"=total_downloads \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "total_uploads", "total_downloads"}).
			AddRow(uploaderID.String(), 1, 1))
	mock.ExpectExec(`UPDATE "users" SET "contributor_score"=\$1,"trust_ranking"=\$2`).
		WithArgs(12, "Bronze", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	note, err := svc.RecordDownload(noteID, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), note.DownloadCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepeatDownloadDoesNotCreditUploader(t *testing.T) {
	svc, mock := newEngagementMock(t)
	noteID := uuid.New()
	userID := uuid.New()
	uploaderID := uuid.New()

	// An existing history entry ends the transaction after the note
	// counter bump: with ordered expectations, an INSERT into
	// download_records or an UPDATE of users would fail the test.
	mock.ExpectQuery(`SELECT \* FROM "notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "uploaded_by", "download_count"}).
			AddRow(noteID.String(), uploaderID.String(), int64(3)))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "notes" SET "download_count"=download_count \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "download_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectCommit()

	note, err := svc.RecordDownload(noteID, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), note.DownloadCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLikeTwiceRestoresCount(t *testing.T) {
	svc, mock := newEngagementMock(t)
	noteID := uuid.New()
	userID := uuid.New()

	// First toggle: no existing like entry, so one is created.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "note_likes"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "note_likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "note_likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	liked, count, err := svc.ToggleLike(noteID, userID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	// Second toggle: the entry is deleted and nothing is inserted.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "note_likes"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "note_likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	liked, count, err = svc.ToggleLike(noteID, userID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLikeUnknownNote(t *testing.T) {
	svc, mock := newEngagementMock(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, _, err := svc.ToggleLike(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNoteNotFound)
}
