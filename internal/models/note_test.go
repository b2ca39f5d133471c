package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNoteStartsPending(t *testing.T) {
	var note Note
	assert.False(t, note.IsApproved)
	assert.Nil(t, note.RejectionReason)
	assert.False(t, note.IsRejected())
}

func TestApproveSetsApproverAndClearsRejection(t *testing.T) {
	admin := uuid.New()
	note := Note{}
	note.Reject("blurry scan")
	assert.True(t, note.IsRejected())

	note.Approve(admin)

	assert.True(t, note.IsApproved)
	assert.NotNil(t, note.ApprovedBy)
	assert.Equal(t, admin, *note.ApprovedBy)
	assert.NotNil(t, note.ApprovedAt)
	assert.Nil(t, note.RejectionReason)
	assert.False(t, note.IsRejected())
}

func TestRejectFromApprovedState(t *testing.T) {
	admin := uuid.New()
	note := Note{}
	note.Approve(admin)

	note.Reject("copyright violation")

	assert.False(t, note.IsApproved)
	assert.Nil(t, note.ApprovedBy)
	assert.Nil(t, note.ApprovedAt)
	assert.NotNil(t, note.RejectionReason)
	assert.Equal(t, "copyright violation", *note.RejectionReason)
	assert.True(t, note.IsRejected())
}

// rejection_reason is set iff the note is in the rejected state;
// pending notes also carry is_approved=false but no reason.
func TestRejectedIsDistinctFromPending(t *testing.T) {
	pending := Note{}
	rejected := Note{}
	rejected.Reject("spam")

	assert.False(t, pending.IsApproved)
	assert.False(t, rejected.IsApproved)
	assert.False(t, pending.IsRejected())
	assert.True(t, rejected.IsRejected())
}

func TestUserRecalculateScoreKeepsRankingInSync(t *testing.T) {
	user := User{TotalUploads: 3, TotalDownloads: 10}
	user.RecalculateScore()
	assert.Equal(t, 50, user.ContributorScore)
	assert.Equal(t, "Silver", string(user.TrustRanking))

	user.TotalUploads = 45
	user.TotalDownloads = 25
	user.RecalculateScore()
	assert.Equal(t, 500, user.ContributorScore)
	assert.Equal(t, "Platinum", string(user.TrustRanking))
}
