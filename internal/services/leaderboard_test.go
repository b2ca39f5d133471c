package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeaderboardColumnMapping(t *testing.T) {
	cases := []struct {
		kind string
		want string
	}{
		{"contributor", "contributor_score"},
		{"", "contributor_score"},
		{"uploader", "total_uploads"},
		{"downloader", "total_downloads"},
	}
	for _, tc := range cases {
		col, err := LeaderboardColumn(tc.kind)
		assert.NoError(t, err, tc.kind)
		assert.Equal(t, tc.want, col)
	}
}

func TestLeaderboardColumnUnknownKind(t *testing.T) {
	_, err := LeaderboardColumn("likes")
	assert.ErrorIs(t, err, ErrUnknownLeaderboard)
}
