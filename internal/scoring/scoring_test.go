package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreWeights(t *testing.T) {
	assert.Equal(t, 0, Score(0, 0))
	assert.Equal(t, 10, Score(1, 0))
	assert.Equal(t, 2, Score(0, 1))
	assert.Equal(t, 54, Score(5, 2))
}

func TestScoreIsIdempotent(t *testing.T) {
	first := Score(7, 13)
	second := Score(7, 13)
	assert.Equal(t, first, second)
	assert.Equal(t, RankingFor(first), RankingFor(second))
}

func TestRankingThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  Ranking
	}{
		{0, RankBronze},
		{49, RankBronze},
		{50, RankSilver},
		{199, RankSilver},
		{200, RankGold},
		{499, RankGold},
		{500, RankPlatinum},
		{10000, RankPlatinum},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RankingFor(tc.score), "score %d", tc.score)
	}
}

// An upload takes a fresh user to 10 points; the first unique download
// of that note adds 2 more. A repeat download by the same user changes
// nothing because the uploader's counter only moves on first downloads.
func TestUploadThenFirstDownloadScenario(t *testing.T) {
	uploads, downloads := 0, 0

	uploads++
	assert.Equal(t, 10, Score(uploads, downloads))
	assert.Equal(t, RankBronze, RankingFor(Score(uploads, downloads)))

	downloads++
	assert.Equal(t, 12, Score(uploads, downloads))
	assert.Equal(t, RankBronze, RankingFor(Score(uploads, downloads)))

	// Repeat download: counters unchanged, score unchanged.
	assert.Equal(t, 12, Score(uploads, downloads))
}
