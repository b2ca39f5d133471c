// Package scoring derives a user's contributor score and trust ranking
// from their lifetime upload/download counters. The score is always
// recomputed from the current counters, never adjusted incrementally,
// so repeated invocations with unchanged counters are stable.
package scoring

// Weights applied to the raw counters.
const (
	UploadWeight   = 10
	DownloadWeight = 2
)

// Ranking is one of the four ordered trust tiers.
type Ranking string

const (
	RankBronze   Ranking = "Bronze"
	RankSilver   Ranking = "Silver"
	RankGold     Ranking = "Gold"
	RankPlatinum Ranking = "Platinum"
)

// Tier thresholds (inclusive lower bounds).
const (
	silverThreshold   = 50
	goldThreshold     = 200
	platinumThreshold = 500
)

// Score computes the contributor score from lifetime counters.
func Score(totalUploads, totalDownloads int) int {
	return totalUploads*UploadWeight + totalDownloads*DownloadWeight
}

// RankingFor maps a contributor score to its trust ranking.
func RankingFor(score int) Ranking {
	switch {
	case score >= platinumThreshold:
		return RankPlatinum
	case score >= goldThreshold:
		return RankGold
	case score >= silverThreshold:
		return RankSilver
	default:
		return RankBronze
	}
}
