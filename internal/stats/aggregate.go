// Package stats holds the pure aggregation logic behind the feedback and
// admin analytics endpoints: per-event rating summaries, the visibility rule
// that keeps stale feedback out of trend views, and the admin report builder.
// Everything here reduces in-memory slices so it stays independent of the
// store's query language and is testable without a database.
package stats

import (
	"math"

	"github.com/campushub/api/internal/models"
)

// Summary is the per-event (or global) rating aggregate.
type Summary struct {
	AverageRating  float64     `json:"averageRating"`
	TotalFeedbacks int         `json:"totalFeedbacks"`
	Distribution   map[int]int `json:"distribution"`
}

// Aggregate reduces a feedback set to its rating summary. The distribution
// always carries all five keys, and the average is 0 (never NaN) for an
// empty set.
func Aggregate(feedbacks []*models.Feedback) Summary {
	summary := Summary{
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	var sum int
	for _, fb := range feedbacks {
		summary.TotalFeedbacks++
		sum += fb.Rating
		if fb.Rating >= 1 && fb.Rating <= 5 {
			summary.Distribution[fb.Rating]++
		}
	}

	if summary.TotalFeedbacks > 0 {
		summary.AverageRating = round2(float64(sum) / float64(summary.TotalFeedbacks))
	}
	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
