package stats

import (
	"sort"
	"time"

	"github.com/campushub/api/internal/models"
)

// Counts are the raw event and registration tallies. They are computed over
// the full collections, unaffected by feedback visibility.
type Counts struct {
	TotalEvents           int64 `json:"totalEvents"`
	ApprovedEvents        int64 `json:"approvedEvents"`
	PendingEvents         int64 `json:"pendingEvents"`
	RejectedEvents        int64 `json:"rejectedEvents"`
	TotalRegistrations    int64 `json:"totalRegistrations"`
	PendingRegistrations  int64 `json:"pendingRegistrations"`
	ApprovedRegistrations int64 `json:"approvedRegistrations"`
}

type EngagementPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type EventRank struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Avg   *float64 `json:"avg"`
}

type StudentRank struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type RecentFeedback struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UserName  string    `json:"userName"`
	EventName string    `json:"eventName"`
}

// Report is the flat admin analytics payload.
type Report struct {
	Counts

	TotalFeedbacks  int               `json:"totalFeedbacks"`
	AverageRating   float64           `json:"averageRating"`
	Distribution    map[int]int       `json:"distribution"`
	Engagement      []EngagementPoint `json:"engagement"`
	TopEvents       []EventRank       `json:"topEvents"`
	TopStudents     []StudentRank     `json:"topStudents"`
	RecentFeedbacks []RecentFeedback  `json:"recentFeedbacks"`
}

const topN = 10

// BuildReport assembles the admin report from the commented feedback set
// (joined with users and events) and the raw counts. Feedback is first run
// through the visibility filter against its joined event; everything rating
// related is computed over the visible set only.
func BuildReport(feedbacks []*models.FeedbackWithRefs, counts Counts) *Report {
	visible := make([]*models.FeedbackWithRefs, 0, len(feedbacks))
	for _, fb := range feedbacks {
		if fb == nil || fb.EventRef == nil {
			continue
		}
		if IsVisible(&fb.Feedback, fb.EventRef) {
			visible = append(visible, fb)
		}
	}

	plain := make([]*models.Feedback, len(visible))
	for i, fb := range visible {
		plain[i] = &fb.Feedback
	}
	summary := Aggregate(plain)

	return &Report{
		Counts:          counts,
		TotalFeedbacks:  summary.TotalFeedbacks,
		AverageRating:   summary.AverageRating,
		Distribution:    summary.Distribution,
		Engagement:      engagementSeries(visible),
		TopEvents:       topEvents(visible),
		TopStudents:     topStudents(visible),
		RecentFeedbacks: recentFeedbacks(visible),
	}
}

// engagementSeries counts visible feedback per UTC calendar day of creation.
// Days with no feedback are omitted; output is ascending by date key.
func engagementSeries(visible []*models.FeedbackWithRefs) []EngagementPoint {
	byDay := map[string]int{}
	for _, fb := range visible {
		if fb.Feedback.CreatedAt.IsZero() {
			continue
		}
		key := fb.Feedback.CreatedAt.UTC().Format("2006-01-02")
		byDay[key]++
	}

	series := make([]EngagementPoint, 0, len(byDay))
	for day, count := range byDay {
		series = append(series, EngagementPoint{Date: day, Count: count})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

func topEvents(visible []*models.FeedbackWithRefs) []EventRank {
	type bucket struct {
		id      string
		name    string
		count   int
		ratings []int
	}

	byEvent := map[string]*bucket{}
	for _, fb := range visible {
		id := fb.Feedback.Event.Hex()
		b, ok := byEvent[id]
		if !ok {
			b = &bucket{id: id, name: fb.EventName()}
			byEvent[id] = b
		}
		b.count++
		b.ratings = append(b.ratings, fb.Feedback.Rating)
	}

	ranks := make([]EventRank, 0, len(byEvent))
	for _, b := range byEvent {
		rank := EventRank{ID: b.id, Name: b.name, Count: b.count}
		if len(b.ratings) > 0 {
			var sum int
			for _, r := range b.ratings {
				sum += r
			}
			avg := round2(float64(sum) / float64(len(b.ratings)))
			rank.Avg = &avg
		}
		ranks = append(ranks, rank)
	}

	// Ties break on id so repeated calls on identical input give identical
	// ordering.
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Count != ranks[j].Count {
			return ranks[i].Count > ranks[j].Count
		}
		return ranks[i].ID < ranks[j].ID
	})
	if len(ranks) > topN {
		ranks = ranks[:topN]
	}
	return ranks
}

func topStudents(visible []*models.FeedbackWithRefs) []StudentRank {
	byUser := map[string]*StudentRank{}
	for _, fb := range visible {
		id := fb.Feedback.User.Hex()
		if id == "" {
			continue
		}
		rank, ok := byUser[id]
		if !ok {
			name := "Unknown Student"
			if fb.UserRef != nil && fb.UserRef.DisplayName() != "" {
				name = fb.UserRef.DisplayName()
			} else if !fb.Feedback.User.IsZero() {
				name = id
			}
			rank = &StudentRank{ID: id, Name: name}
			byUser[id] = rank
		}
		rank.Count++
	}

	ranks := make([]StudentRank, 0, len(byUser))
	for _, r := range byUser {
		ranks = append(ranks, *r)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Count != ranks[j].Count {
			return ranks[i].Count > ranks[j].Count
		}
		return ranks[i].ID < ranks[j].ID
	})
	if len(ranks) > topN {
		ranks = ranks[:topN]
	}
	return ranks
}

const recentLimit = 20

func recentFeedbacks(visible []*models.FeedbackWithRefs) []RecentFeedback {
	sorted := make([]*models.FeedbackWithRefs, len(visible))
	copy(sorted, visible)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Feedback.CreatedAt.After(sorted[j].Feedback.CreatedAt)
	})
	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}

	recent := make([]RecentFeedback, 0, len(sorted))
	for _, fb := range sorted {
		recent = append(recent, RecentFeedback{
			ID:        fb.Feedback.ID.Hex(),
			Rating:    fb.Feedback.Rating,
			Comment:   fb.Feedback.Comment,
			CreatedAt: fb.Feedback.CreatedAt,
			UserName:  fb.UserName(),
			EventName: fb.EventName(),
		})
	}
	return recent
}
