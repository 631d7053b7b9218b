package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/campushub/api/internal/models"
)

func TestIsVisibleBeforeOccurrence(t *testing.T) {
	event := &models.Event{Date: "2024-05-10"}
	stale := &models.Feedback{CreatedAt: time.Date(2024, time.May, 1, 12, 0, 0, 0, time.Local)}

	assert.False(t, IsVisible(stale, event))
}

func TestIsVisibleAfterOccurrence(t *testing.T) {
	event := &models.Event{Date: "2024-05-10"}
	fresh := &models.Feedback{CreatedAt: time.Date(2024, time.May, 15, 9, 0, 0, 0, time.Local)}

	assert.True(t, IsVisible(fresh, event))
}

func TestIsVisibleAtExactOccurrence(t *testing.T) {
	occurrence := time.Date(2024, time.May, 10, 23, 59, 59, int(999*time.Millisecond), time.Local)
	event := &models.Event{Date: "2024-05-10"}
	fb := &models.Feedback{CreatedAt: occurrence}

	assert.True(t, IsVisible(fb, event))
}

func TestIsVisibleUnresolvableDateStaysVisible(t *testing.T) {
	event := &models.Event{Name: "Legacy Event"}
	fb := &models.Feedback{CreatedAt: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)}

	assert.True(t, IsVisible(fb, event))
}

func TestIsVisibleNilInputs(t *testing.T) {
	assert.False(t, IsVisible(nil, &models.Event{}))
	assert.False(t, IsVisible(&models.Feedback{}, nil))
}

func TestIsVisibleUsesEarliestCandidate(t *testing.T) {
	// startDate wins over date, so a rescheduled event judged by its
	// original startDate keeps post-startDate feedback visible
	event := &models.Event{
		Date:  "2024-12-01",
		Extra: map[string]any{"startDate": "2024-05-10"},
	}
	fb := &models.Feedback{CreatedAt: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local)}

	assert.True(t, IsVisible(fb, event))
}
