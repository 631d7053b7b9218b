package stats

import (
	"github.com/campushub/api/internal/eventdate"
	"github.com/campushub/api/internal/models"
)

// IsVisible decides whether a feedback record belongs in aggregate
// analytics. Feedback created before its event's resolved occurrence is
// presumed stale (typically carried over from a rescheduled event) and
// excluded. When the occurrence can't be resolved the record stays visible.
//
// This is a different rule from the write-path gate, which checks that the
// event is in the past: the gate blocks premature reviews, this filter drops
// stale ones from trend data. Keep them separate.
func IsVisible(fb *models.Feedback, event *models.Event) bool {
	if fb == nil || event == nil {
		return false
	}

	occurrence, ok := eventdate.Resolve(event.DateFields())
	if !ok {
		return true
	}
	return !fb.CreatedAt.Before(occurrence)
}
