// Package eventdate resolves a single occurrence instant from the loosely
// typed date fields that event documents have accumulated over time. Events
// created through the API carry a normalized "date" field, but imported and
// legacy documents use a handful of other names and formats, so the resolver
// tries them all in a fixed preference order.
package eventdate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/itlightning/dateparse"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CandidateFields is the preference order for occurrence-date fields.
// updatedAt is deliberately not a candidate: a rescheduled or edited event
// must still resolve to when it happens, not when it was last touched.
var CandidateFields = []string{
	"startDate",
	"date",
	"eventDate",
	"beginDate",
	"datetime",
	"start",
	"event_date",
	"time",
}

var (
	dateOnlyRe = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})$`)
	dateTimeRe = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})(?:[T ](\d{1,2})(?::(\d{1,2})(?::(\d{1,2}))?)?)?$`)
	digitsRe   = regexp.MustCompile(`^\d+$`)
)

// JavaScript Date range: |ms since epoch| must not exceed 8.64e15. A numeric
// value outside this range is reinterpreted as epoch seconds.
const maxEpochMillis = int64(8.64e15)

// Resolve extracts the best-guess occurrence instant from a document's
// fields. It walks CandidateFields in order and returns the first value any
// strategy can make sense of. The second return is false when no candidate
// resolves; callers must treat that as "unknown date", not as an error.
//
// Resolve is pure: no clock, no I/O.
func Resolve(fields map[string]any) (time.Time, bool) {
	if fields == nil {
		return time.Time{}, false
	}
	for _, name := range CandidateFields {
		raw, exists := fields[name]
		if !exists || raw == nil {
			continue
		}
		if t, ok := resolveValue(raw); ok {
			return t, true
		}
		// candidate present but unparsable: keep scanning
	}
	return time.Time{}, false
}

func resolveValue(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case primitive.DateTime:
		return v.Time(), true
	case int:
		return fromEpoch(int64(v))
	case int32:
		return fromEpoch(int64(v))
	case int64:
		return fromEpoch(v)
	case float64:
		return fromEpoch(int64(v))
	case string:
		return resolveString(v)
	default:
		return time.Time{}, false
	}
}

func resolveString(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	// Bare digits: epoch milliseconds, falling back to epoch seconds when the
	// millisecond reading is out of range.
	if digitsRe.MatchString(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return fromEpoch(n)
	}

	// YYYY-MM-DD resolves to end of day so an event stays "current" through
	// its whole listed day.
	if m := dateOnlyRe.FindStringSubmatch(s); m != nil {
		return composeLocal(m[1], m[2], m[3], "", "", ""), true
	}

	// YYYY-MM-DD HH[:mm[:ss]] (T or space). Missing time components bias
	// toward end of day, consistent with the date-only rule.
	if m := dateTimeRe.FindStringSubmatch(s); m != nil {
		return composeLocal(m[1], m[2], m[3], m[4], m[5], m[6]), true
	}

	// Anything else (full ISO-8601, RFC formats, etc.) goes through the
	// generic parser.
	if t, err := dateparse.ParseAny(s); err == nil {
		return t, true
	}

	return time.Time{}, false
}

func fromEpoch(n int64) (time.Time, bool) {
	if n > maxEpochMillis || n < -maxEpochMillis {
		return time.Unix(n, 0), true
	}
	return time.UnixMilli(n), true
}

func composeLocal(year, month, day, hour, minute, second string) time.Time {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)

	hh, mm, ss, ns := 23, 59, 59, int(999*time.Millisecond)
	if hour != "" {
		hh, _ = strconv.Atoi(hour)
		ns = 0
		if minute != "" {
			mm, _ = strconv.Atoi(minute)
		}
		if second != "" {
			ss, _ = strconv.Atoi(second)
		}
	}

	return time.Date(y, time.Month(mo), d, hh, mm, ss, ns, time.Local)
}
