package domain

import (
	"strings"
	"time"
)

// Window is a half-open-by-convention time range; zero Since or Until
// means unbounded on that side
type Window struct {
	Since time.Time
	Until time.Time
}

// Recognized time-range labels
const (
	RangeWeek  = "week"
	RangeMonth = "month"
	RangeAll   = "all"
)

// WindowFor computes the filter window for a time-range label anchored at now.
// week covers the last 7 calendar days including today; month goes back one
// calendar month by day arithmetic; all is unrestricted
func WindowFor(label string, now time.Time) (Window, bool) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch strings.ToLower(strings.TrimSpace(label)) {
	case RangeWeek:
		return Window{Since: today.AddDate(0, 0, -6), Until: now}, true
	case RangeMonth:
		return Window{Since: today.AddDate(0, -1, 0), Until: now}, true
	case RangeAll, "":
		return Window{}, true
	default:
		return Window{}, false
	}
}
