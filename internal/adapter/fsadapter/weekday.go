package fsadapter

import (
	"fmt"
	"time"

	"github.com/auroralab/skywatch/internal/common"
)

var weekdayTokens = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// ParseWeekdayToken maps an exact English weekday name to its time.Weekday.
func ParseWeekdayToken(token string) (time.Weekday, error) {
	wd, ok := weekdayTokens[token]
	if !ok {
		return 0, fmt.Errorf("%w: %q", common.ErrUnknownWeekdayToken, token)
	}

	return wd, nil
}

// ResolveDate returns the most recent date at or before mtime whose weekday
// is wd, at midnight in mtime's location. Weekly overwritten files keep only
// their slot name on disk, so the calendar date has to be recovered from the
// modification time, not from the wall clock at generation time.
func ResolveDate(mtime time.Time, wd time.Weekday) time.Time {
	day := time.Date(mtime.Year(), mtime.Month(), mtime.Day(), 0, 0, 0, 0, mtime.Location())
	back := (int(day.Weekday()) - int(wd) + 7) % 7

	return day.AddDate(0, 0, -back)
}
