package timehelper

import (
	"fmt"
	"time"
)

const (
	DateLayout    = "2006-01-02"
	KickoffLayout = "15:04"
)

// StartTime combines a "YYYY-MM-DD" date and an "HH:MM" kickoff, read in
// loc, into the instant predictions close. The result is in UTC.
func StartTime(date, kickoff string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout+" "+KickoffLayout, date+" "+kickoff, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q or kickoff %q: %w", date, kickoff, err)
	}
	return t.UTC(), nil
}
