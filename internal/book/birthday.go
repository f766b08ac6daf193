package book

import (
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// Birthday is a valid calendar date. The zero value means "no birthday";
// 01.01.0001 is a real date and stays set.
type Birthday struct {
	date time.Time
	set  bool
}

// ParseBirthday parses raw using the fixed dd.mm.yyyy layout.
// Impossible dates such as 30.02.2001 are rejected.
func ParseBirthday(raw string) (Birthday, error) {
	t, err := time.Parse(config.DateFormatInput, strings.TrimSpace(raw))
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: %q %s", ErrInvalidDateFormat, raw, config.ErrDateLayout)
	}
	return Birthday{date: t, set: true}, nil
}

// NewBirthday builds a Birthday from its components, rejecting dates that
// time.Date would have to normalize.
func NewBirthday(year int, month time.Month, day int) (Birthday, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Birthday{}, fmt.Errorf("%w: %04d-%02d-%02d %s", ErrInvalidDateFormat, year, month, day, config.ErrDateLayout)
	}
	return Birthday{date: t, set: true}, nil
}

// IsZero reports whether b holds no date.
func (b Birthday) IsZero() bool {
	return !b.set
}

func (b Birthday) Year() int { return b.date.Year() }

func (b Birthday) Month() time.Month { return b.date.Month() }

func (b Birthday) Day() int { return b.date.Day() }

// Time returns the birthday as midnight UTC.
func (b Birthday) Time() time.Time {
	return b.date
}

// String formats the birthday as YYYY-MM-DD.
func (b Birthday) String() string {
	if b.IsZero() {
		return ""
	}
	return b.date.Format(config.DateFormatDisplay)
}

// NextOccurrence determines the next birthday date relative to now, in the
// location of now. A birthday falling on today counts as the next occurrence.
func (b Birthday) NextOccurrence(now time.Time) time.Time {
	loc := now.Location()

	// Go's time.Date normalizes Feb 29 to March 1st if the year is not a leap year.
	candidate := time.Date(now.Year(), b.date.Month(), b.date.Day(), 0, 0, 0, 0, loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	if candidate.Before(todayStart) {
		candidate = time.Date(now.Year()+1, b.date.Month(), b.date.Day(), 0, 0, 0, 0, loc)
	}
	return candidate
}

// DaysUntil returns the number of whole days between the start of today and
// the next occurrence of the birthday.
func (b Birthday) DaysUntil(now time.Time) int {
	next := b.NextOccurrence(now)

	// Count calendar days in UTC so DST transitions never shorten a day.
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / config.HoursPerDay)
}
