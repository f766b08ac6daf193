// Package calendar turns the birthdays of an address book into an upcoming
// list and an iCalendar feed.
package calendar

import (
	"sort"
	"time"

	"github.com/tartampluch/go-addressbook/internal/book"
)

// BirthdayEntry describes the next birthday of one record.
type BirthdayEntry struct {
	UID            string
	Name           string
	DateOfBirth    time.Time
	NextOccurrence time.Time
	AgeNext        int
	DaysLeft       int
}

// Upcoming lists the records whose next birthday is at most window days away,
// today included. Entries are sorted by next occurrence, then by name.
func Upcoming(records []*book.Record, now time.Time, window int) []BirthdayEntry {
	var entries []BirthdayEntry

	for _, r := range records {
		bday, ok := r.Birthday()
		if !ok {
			continue
		}
		days := bday.DaysUntil(now)
		if days > window {
			continue
		}

		next := bday.NextOccurrence(now)
		entries = append(entries, BirthdayEntry{
			UID:            r.UID(),
			Name:           r.Name(),
			DateOfBirth:    bday.Time(),
			NextOccurrence: next,
			AgeNext:        next.Year() - bday.Year(),
			DaysLeft:       days,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].NextOccurrence.Equal(entries[j].NextOccurrence) {
			return entries[i].NextOccurrence.Before(entries[j].NextOccurrence)
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
