// Package book holds the contact data model: validated phone and birthday
// values, records, and the AddressBook container with lookup, search and
// pagination.
package book

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// AddressBook maps contact names to records and remembers insertion order.
// It is not safe for concurrent use.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// New returns an empty address book.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	return len(b.order)
}

// Has reports whether name is already a key (exact, case-sensitive match).
func (b *AddressBook) Has(name string) bool {
	_, ok := b.records[strings.TrimSpace(name)]
	return ok
}

// Add inserts r. An existing record with the same name is left untouched and
// ErrDuplicateName is returned.
func (b *AddressBook) Add(r *Record) error {
	if r == nil || r.name == "" {
		return ErrInvalidName
	}
	if _, exists := b.records[r.name]; exists {
		return fmt.Errorf("%w: %s already added", ErrDuplicateName, r.name)
	}
	b.records[r.name] = r
	b.order = append(b.order, r.name)
	return nil
}

// AddRecord creates an empty record for name and inserts it.
func (b *AddressBook) AddRecord(name string) (*Record, error) {
	if b.Has(name) {
		return nil, fmt.Errorf("%w: %s already added", ErrDuplicateName, strings.TrimSpace(name))
	}
	r, err := NewRecord(name)
	if err != nil {
		return nil, err
	}
	if err := b.Add(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Find looks a record up by exact name.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Get is Find for callers that want an error on a miss.
func (b *AddressBook) Get(name string) (*Record, error) {
	r, ok := b.records[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return r, nil
}

// Records returns the records in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// Summaries renders every record in insertion order.
func (b *AddressBook) Summaries() []string {
	out := make([]string, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name].String())
	}
	return out
}

// Search returns the summaries of records whose name contains text
// (case-insensitive) or whose phones contain text (case-sensitive).
// Each record is listed at most once.
func (b *AddressBook) Search(text string) []string {
	fold := cases.Fold()
	needle := fold.String(text)

	var out []string
	for _, name := range b.order {
		r := b.records[name]
		if strings.Contains(fold.String(r.name), needle) || phonesContain(r.phones, text) {
			out = append(out, r.String())
		}
	}
	return out
}

func phonesContain(phones []Phone, text string) bool {
	for _, p := range phones {
		if strings.Contains(p.value, text) {
			return true
		}
	}
	return false
}

// DaysToBirthday resolves name and counts the days to its next birthday.
func (b *AddressBook) DaysToBirthday(name string, today time.Time) (int, error) {
	r, err := b.Get(name)
	if err != nil {
		return 0, err
	}
	return r.DaysToBirthday(today)
}

// Iterate starts a pager over the current records.
func (b *AddressBook) Iterate(pageSize int) (*Pager, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize)
	}
	return &Pager{
		book:  b,
		names: append([]string(nil), b.order...),
		size:  pageSize,
	}, nil
}
