package book

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// Record is one contact: an immutable name, an ordered list of phones and an
// optional birthday. Records are owned by an AddressBook.
type Record struct {
	uid      string
	name     string
	phones   []Phone
	birthday Birthday
}

// NewRecord creates an empty record. The name is trimmed and must not be blank.
func NewRecord(name string) (*Record, error) {
	return RestoreRecord("", name, nil, Birthday{})
}

// RestoreRecord rebuilds a record from persisted values. An empty uid gets a
// fresh one.
func RestoreRecord(uid, name string, phones []Phone, birthday Birthday) (*Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}
	if uid == "" {
		uid = uuid.NewString()
	}
	return &Record{
		uid:      uid,
		name:     name,
		phones:   append([]Phone(nil), phones...),
		birthday: birthday,
	}, nil
}

// UID is the stable identifier persisted with the record.
func (r *Record) UID() string {
	return r.uid
}

// Name is the record key.
func (r *Record) Name() string {
	return r.name
}

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Phone {
	return append([]Phone(nil), r.phones...)
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	return r.birthday, !r.birthday.IsZero()
}

// AddPhone validates raw and appends it. Duplicates are kept.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhoneAt removes the phone at the 1-based selection and returns it.
// On any error the phone list is left unchanged.
func (r *Record) RemovePhoneAt(selection string) (Phone, error) {
	idx, err := r.phoneIndex(selection)
	if err != nil {
		return Phone{}, err
	}
	removed := r.phones[idx]
	r.phones = append(r.phones[:idx:idx], r.phones[idx+1:]...)
	return removed, nil
}

// ReplacePhoneAt swaps the phone at the 1-based selection for raw and returns
// the previous value. raw is validated before anything changes.
func (r *Record) ReplacePhoneAt(selection, raw string) (Phone, error) {
	idx, err := r.phoneIndex(selection)
	if err != nil {
		return Phone{}, err
	}
	p, err := NewPhone(raw)
	if err != nil {
		return Phone{}, err
	}
	previous := r.phones[idx]
	r.phones[idx] = p
	return previous, nil
}

// CheckSelection applies the selection rules of RemovePhoneAt and
// ReplacePhoneAt without changing anything.
func (r *Record) CheckSelection(selection string) error {
	_, err := r.phoneIndex(selection)
	return err
}

func (r *Record) phoneIndex(selection string) (int, error) {
	if len(r.phones) == 0 {
		return 0, ErrEmptyPhoneList
	}
	n, err := strconv.Atoi(strings.TrimSpace(selection))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, selection)
	}
	if n < 1 || n > len(r.phones) {
		return 0, fmt.Errorf("%w: %d not in 1..%d", ErrIndexOutOfRange, n, len(r.phones))
	}
	return n - 1, nil
}

// SetBirthday parses raw (dd.mm.yyyy) and overwrites the current birthday.
// A parse failure keeps the previous value.
func (r *Record) SetBirthday(raw string) error {
	b, err := ParseBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = b
	return nil
}

// DaysToBirthday counts the days from today to the next birthday.
func (r *Record) DaysToBirthday(today time.Time) (int, error) {
	if r.birthday.IsZero() {
		return 0, fmt.Errorf("%w: %s", ErrNoBirthdayKnown, r.name)
	}
	return r.birthday.DaysUntil(today), nil
}

// PhonesLine renders "name: [p1, p2]".
func (r *Record) PhonesLine() string {
	return fmt.Sprintf(config.FormatPhonesOf, r.name, joinPhones(r.phones))
}

// String renders the record summary used by listings, search and pagination.
func (r *Record) String() string {
	s := fmt.Sprintf(config.FormatSummary, r.name, joinPhones(r.phones))
	if !r.birthday.IsZero() {
		s = fmt.Sprintf(config.FormatSummaryBirthday, s, r.birthday)
	}
	return s
}
