package book_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/book"
)

// newRecord builds a record with the given phones, failing the test on bad input.
func newRecord(t *testing.T, name string, phones ...string) *book.Record {
	t.Helper()
	r, err := book.NewRecord(name)
	require.NoError(t, err)
	for _, p := range phones {
		require.NoError(t, r.AddPhone(p))
	}
	return r
}

func phoneValues(r *book.Record) []string {
	var out []string
	for _, p := range r.Phones() {
		out = append(out, p.String())
	}
	return out
}

func TestNewRecord(t *testing.T) {
	r, err := book.NewRecord("  Alice ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", r.Name())
	assert.NotEmpty(t, r.UID())
	assert.Empty(t, r.Phones())

	_, ok := r.Birthday()
	assert.False(t, ok)

	_, err = book.NewRecord("   ")
	assert.ErrorIs(t, err, book.ErrInvalidName)
}

func TestRecord_AddPhone(t *testing.T) {
	r := newRecord(t, "Alice", "123-456-7890")
	assert.Equal(t, []string{"1234567890"}, phoneValues(r))

	// Duplicates are kept in insertion order.
	require.NoError(t, r.AddPhone("1234567890"))
	assert.Equal(t, []string{"1234567890", "1234567890"}, phoneValues(r))

	err := r.AddPhone("12345")
	assert.ErrorIs(t, err, book.ErrInvalidPhoneFormat)
	assert.Len(t, r.Phones(), 2, "A failed add must not change the phone list")
}

func TestRecord_PhonesIsACopy(t *testing.T) {
	r := newRecord(t, "Alice", "1234567890")
	phones := r.Phones()
	phones[0] = book.Phone{}
	assert.Equal(t, []string{"1234567890"}, phoneValues(r))
}

func TestRecord_RemovePhoneAt(t *testing.T) {
	tests := []struct {
		name      string
		selection string
		wantErr   error
		removed   string
		remaining []string
	}{
		{"First", "1", nil, "1111111111", []string{"2222222222"}},
		{"Second with spaces", " 2 ", nil, "2222222222", []string{"1111111111"}},
		{"Zero", "0", book.ErrIndexOutOfRange, "", []string{"1111111111", "2222222222"}},
		{"Too high", "3", book.ErrIndexOutOfRange, "", []string{"1111111111", "2222222222"}},
		{"Negative", "-1", book.ErrIndexOutOfRange, "", []string{"1111111111", "2222222222"}},
		{"Not a number", "two", book.ErrNotANumber, "", []string{"1111111111", "2222222222"}},
		{"Blank", "", book.ErrNotANumber, "", []string{"1111111111", "2222222222"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRecord(t, "Bob", "1111111111", "2222222222")
			removed, err := r.RemovePhoneAt(tt.selection)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.removed, removed.String())
			}
			assert.Equal(t, tt.remaining, phoneValues(r))
		})
	}
}

func TestRecord_RemovePhoneAt_Empty(t *testing.T) {
	r := newRecord(t, "Bob")
	_, err := r.RemovePhoneAt("1")
	assert.ErrorIs(t, err, book.ErrEmptyPhoneList)
}

func TestRecord_CheckSelection(t *testing.T) {
	r := newRecord(t, "Bob", "1111111111", "2222222222")

	assert.NoError(t, r.CheckSelection(" 2 "))
	assert.ErrorIs(t, r.CheckSelection("0"), book.ErrIndexOutOfRange)
	assert.ErrorIs(t, r.CheckSelection("two"), book.ErrNotANumber)
	assert.ErrorIs(t, newRecord(t, "Empty").CheckSelection("1"), book.ErrEmptyPhoneList)
	assert.Len(t, r.Phones(), 2)
}

func TestRecord_ReplacePhoneAt(t *testing.T) {
	r := newRecord(t, "Bob", "1111111111", "2222222222")

	previous, err := r.ReplacePhoneAt("2", "+3 (333) 333-33-33")
	require.NoError(t, err)
	assert.Equal(t, "2222222222", previous.String())
	assert.Equal(t, []string{"1111111111", "33333333333"}, phoneValues(r))

	_, err = r.ReplacePhoneAt("1", "bad")
	assert.ErrorIs(t, err, book.ErrInvalidPhoneFormat)
	_, err = r.ReplacePhoneAt("9", "4444444444")
	assert.ErrorIs(t, err, book.ErrIndexOutOfRange)
	assert.Equal(t, []string{"1111111111", "33333333333"}, phoneValues(r), "Failed replacements must not change anything")
}

func TestRecord_SetBirthday(t *testing.T) {
	r := newRecord(t, "Carla")
	require.NoError(t, r.SetBirthday("15.03.1990"))

	err := r.SetBirthday("31.02.1990")
	assert.ErrorIs(t, err, book.ErrInvalidDateFormat)

	b, ok := r.Birthday()
	assert.True(t, ok, "A failed change must keep the previous birthday")
	assert.Equal(t, "1990-03-15", b.String())

	require.NoError(t, r.SetBirthday("01.01.2000"))
	b, _ = r.Birthday()
	assert.Equal(t, "2000-01-01", b.String())
}

func TestRecord_SetBirthday_YearOne(t *testing.T) {
	r := newRecord(t, "Old")
	require.NoError(t, r.SetBirthday("01.01.0001"))

	b, ok := r.Birthday()
	require.True(t, ok)
	assert.Equal(t, "0001-01-01", b.String())
	assert.Equal(t, "Old: phones=[], birthday=0001-01-01", r.String())

	days, err := r.DaysToBirthday(time.Date(2024, 12, 31, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, days)
}

func TestRecord_DaysToBirthday(t *testing.T) {
	r := newRecord(t, "Alice")
	_, err := r.DaysToBirthday(time.Now())
	assert.ErrorIs(t, err, book.ErrNoBirthdayKnown)

	require.NoError(t, r.SetBirthday("15.03.1990"))
	today := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	days, err := r.DaysToBirthday(today)
	require.NoError(t, err)

	// Next occurrence is 2025-03-15, not the already passed 2024-03-15.
	expected := int(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC).Sub(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)).Hours() / 24)
	assert.Equal(t, expected, days)
	assert.Equal(t, 360, days)
}

func TestRecord_String(t *testing.T) {
	r := newRecord(t, "Alice", "1234567890", "0987654321")
	assert.Equal(t, "Alice: phones=[1234567890, 0987654321]", r.String())
	assert.Equal(t, "Alice: [1234567890, 0987654321]", r.PhonesLine())

	require.NoError(t, r.SetBirthday("15.03.1990"))
	assert.Equal(t, "Alice: phones=[1234567890, 0987654321], birthday=1990-03-15", r.String())

	empty := newRecord(t, "Nobody")
	assert.Equal(t, "Nobody: phones=[]", empty.String())
}
