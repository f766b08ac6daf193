package book_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/book"
)

// newBook fills an address book with the given records in order.
func newBook(t *testing.T, records ...*book.Record) *book.AddressBook {
	t.Helper()
	b := book.New()
	for _, r := range records {
		require.NoError(t, b.Add(r))
	}
	return b
}

func TestAddressBook_AddRecord(t *testing.T) {
	b := book.New()
	r, err := b.AddRecord("Alice")
	require.NoError(t, err)
	require.NoError(t, r.AddPhone("123-456-7890"))

	assert.Equal(t, 1, b.Len())
	assert.True(t, b.Has("Alice"))
	assert.False(t, b.Has("alice"), "Keys are case-sensitive")

	_, err = b.AddRecord("")
	assert.ErrorIs(t, err, book.ErrInvalidName)
}

func TestAddressBook_DuplicateName(t *testing.T) {
	alice := newRecord(t, "Alice", "1234567890")
	b := newBook(t, alice)

	_, err := b.AddRecord("Alice")
	assert.ErrorIs(t, err, book.ErrDuplicateName)

	other := newRecord(t, "Alice", "5555555555")
	assert.ErrorIs(t, b.Add(other), book.ErrDuplicateName)

	found, ok := b.Find("Alice")
	require.True(t, ok)
	assert.Same(t, alice, found, "The existing record must be kept")
	assert.Equal(t, []string{"1234567890"}, phoneValues(found))
	assert.Equal(t, 1, b.Len())
}

func TestAddressBook_FindAndGet(t *testing.T) {
	b := newBook(t, newRecord(t, "Alice"))

	_, ok := b.Find("Ali")
	assert.False(t, ok, "No fuzzy matching")

	_, err := b.Get("Bob")
	assert.ErrorIs(t, err, book.ErrNotFound)

	r, err := b.Get("Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", r.Name())
}

func TestAddressBook_InsertionOrder(t *testing.T) {
	b := newBook(t, newRecord(t, "Zed"), newRecord(t, "Alice"), newRecord(t, "Mike"))

	var names []string
	for _, r := range b.Records() {
		names = append(names, r.Name())
	}
	assert.Equal(t, []string{"Zed", "Alice", "Mike"}, names)
	assert.Equal(t, []string{"Zed: phones=[]", "Alice: phones=[]", "Mike: phones=[]"}, b.Summaries())
}

func TestAddressBook_Search(t *testing.T) {
	b := newBook(t,
		newRecord(t, "Alice", "0501112233"),
		newRecord(t, "Bob", "0675550000"),
		newRecord(t, "Alina", "0935551234"),
		newRecord(t, "Carl", "0631234567"),
	)

	t.Run("Name is case-insensitive", func(t *testing.T) {
		assert.Equal(t, []string{
			"Alice: phones=[0501112233]",
			"Alina: phones=[0935551234]",
		}, b.Search("ALI"))
		assert.Len(t, b.Search("ali"), 2)
	})

	t.Run("Phone substring", func(t *testing.T) {
		assert.Equal(t, []string{
			"Bob: phones=[0675550000]",
			"Alina: phones=[0935551234]",
		}, b.Search("555"))
	})

	t.Run("Both criteria list a record once", func(t *testing.T) {
		r, ok := b.Find("Carl")
		require.True(t, ok)
		require.NoError(t, r.AddPhone("0990000000"))
		// "0" matches no name but several phones; "Carl" appears once.
		assert.Equal(t, 1, countOf(b.Search("0"), "Carl: phones=[0631234567, 0990000000]"))
	})

	t.Run("No match", func(t *testing.T) {
		assert.Empty(t, b.Search("zzz"))
	})
}

func countOf(values []string, want string) int {
	n := 0
	for _, v := range values {
		if v == want {
			n++
		}
	}
	return n
}

func TestAddressBook_Iterate(t *testing.T) {
	b := book.New()
	for i := 1; i <= 5; i++ {
		_, err := b.AddRecord(fmt.Sprintf("Contact %d", i))
		require.NoError(t, err)
	}

	pager, err := b.Iterate(2)
	require.NoError(t, err)

	page, err := pager.Next()
	require.NoError(t, err)
	assert.Equal(t, []string{"Contact 1: phones=[]", "Contact 2: phones=[]"}, page)

	page, err = pager.Next()
	require.NoError(t, err)
	assert.Equal(t, []string{"Contact 3: phones=[]", "Contact 4: phones=[]"}, page)

	// Third call: the last record comes with the exhaustion signal.
	page, err = pager.Next()
	assert.ErrorIs(t, err, book.ErrNoMoreRecords)
	assert.Equal(t, []string{"Contact 5: phones=[]"}, page)

	// The pager cannot be restarted.
	page, err = pager.Next()
	assert.ErrorIs(t, err, book.ErrNoMoreRecords)
	assert.Empty(t, page)
}

func TestAddressBook_Iterate_ExactMultiple(t *testing.T) {
	b := newBook(t, newRecord(t, "A"), newRecord(t, "B"))
	pager, err := b.Iterate(2)
	require.NoError(t, err)

	page, err := pager.Next()
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = pager.Next()
	assert.ErrorIs(t, err, book.ErrNoMoreRecords)
	assert.Empty(t, page)
}

func TestAddressBook_Iterate_HugePageSize(t *testing.T) {
	b := newBook(t, newRecord(t, "A"), newRecord(t, "B"))
	pager, err := b.Iterate(1 << 40)
	require.NoError(t, err)

	page, err := pager.Next()
	assert.ErrorIs(t, err, book.ErrNoMoreRecords)
	assert.Equal(t, []string{"A: phones=[]", "B: phones=[]"}, page)
}

func TestAddressBook_Iterate_Empty(t *testing.T) {
	pager, err := book.New().Iterate(3)
	require.NoError(t, err)
	_, err = pager.Next()
	assert.ErrorIs(t, err, book.ErrNoMoreRecords)
}

func TestAddressBook_Iterate_InvalidSize(t *testing.T) {
	_, err := book.New().Iterate(0)
	assert.ErrorIs(t, err, book.ErrInvalidPageSize)
}

func TestAddressBook_Iterate_IncludesBirthday(t *testing.T) {
	r := newRecord(t, "Alice", "1234567890")
	require.NoError(t, r.SetBirthday("15.03.1990"))
	b := newBook(t, r)

	pager, err := b.Iterate(1)
	require.NoError(t, err)
	page, err := pager.Next()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice: phones=[1234567890], birthday=1990-03-15"}, page)
}

func TestAddressBook_DaysToBirthday(t *testing.T) {
	alice := newRecord(t, "Alice")
	require.NoError(t, alice.SetBirthday("15.03.1990"))
	b := newBook(t, alice, newRecord(t, "Bob"))
	today := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	days, err := b.DaysToBirthday("Alice", today)
	require.NoError(t, err)
	assert.Equal(t, 360, days)

	_, err = b.DaysToBirthday("Bob", today)
	assert.ErrorIs(t, err, book.ErrNoBirthdayKnown)

	_, err = b.DaysToBirthday("Eve", today)
	assert.ErrorIs(t, err, book.ErrNotFound)
}
