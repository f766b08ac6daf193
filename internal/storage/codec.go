// Package storage persists the address book as a versioned vCard stream and
// imports contacts from foreign vCard sources.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-addressbook/internal/book"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// ErrUnsupportedFormat is returned when a stored card carries a schema tag
// this build does not understand.
var ErrUnsupportedFormat = errors.New(config.ErrSchemaMismatch)

// Encode writes one vCard per record, in insertion order. Phones keep their
// order through repeated TEL fields.
func Encode(w io.Writer, b *book.AddressBook) error {
	bw := bufio.NewWriter(w)
	enc := vcard.NewEncoder(bw)

	for _, r := range b.Records() {
		if err := enc.Encode(recordToCard(r)); err != nil {
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	return bw.Flush()
}

func recordToCard(r *book.Record) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, config.VCardVersion)
	card.SetValue(config.VCardSchema, config.SchemaVersion)
	card.SetValue(vcard.FieldUID, r.UID())
	card.SetValue(vcard.FieldFormattedName, r.Name())
	for _, p := range r.Phones() {
		card.AddValue(vcard.FieldTelephone, p.String())
	}
	if bday, ok := r.Birthday(); ok {
		card.SetValue(vcard.FieldBirthday, bday.String())
	}
	return card
}

// Decode reads a stream written by Encode. Any malformed card, unknown schema
// or invalid value fails the whole decode so a damaged file is never half-loaded.
func Decode(r io.Reader) (*book.AddressBook, error) {
	dec := vcard.NewDecoder(r)
	b := book.New()

	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}

		if schema := card.Value(config.VCardSchema); schema != config.SchemaVersion {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, schema)
		}

		rec, err := cardToRecord(card)
		if err != nil {
			return nil, err
		}
		if err := b.Add(rec); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func cardToRecord(card vcard.Card) (*book.Record, error) {
	phones := make([]book.Phone, 0, len(card[vcard.FieldTelephone]))
	for _, raw := range card.Values(vcard.FieldTelephone) {
		p, err := book.NewPhone(raw)
		if err != nil {
			return nil, err
		}
		phones = append(phones, p)
	}

	var bday book.Birthday
	if raw := card.Value(vcard.FieldBirthday); raw != "" {
		t, err := time.Parse(config.DateFormatDisplay, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", book.ErrInvalidDateFormat, raw)
		}
		if bday, err = book.NewBirthday(t.Year(), t.Month(), t.Day()); err != nil {
			return nil, err
		}
	}

	return book.RestoreRecord(
		card.Value(vcard.FieldUID),
		card.Value(vcard.FieldFormattedName),
		phones,
		bday,
	)
}

// parseForeignDate handles the BDAY layouts found in vCards exported by other
// tools. Truncated dates (--MM-DD) carry no year and are rejected.
func parseForeignDate(value string) (book.Birthday, error) {
	formats := []string{
		config.DateFormatDisplay,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	value = strings.TrimSpace(value)
	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return book.NewBirthday(t.Year(), t.Month(), t.Day())
		}
	}
	return book.Birthday{}, fmt.Errorf("%w: %q", book.ErrInvalidDateFormat, value)
}
