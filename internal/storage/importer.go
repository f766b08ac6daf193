package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-addressbook/internal/book"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// ImportStats summarizes a merge of foreign cards into the book.
type ImportStats struct {
	Processed  int
	Added      int
	Duplicates int
	Skipped    int
}

// Importer merges contacts from a local .vcf file or an HTTP(S) URL.
type Importer struct {
	Fetcher Fetcher
}

// Import reads every card from source and adds those whose name is not yet
// in the book. Invalid phones and unparseable birthdays are dropped from the
// card; cards without any name are skipped entirely.
func (im *Importer) Import(ctx context.Context, b *book.AddressBook, source string, creds Credentials) (ImportStats, error) {
	start := time.Now()
	var stats ImportStats

	reader, err := im.open(ctx, source, creds)
	if err != nil {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		return stats, err
	}
	defer func() { _ = reader.Close() }()

	log := slog.With(config.LogKeyComponent, config.CompStorage)
	dec := vcard.NewDecoder(reader)

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			stats.Skipped++
			continue
		}
		stats.Processed++

		rec, err := foreignRecord(card)
		if err != nil {
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			stats.Skipped++
			continue
		}
		if b.Has(rec.Name()) {
			log.Debug(config.MsgSkippedDup, config.LogKeyName, rec.Name())
			stats.Duplicates++
			continue
		}
		if err := b.Add(rec); err != nil {
			return stats, err
		}
		stats.Added++
	}

	log.Info(config.MsgImported,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.Processed),
			slog.Int(config.LogKeyAdded, stats.Added),
			slog.Int(config.LogKeySkipped, stats.Skipped+stats.Duplicates),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return stats, nil
}

func (im *Importer) open(ctx context.Context, source string, creds Credentials) (io.ReadCloser, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, errors.New(config.ErrSourceEmpty)
	}

	if isRemote(source) {
		if im.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return im.Fetcher.Fetch(ctx, source, creds)
	}
	return os.Open(source)
}

// IsRemote reports whether source names an HTTP(S) location.
func IsRemote(source string) bool {
	return isRemote(strings.TrimSpace(source))
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, config.SchemeHTTP+"://") ||
		strings.HasPrefix(lower, config.SchemeHTTPS+"://")
}

// foreignRecord maps a card from another tool onto a Record.
// Name strategy: FN, then the raw N value.
func foreignRecord(card vcard.Card) (*book.Record, error) {
	log := slog.With(config.LogKeyComponent, config.CompStorage)

	name := strings.TrimSpace(card.Value(vcard.FieldFormattedName))
	if name == "" {
		if n := card.Get(vcard.FieldName); n != nil {
			name = strings.Join(strings.FieldsFunc(n.Value, func(r rune) bool {
				return r == ';' || r == ' '
			}), " ")
		}
	}
	if name == "" {
		return nil, errors.New(config.ErrCardNoName)
	}

	var phones []book.Phone
	for _, raw := range card.Values(vcard.FieldTelephone) {
		p, err := book.NewPhone(strings.TrimPrefix(raw, "tel:"))
		if err != nil {
			log.Debug(config.MsgSkippedPhone, config.LogKeyName, name, config.LogKeyValue, raw)
			continue
		}
		phones = append(phones, p)
	}

	var bday book.Birthday
	if raw := card.Value(vcard.FieldBirthday); raw != "" {
		parsed, err := parseForeignDate(raw)
		if err != nil {
			log.Debug(config.MsgSkippedDate, config.LogKeyName, name, config.LogKeyValue, raw)
		} else {
			bday = parsed
		}
	}

	rec, err := book.RestoreRecord(card.Value(vcard.FieldUID), name, phones, bday)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCardNoName, err)
	}
	return rec, nil
}
