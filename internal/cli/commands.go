package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/book"
	"github.com/tartampluch/go-addressbook/internal/calendar"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/storage"
	"go.uber.org/multierr"
)

type command struct {
	usage   string
	minArgs int
	run     func(ctx context.Context, args []string) error
}

func (s *Shell) commandTable() map[string]command {
	return map[string]command{
		config.CmdAdd:            {"add <name>", 1, s.withName(s.add)},
		config.CmdAddPhone:       {"add_phone <name>", 1, s.withName(s.addPhone)},
		config.CmdChangePhone:    {"change_phone <name>", 1, s.withName(s.changePhone)},
		config.CmdRemovePhone:    {"remove_phone <name>", 1, s.withName(s.removePhone)},
		config.CmdChangeBirthday: {"change_birthday <name>", 1, s.withName(s.changeBirthday)},
		config.CmdPhone:          {"phone <name>", 1, s.withName(s.showPhones)},
		config.CmdWhen:           {"when <name>", 1, s.withName(s.when)},
		config.CmdIter:           {"iter <n>", 1, s.iter},
		config.CmdSearch:         {"search <text>", 1, s.withName(s.search)},
		config.CmdUpcoming:       {"upcoming [days]", 0, s.upcoming},
		config.CmdExport:         {"export <file.ics> [days]", 1, s.export},
		config.CmdImport:         {"import <file|url> [user]", 1, s.importCards},
		config.CmdLogin:          {"login <user>", 1, s.login},
		config.CmdHelp:           {"help", 0, s.help},
	}
}

// withName passes the remaining words as a single name, so names may contain spaces.
func (s *Shell) withName(fn func(name string) error) func(context.Context, []string) error {
	return func(_ context.Context, args []string) error {
		return fn(strings.Join(args, " "))
	}
}

func (s *Shell) showAll() {
	if s.book.Len() == 0 {
		s.say(config.TKeyEmptyBook, nil)
		return
	}
	for _, line := range s.book.Summaries() {
		s.print(line)
	}
}

func (s *Shell) add(name string) error {
	if s.book.Has(name) {
		return fmt.Errorf("%w: %s", book.ErrDuplicateName, name)
	}
	r, err := book.NewRecord(name)
	if err != nil {
		return err
	}
	data := map[string]any{"Name": r.Name()}

	for {
		raw := s.ask(config.TKeyPromptPhone, data)
		if raw == "" {
			break
		}
		if err := r.AddPhone(raw); err != nil {
			s.fail(err, map[string]any{"Name": r.Name(), "Input": raw})
			continue
		}
		s.say(config.TKeyPhoneAdded, data)
	}

	for {
		raw := s.ask(config.TKeyPromptBirthday, data)
		if raw == "" {
			break
		}
		if err := r.SetBirthday(raw); err != nil {
			s.fail(err, map[string]any{"Name": r.Name(), "Input": raw})
			continue
		}
		break
	}

	if err := s.book.Add(r); err != nil {
		return err
	}
	s.say(config.TKeyRecordAdded, data)
	return nil
}

func (s *Shell) addPhone(name string) error {
	r, err := s.book.Get(name)
	if err != nil {
		return err
	}
	raw := s.ask(config.TKeyPromptNewPhone, nil)
	if raw == "" {
		s.say(config.TKeyCancelled, nil)
		return nil
	}
	if err := r.AddPhone(raw); err != nil {
		return badInput(err, raw)
	}
	s.say(config.TKeyPhoneAdded, map[string]any{"Name": r.Name()})
	return nil
}

// changePhone replaces a selected phone. A record without phones gets the
// new phone appended instead.
func (s *Shell) changePhone(name string) error {
	r, err := s.book.Get(name)
	if err != nil {
		return err
	}
	if len(r.Phones()) == 0 {
		return s.addPhone(name)
	}

	selection, ok := s.selectPhone(r)
	if !ok {
		return nil
	}

	for {
		raw := s.ask(config.TKeyPromptNewPhone, nil)
		if raw == "" {
			s.say(config.TKeyCancelled, nil)
			return nil
		}
		previous, err := r.ReplacePhoneAt(selection, raw)
		if err != nil {
			s.fail(err, map[string]any{"Name": r.Name(), "Input": raw})
			continue
		}
		s.say(config.TKeyPhoneChanged, map[string]any{"Old": previous.String(), "New": book.NormalizePhone(raw)})
		return nil
	}
}

func (s *Shell) removePhone(name string) error {
	r, err := s.book.Get(name)
	if err != nil {
		return err
	}
	if len(r.Phones()) == 0 {
		return book.ErrEmptyPhoneList
	}

	selection, ok := s.selectPhone(r)
	if !ok {
		return nil
	}
	removed, err := r.RemovePhoneAt(selection)
	if err != nil {
		return err
	}
	s.say(config.TKeyPhoneRemoved, map[string]any{"Phone": removed.String()})
	return nil
}

// selectPhone lists the numbered phones and asks until the selection is valid.
// A blank answer cancels.
func (s *Shell) selectPhone(r *book.Record) (string, bool) {
	for i, p := range r.Phones() {
		s.print(fmt.Sprintf(config.FormatNumberedPhone, i+1, p))
	}
	for {
		selection := s.ask(config.TKeyPromptSelect, nil)
		if selection == "" {
			s.say(config.TKeyCancelled, nil)
			return "", false
		}
		if err := r.CheckSelection(selection); err != nil {
			s.fail(err, map[string]any{"Name": r.Name(), "Input": selection})
			continue
		}
		return strings.TrimSpace(selection), true
	}
}

func (s *Shell) changeBirthday(name string) error {
	r, err := s.book.Get(name)
	if err != nil {
		return err
	}
	raw := s.ask(config.TKeyPromptNewBday, nil)
	if raw == "" {
		s.say(config.TKeyCancelled, nil)
		return nil
	}
	if err := r.SetBirthday(raw); err != nil {
		return badInput(err, raw)
	}
	bday, _ := r.Birthday()
	s.say(config.TKeyBirthdaySet, map[string]any{"Name": r.Name(), "Date": bday.String()})
	return nil
}

func (s *Shell) showPhones(name string) error {
	r, err := s.book.Get(name)
	if err != nil {
		return err
	}
	s.print(r.PhonesLine())
	return nil
}

func (s *Shell) when(name string) error {
	days, err := s.book.DaysToBirthday(name, s.clock.Now())
	if err != nil {
		return err
	}
	if days == 0 {
		s.say(config.TKeyBirthdayToday, map[string]any{"Name": name})
		return nil
	}
	s.print(s.tr.Plural(config.TKeyDaysLeft, days, map[string]any{"Name": name}))
	return nil
}

// iter prints the book one page at a time, asking before each further page.
func (s *Shell) iter(_ context.Context, args []string) error {
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return badInput(fmt.Errorf("%w: %q", book.ErrNotANumber, args[0]), args[0])
	}
	pager, err := s.book.Iterate(size)
	if err != nil {
		return err
	}

	for {
		page, err := pager.Next()
		for _, line := range page {
			s.print(line)
		}
		if errors.Is(err, book.ErrNoMoreRecords) {
			s.say(config.TKeyNoMoreRecords, nil)
			return nil
		}
		if err != nil {
			return err
		}
		if s.ask(config.TKeyPromptNextPage, map[string]any{"Count": size}) == "" {
			return nil
		}
	}
}

func (s *Shell) search(text string) error {
	found := s.book.Search(text)
	if len(found) == 0 {
		s.say(config.TKeyNothingFound, map[string]any{"Text": text})
		return nil
	}
	for _, line := range found {
		s.print(line)
	}
	return nil
}

func (s *Shell) upcoming(_ context.Context, args []string) error {
	days := config.DefaultUpcomingDays
	if len(args) > 0 {
		n, err := parseDays(args[0], config.UpcomingDaysMax)
		if err != nil {
			return err
		}
		days = n
	}

	entries := calendar.Upcoming(s.book.Records(), s.clock.Now(), days)
	if len(entries) == 0 {
		s.say(config.TKeyNoUpcoming, map[string]any{"Days": days})
		return nil
	}
	for _, e := range entries {
		s.say(config.TKeyUpcomingLine, map[string]any{
			"Date": e.NextOccurrence.Format(config.DateFormatDisplay),
			"Name": e.Name,
			"Age":  e.AgeNext,
			"Days": e.DaysLeft,
		})
	}
	return nil
}

func (s *Shell) export(_ context.Context, args []string) (err error) {
	path := args[0]
	if !strings.HasSuffix(strings.ToLower(path), config.ExtICS) {
		path += config.ExtICS
	}

	trigger := ""
	if len(args) > 1 {
		days, err := parseDays(args[1], config.UpcomingDaysMax)
		if err != nil {
			return err
		}
		trigger = calendar.ReminderTrigger(days)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, config.FilePermUserRW)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrExportCreate, err)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	n, err := s.exporter.Export(f, s.book.Records(), trigger)
	if err != nil {
		return err
	}
	slog.Info(config.MsgExported, config.LogKeyComponent, config.CompShell, config.LogKeyFile, path)
	s.say(config.TKeyExported, map[string]any{"Count": n, "File": path})
	return nil
}

// importCards merges a vCard file or URL. For URLs the password of the given
// user comes from the secret store; a missing password means an empty one.
func (s *Shell) importCards(ctx context.Context, args []string) error {
	source := args[0]

	var creds storage.Credentials
	if len(args) > 1 && storage.IsRemote(source) {
		creds.User = args[1]
		pass, err := s.secrets.Get(creds.User)
		if err != nil {
			slog.Warn(config.MsgPassFail,
				config.LogKeyComponent, config.CompShell,
				config.LogKeyUser, creds.User,
				config.LogKeyError, err,
			)
		}
		creds.Password = pass
	}

	stats, err := s.importer.Import(ctx, s.book, source, creds)
	if err != nil {
		return err
	}
	s.say(config.TKeyImported, map[string]any{
		"Added":      stats.Added,
		"Duplicates": stats.Duplicates,
		"Skipped":    stats.Skipped,
	})
	return nil
}

func (s *Shell) login(_ context.Context, args []string) error {
	user := args[0]
	pass := s.ask(config.TKeyPromptPassword, map[string]any{"User": user})
	if pass == "" {
		s.say(config.TKeyCancelled, nil)
		return nil
	}
	if err := s.secrets.Set(user, pass); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringSet, err)
	}
	s.say(config.TKeyLoginSaved, map[string]any{"User": user})
	return nil
}

func (s *Shell) help(context.Context, []string) error {
	s.say(config.TKeyHelp, nil)
	s.say(config.TKeyHelpLanguages, map[string]any{"Languages": strings.Join(s.tr.Languages(), ", ")})
	return nil
}

// parseDays accepts a day count in [0, limit].
func parseDays(raw string, limit int) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > limit {
		return 0, badInput(fmt.Errorf("%w: %s", book.ErrNotANumber, config.ErrDaysNotNumber), raw)
	}
	return n, nil
}
