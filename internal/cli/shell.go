// Package cli implements the interactive address book shell.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/book"
	"github.com/tartampluch/go-addressbook/internal/calendar"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/storage"
)

// Options wires a Shell. Book and Store are required; the rest have defaults.
type Options struct {
	In         io.Reader
	Out        io.Writer
	Book       *book.AddressBook
	Store      storage.Store
	Clock      book.Clock
	Translator *Translator
	Fetcher    storage.Fetcher
	Secrets    SecretStore
}

// Shell reads commands line by line and applies them to the address book.
// The whole book is saved after every command cycle.
type Shell struct {
	in       *bufio.Scanner
	out      io.Writer
	book     *book.AddressBook
	store    storage.Store
	clock    book.Clock
	tr       *Translator
	importer *storage.Importer
	exporter *calendar.Exporter
	secrets  SecretStore
	commands map[string]command
}

// NewShell builds a shell from opts.
func NewShell(opts Options) *Shell {
	if opts.Clock == nil {
		opts.Clock = book.RealClock{}
	}
	if opts.Fetcher == nil {
		opts.Fetcher = storage.NewHTTPFetcher()
	}
	if opts.Secrets == nil {
		opts.Secrets = KeyringSecrets{Service: config.KeyringService}
	}

	in := bufio.NewScanner(opts.In)
	in.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), config.MaxInputLineSize)

	s := &Shell{
		in:       in,
		out:      opts.Out,
		book:     opts.Book,
		store:    opts.Store,
		clock:    opts.Clock,
		tr:       opts.Translator,
		importer: &storage.Importer{Fetcher: opts.Fetcher},
		secrets:  opts.Secrets,
	}
	s.exporter = &calendar.Exporter{Clock: opts.Clock, FormatSummary: s.eventSummary}
	s.commands = s.commandTable()
	return s
}

// Run processes commands until an exit word, the end of input or a read error.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, config.Prompt)
		line, ok := s.readLine()
		if !ok {
			if err := s.in.Err(); err != nil {
				return fmt.Errorf("%s: %w", config.ErrReadInput, err)
			}
			slog.Info(config.MsgInputClosed, config.LogKeyComponent, config.CompShell)
			s.say(config.TKeyGoodbye, nil)
			return nil
		}

		if stop := s.cycle(ctx, line); stop {
			return nil
		}
	}
}

// cycle handles one input line. The book is saved on every path out.
func (s *Shell) cycle(ctx context.Context, line string) (stop bool) {
	defer s.save()

	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}

	whole := strings.ToLower(strings.Join(words, " "))
	if slices.Contains(config.ExitCommands, whole) {
		s.say(config.TKeyGoodbye, nil)
		return true
	}
	if slices.Contains(config.ShowAllCommands, whole) {
		s.showAll()
		return false
	}

	name := strings.ToLower(words[0])
	cmd, ok := s.commands[name]
	if !ok {
		s.say(config.TKeyUnknownCommand, map[string]any{"Command": line})
		return false
	}

	args := words[1:]
	if len(args) < cmd.minArgs {
		s.say(config.TKeyUsage, map[string]any{"Usage": cmd.usage})
		return false
	}

	slog.Debug(config.MsgCommand, config.LogKeyComponent, config.CompShell, config.LogKeyCommand, name)
	if err := cmd.run(ctx, args); err != nil {
		slog.Warn(config.MsgCommandFailed,
			config.LogKeyComponent, config.CompShell,
			config.LogKeyCommand, name,
			config.LogKeyError, err,
		)
		s.fail(err, map[string]any{"Name": strings.Join(args, " ")})
	}
	return false
}

func (s *Shell) save() {
	if err := s.store.Save(s.book); err != nil {
		slog.Error(config.ErrBookSave,
			config.LogKeyComponent, config.CompShell,
			config.LogKeyError, err,
		)
		s.say(config.TKeySaveFailed, map[string]any{"Error": err.Error()})
	}
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

// ask prints a localized prompt and returns the trimmed answer. The end of
// input reads as a blank answer.
func (s *Shell) ask(key string, data map[string]any) string {
	fmt.Fprint(s.out, s.tr.Msg(key, data))
	line, _ := s.readLine()
	return strings.TrimSpace(line)
}

func (s *Shell) say(key string, data map[string]any) {
	fmt.Fprintln(s.out, s.tr.Msg(key, data))
}

func (s *Shell) print(line string) {
	fmt.Fprintln(s.out, line)
}

// inputError attaches the offending user input to an error.
type inputError struct {
	err   error
	input string
}

func (e *inputError) Error() string { return e.err.Error() }

func (e *inputError) Unwrap() error { return e.err }

func badInput(err error, input string) error {
	return &inputError{err: err, input: input}
}

var errorKeys = []struct {
	err error
	key string
}{
	{book.ErrInvalidPhoneFormat, config.TKeyErrPhoneFormat},
	{book.ErrInvalidDateFormat, config.TKeyErrDateFormat},
	{book.ErrDuplicateName, config.TKeyErrDuplicate},
	{book.ErrNotFound, config.TKeyErrNotFound},
	{book.ErrIndexOutOfRange, config.TKeyErrOutOfRange},
	{book.ErrNotANumber, config.TKeyErrNotANumber},
	{book.ErrEmptyPhoneList, config.TKeyErrEmptyPhones},
	{book.ErrNoBirthdayKnown, config.TKeyErrNoBirthday},
	{book.ErrInvalidName, config.TKeyErrInvalidName},
	{book.ErrInvalidPageSize, config.TKeyErrPageSize},
}

// fail prints the localized message for err. data supplies Name and, unless
// err carries its own, Input.
func (s *Shell) fail(err error, data map[string]any) {
	msg := map[string]any{"Error": err.Error()}
	for k, v := range data {
		msg[k] = v
	}
	if _, ok := msg["Input"]; !ok {
		msg["Input"] = msg["Name"]
	}

	var ie *inputError
	if errors.As(err, &ie) {
		msg["Input"] = ie.input
	}

	for _, ek := range errorKeys {
		if errors.Is(err, ek.err) {
			s.say(ek.key, msg)
			return
		}
	}
	s.say(config.TKeyErrUnexpected, msg)
}

func (s *Shell) eventSummary(name string, age int) string {
	if age == 0 {
		return s.tr.Msg(config.TKeyEvtSummaryBirth, map[string]any{"Name": name})
	}
	return s.tr.Msg(config.TKeyEvtSummaryAge, map[string]any{"Name": name, "Age": age})
}
