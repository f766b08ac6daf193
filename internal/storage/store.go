package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-addressbook/internal/book"
	"github.com/tartampluch/go-addressbook/internal/config"
	"go.uber.org/multierr"
)

// Store loads and saves a whole address book.
type Store interface {
	Load() (*book.AddressBook, error)
	Save(b *book.AddressBook) error
}

// FileStore keeps the address book in a single vCard file.
type FileStore struct {
	Path string
}

// NewFileStore creates a store for the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// DefaultPath returns the platform-specific location of the address book.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrConfigDir, err)
	}
	return filepath.Join(dir, config.AppID, config.BookFileName), nil
}

// Load reads the file. A missing file yields an empty book and no error.
func (s *FileStore) Load() (*book.AddressBook, error) {
	log := slog.With(
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyFile, s.Path,
	)

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info(config.MsgBookMissing)
		return book.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBookLoad, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return book.New(), nil
	}

	b, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBookLoad, err)
	}
	log.Info(config.MsgBookLoaded, config.LogKeyRecords, b.Len())
	return b, nil
}

// Save overwrites the file with the whole book. The content is written to a
// temporary file in the same directory and renamed over the target, so readers
// only ever see a complete snapshot.
func (s *FileStore) Save(b *book.AddressBook) (err error) {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrBookSave, err)
	}

	tmp, err := os.CreateTemp(dir, config.TempFilePrefix)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrBookSave, err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, os.Remove(tmp.Name()))
		}
	}()

	if err := Encode(tmp, b); err != nil {
		return multierr.Append(fmt.Errorf("%s: %w", config.ErrBookSave, err), tmp.Close())
	}
	if err := tmp.Sync(); err != nil {
		return multierr.Append(fmt.Errorf("%s: %w", config.ErrBookSave, err), tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrBookSave, err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("%s: %w", config.ErrBookSave, err)
	}

	slog.Debug(config.MsgBookSaved,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyFile, s.Path,
		config.LogKeyRecords, b.Len(),
	)
	return nil
}

// Quarantine moves an unreadable file aside so the next Save cannot
// overwrite it. It returns the new location.
func (s *FileStore) Quarantine() (string, error) {
	target := s.Path + config.CorruptSuffix
	if err := os.Rename(s.Path, target); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrBookQuarantine, err)
	}
	return target, nil
}
