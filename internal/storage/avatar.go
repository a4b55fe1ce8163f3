package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// ErrConflict is returned when concurrent writers race on the same user's
// avatar file and the exclusive create keeps failing.
var ErrConflict = errors.New("avatar: concurrent write conflict")

// saveAttempts bounds the delete-then-create retry loop under races.
const saveAttempts = 2

// AvatarStore keeps at most one image file per user id under a base
// directory. The file name is the decimal user id.
type AvatarStore struct {
	dir string

	// removeFile clears the way for the exclusive create; tests swap it
	// to simulate a racing writer whose file survives removal.
	removeFile func(path string) error
}

// NewAvatarStore creates an AvatarStore rooted at dir.
func NewAvatarStore(dir string) *AvatarStore {
	return &AvatarStore{dir: dir, removeFile: os.Remove}
}

// Path returns the on-disk location of the user's avatar.
func (s *AvatarStore) Path(id uint) string {
	return filepath.Join(s.dir, strconv.FormatUint(uint64(id), 10))
}

// Save writes the avatar bytes for the user. Writes are create-new-only:
// an existing file must be removed first, so a racing writer shows up as
// fs.ErrExist. One removal retry is attempted before giving up with
// ErrConflict.
func (s *AvatarStore) Save(id uint, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("avatar: create directory: %w", err)
	}

	path := s.Path(id)
	for attempt := 0; attempt < saveAttempts; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			if err := s.removeFile(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("avatar: remove stale file: %w", err)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("avatar: create file: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(path)
			return fmt.Errorf("avatar: write file: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("avatar: close file: %w", err)
		}
		return nil
	}
	return ErrConflict
}

// Load reads the avatar bytes for the user. A missing or unreadable file
// propagates as a wrapped filesystem error.
func (s *AvatarStore) Load(id uint) ([]byte, error) {
	data, err := os.ReadFile(s.Path(id))
	if err != nil {
		return nil, fmt.Errorf("avatar: read file: %w", err)
	}
	return data, nil
}

// Remove deletes the user's avatar file if present.
func (s *AvatarStore) Remove(id uint) error {
	if err := os.Remove(s.Path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("avatar: remove file: %w", err)
	}
	return nil
}
