package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()
	store := NewAvatarStore(t.TempDir())

	if err := store.Save(7, []byte("image-bytes")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := store.Load(7)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("Load = %q, want image-bytes", data)
	}
}

func TestSaveReplacesExistingFile(t *testing.T) {
	t.Parallel()
	store := NewAvatarStore(t.TempDir())

	if err := store.Save(7, []byte("old")); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	// The second save hits an existing file; the exclusive create fails
	// once and the retry removes it before writing.
	if err := store.Save(7, []byte("new")); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	data, err := store.Load(7)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("Load = %q, want new", data)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "nested", "avatars")
	store := NewAvatarStore(dir)

	if err := store.Save(1, []byte("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "1")); err != nil {
		t.Errorf("avatar file missing: %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()
	store := NewAvatarStore(t.TempDir())

	if _, err := store.Load(999); err == nil {
		t.Error("Load(999) returned nil error, want IO error")
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()
	store := NewAvatarStore(t.TempDir())

	if err := store.Save(3, []byte("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Remove(3); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(store.Path(3)); !os.IsNotExist(err) {
		t.Errorf("file still exists after Remove: %v", err)
	}
	// Removing an absent file is not an error.
	if err := store.Remove(3); err != nil {
		t.Errorf("Remove of absent file: %v", err)
	}
}

func TestSaveConflictWhenFileKeepsReappearing(t *testing.T) {
	t.Parallel()
	store := NewAvatarStore(t.TempDir())

	if err := store.Save(7, []byte("current")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// A racing writer recreates the file between our removal and the
	// exclusive create: model it by making removal a no-op, so every
	// attempt finds the file already present.
	store.removeFile = func(string) error { return nil }

	err := store.Save(7, []byte("loser"))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Save error = %v, want ErrConflict", err)
	}

	// The surviving file is untouched by the losing writer.
	data, err := store.Load(7)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "current" {
		t.Errorf("file content = %q, want current", data)
	}
}

func TestAtMostOneFilePerUser(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := NewAvatarStore(dir)

	if err := store.Save(5, []byte("a")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(5, []byte("b")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("store holds %d files for one user, want 1", len(entries))
	}
}
