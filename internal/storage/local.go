package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore manages the session data directory. Uploads replace the whole
// session, and individual files are written atomically (temp + rename) so a
// concurrent dashboard read never sees a half-written file.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Dir returns the managed directory.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Clear removes every regular file in the data directory, leaving the
// directory itself in place.
func (s *LocalStore) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return os.MkdirAll(s.dir, 0755)
		}
		return fmt.Errorf("read data dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// Write persists a file atomically under a sanitized name and returns the
// final path.
func (s *LocalStore) Write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("ensure data dir: %w", err)
	}

	clean := SanitizeFileName(name)
	if clean == "" {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	final := filepath.Join(s.dir, clean)

	tmp, err := os.CreateTemp(s.dir, clean+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("replace %s: %w", clean, err)
	}

	return final, nil
}

// List returns the visible data files in the directory.
func (s *LocalStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

// SanitizeFileName strips path separators and leading dots so an uploaded
// name can't escape the data directory.
func SanitizeFileName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	base = strings.TrimLeft(base, ".")
	return strings.ToLower(base)
}
