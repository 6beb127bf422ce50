// Package storage is the local key-value store behind best scores and the
// leaderboard. Values are opaque text blobs written whole.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrNotFound is returned by Get when the key has never been written or was deleted.
var ErrNotFound = errors.New("storage: key not found")

// KV is a flat string store. Implementations are not safe for concurrent writers.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

var (
	validKey   = regexp.MustCompile(`^[a-z0-9._-]+$`)
	invalidKey = regexp.MustCompile(`[^a-z0-9._-]`)
)

// FileKV keeps one file per key inside a directory.
type FileKV struct {
	dir string
}

// NewFileKV opens (and creates if needed) a store rooted at dir.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage dir: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

func (f *FileKV) Dir() string { return f.dir }

func (f *FileKV) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	return filepath.Join(f.dir, key+".dat"), nil
}

func (f *FileKV) Get(key string) (string, error) {
	p, err := f.path(key)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return string(b), nil
}

// Set replaces the value atomically: a crash mid-write leaves the old value.
func (f *FileKV) Set(key, value string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete removes the key; deleting a missing key is not an error.
func (f *FileKV) Delete(key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// MemKV is an in-memory store. The Fail* switches simulate an unavailable
// or full backing store.
type MemKV struct {
	m          map[string]string
	FailReads  bool
	FailWrites bool
}

var errUnavailable = errors.New("storage: unavailable")

func NewMemKV() *MemKV {
	return &MemKV{m: make(map[string]string)}
}

func (m *MemKV) Get(key string) (string, error) {
	if m.FailReads {
		return "", errUnavailable
	}
	v, ok := m.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemKV) Set(key, value string) error {
	if m.FailWrites {
		return errUnavailable
	}
	m.m[key] = value
	return nil
}

func (m *MemKV) Delete(key string) error {
	if m.FailWrites {
		return errUnavailable
	}
	delete(m.m, key)
	return nil
}

func sanitize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = invalidKey.ReplaceAllString(s, "")
	if s == "" {
		s = "default"
	}
	return s
}

// DefaultDir is the per-profile data directory:
//
//	Linux:   ~/.config/TopdownRacer/<profile>/
//	macOS:   ~/Library/Application Support/TopdownRacer/<profile>/
//	Windows: %APPDATA%\TopdownRacer\<profile>\
//
// The profile comes from RACER_PROFILE and defaults to "default".
func DefaultDir() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil || root == "" {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("no config dir: %w", errors.Join(err, herr))
		}
		root = filepath.Join(home, ".config")
	}
	return filepath.Join(root, "TopdownRacer", sanitize(os.Getenv("RACER_PROFILE"))), nil
}
