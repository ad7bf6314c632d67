// ABOUTME: Durable key/value state file for values that must survive restarts
// ABOUTME: Stores string values as JSON in the XDG config directory

package statefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// FileName is the name of the state file inside the config directory
const FileName = "state.json"

// File is a small JSON document mapping durable keys to string values.
// Every write rewrites the whole document atomically.
type File struct {
	dir    string
	logger *slog.Logger
	mu     sync.Mutex
}

// New creates a state file rooted at dir
func New(dir string, logger *slog.Logger) *File {
	if logger == nil {
		logger = slog.Default()
	}
	return &File{dir: dir, logger: logger}
}

// DefaultDir returns the default state directory under XDG_CONFIG_HOME
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "faris")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "faris")
}

// Dir returns the directory holding the state file
func (f *File) Dir() string {
	return f.dir
}

// Path returns the full path of the state file
func (f *File) Path() string {
	return filepath.Join(f.dir, FileName)
}

// Get returns the value stored under key.
// A missing file, missing key or corrupt document all report ok=false.
// A file that exists but cannot be read is an error.
func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	if cur, ok := values[key]; ok && cur == value {
		return nil
	}
	values[key] = value
	return f.save(values)
}

// Delete removes key. Deleting an absent key is not an error.
func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.save(values)
}

func (f *File) load() (map[string]string, error) {
	data, err := os.ReadFile(f.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		f.logger.Warn("State file is corrupt, starting fresh", "path", f.Path(), "error", err)
		return map[string]string{}, nil
	}
	return values, nil
}

func (f *File) save(values map[string]string) error {
	if f.dir == "" {
		return errors.New("state directory not configured")
	}
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close state file: %w", err)
	}
	return os.Rename(tmp.Name(), f.Path())
}
