package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"connectorauth/pkg/logging"
)

// statesDir is the subdirectory holding saved form-state files.
const statesDir = "states"

// ErrStateNotFound is returned when a named state file does not exist.
var ErrStateNotFound = errors.New("state not found")

// StateStorage persists named form-state files below the configuration
// directory. Files may contain secrets and are written owner-readable only.
type StateStorage struct {
	mu         sync.RWMutex
	configPath string // Optional custom config path; otherwise ~/.config/connectorauth
}

// NewStateStorage creates a storage rooted at configPath. An empty path
// selects the default configuration directory.
func NewStateStorage(configPath string) *StateStorage {
	return &StateStorage{configPath: configPath}
}

// Path returns the file path a state with the given name is stored at.
func (s *StateStorage) Path(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("name cannot be empty")
	}
	dir, err := s.dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sanitizeFilename(name)+".yaml"), nil
}

// Save stores data under name.
func (s *StateStorage) Save(name string, data []byte) error {
	filePath, err := s.Path(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(filePath), 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(filePath), err)
	}
	if err := os.WriteFile(filePath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	logging.Info("Storage", "Saved state %s to %s", name, filePath)
	return nil
}

// Load returns the content of the named state.
func (s *StateStorage) Load(name string) ([]byte, error) {
	filePath, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrStateNotFound, name)
		}
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	logging.Debug("Storage", "Loaded state %s from %s", name, filePath)
	return data, nil
}

// Delete removes the named state.
func (s *StateStorage) Delete(name string) error {
	filePath, err := s.Path(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrStateNotFound, name)
		}
		return fmt.Errorf("failed to delete file %s: %w", filePath, err)
	}

	logging.Info("Storage", "Deleted state %s", name)
	return nil
}

// List returns the names of all saved states in sorted order.
func (s *StateStorage) List() ([]string, error) {
	dir, err := s.dir()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		files, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to glob %s files: %w", pattern, err)
		}
		for _, file := range files {
			base := filepath.Base(file)
			names = append(names, strings.TrimSuffix(base, filepath.Ext(base)))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *StateStorage) dir() (string, error) {
	if s.configPath != "" {
		return filepath.Join(s.configPath, statesDir), nil
	}
	configDir, err := GetUserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, statesDir), nil
}

var filenameReplacer = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_", ".", "_", " ", "_",
)

// sanitizeFilename ensures the filename is safe for filesystem operations
func sanitizeFilename(name string) string {
	sanitized := filenameReplacer.Replace(strings.TrimSpace(name))

	// Collapse multiple consecutive underscores to single underscore
	for strings.Contains(sanitized, "__") {
		sanitized = strings.ReplaceAll(sanitized, "__", "_")
	}
	sanitized = strings.Trim(sanitized, "_")

	if sanitized == "" {
		sanitized = "unnamed"
	}
	return sanitized
}
