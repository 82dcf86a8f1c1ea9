package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// CurrentSettingsVersion is the settings file format this build writes.
const CurrentSettingsVersion = 1

// ErrNewerSettings is returned when the settings file was written by a
// newer release; it is not loaded so that unknown fields are not lost.
var ErrNewerSettings = errors.New("settings file is from a newer version")

// Settings are the user preferences kept next to the application rather
// than inside a store.
type Settings struct {
	Version             int    `yaml:"version" json:"version"`
	Language            string `yaml:"language" json:"language" validate:"oneof=en de"`
	Theme               string `yaml:"theme" json:"theme" validate:"oneof=dark light"`
	DefaultSeatCapacity int    `yaml:"default_seat_capacity" json:"default_seat_capacity" validate:"gte=1,lte=1000"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Version:             CurrentSettingsVersion,
		Language:            "en",
		Theme:               "dark",
		DefaultSeatCapacity: 6,
	}
}

var settingsValidator = validator.New()

// Validate checks the preference values.
func (s Settings) Validate() error {
	return settingsValidator.Struct(s)
}

// SettingsFile is a settings file on disk plus its loaded content.  It is
// safe for concurrent use.
type SettingsFile struct {
	path    string
	mu      sync.RWMutex
	current Settings
}

// OpenSettings loads the settings file at path.  A missing file is created
// with defaults.  A file from a newer version is refused.
func OpenSettings(path string) (*SettingsFile, error) {
	sf := &SettingsFile{path: path}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		sf.current = DefaultSettings()
		if err := sf.write(sf.current); err != nil {
			return nil, err
		}
		return sf, nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings file cannot be opened: %w", err)
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("settings file has invalid syntax: %w", err)
	}
	if s.Version > CurrentSettingsVersion {
		return nil, fmt.Errorf("%w (version %d)", ErrNewerSettings, s.Version)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings file has invalid values: %w", err)
	}
	s.Version = CurrentSettingsVersion
	sf.current = s
	return sf, nil
}

// Get returns a copy of the current settings.
func (sf *SettingsFile) Get() Settings {
	sf.mu.RLock()
	defer sf.mu.RUnlock()
	return sf.current
}

// Update validates s, writes it to disk and makes it current.
func (sf *SettingsFile) Update(s Settings) error {
	s.Version = CurrentSettingsVersion
	if err := s.Validate(); err != nil {
		return err
	}
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if err := sf.write(s); err != nil {
		return err
	}
	sf.current = s
	return nil
}

func (sf *SettingsFile) write(s Settings) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("cannot encode settings: %w", err)
	}
	if dir := filepath.Dir(sf.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}
	if err := os.WriteFile(sf.path, out, 0o644); err != nil {
		return fmt.Errorf("cannot write settings file to %s: %w", sf.path, err)
	}
	return nil
}
