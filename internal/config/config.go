// Package config loads and persists server settings from
// ~/.super-prompt/config.yaml. A missing file is not an error — the
// server runs on defaults and the file is created on first save.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Mode is the LLM mode the persona tools optimize for.
type Mode string

const (
	ModeGPT  Mode = "gpt"
	ModeGrok Mode = "grok"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeGPT || m == ModeGrok
}

// Settings is the persisted server configuration.
type Settings struct {
	// Mode selects the LLM flavor persona tools target.
	Mode Mode `yaml:"mode"`

	// ForceFallback disables the primary runtime, forcing the
	// line-delimited fallback server. Used when the SDK transport
	// misbehaves with a particular client.
	ForceFallback bool `yaml:"force_fallback"`

	// DataDir holds the event database. Defaults to ~/.super-prompt.
	DataDir string `yaml:"data_dir"`
}

// Defaults returns the settings used when no config file exists.
func Defaults() Settings {
	home, _ := os.UserHomeDir()
	return Settings{
		Mode:    ModeGPT,
		DataDir: filepath.Join(home, ".super-prompt"),
	}
}

// Store abstracts settings persistence so tools depend on the
// interface, not the file layout.
type Store interface {
	Load() (Settings, error)
	Save(Settings) error
}

// FileStore persists settings as YAML at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore returns a store rooted at ~/.super-prompt/config.yaml.
func NewFileStore() *FileStore {
	home, _ := os.UserHomeDir()
	return NewFileStoreAt(filepath.Join(home, ".super-prompt", "config.yaml"))
}

// NewFileStoreAt returns a store reading and writing the given path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads settings from disk. A missing file yields defaults;
// unreadable or malformed YAML is an error. Fields absent from the
// file keep their default values.
func (s *FileStore) Load() (Settings, error) {
	settings := Defaults()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("reading config %s: %w", s.path, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Defaults(), fmt.Errorf("parsing config %s: %w", s.path, err)
	}
	if settings.Mode == "" {
		settings.Mode = ModeGPT
	}
	if settings.DataDir == "" {
		settings.DataDir = Defaults().DataDir
	}
	return settings, nil
}

// Save writes settings to disk, creating the parent directory.
func (s *FileStore) Save(settings Settings) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config dir %s: %w", dir, err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", s.path, err)
	}
	return nil
}
