package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Settings represents the application configuration persisted to disk.
type Settings struct {
	Server  ServerSettings  `json:"server"`
	Catalog CatalogSettings `json:"catalog"`
	Auth    AuthSettings    `json:"auth"`
	Storage StorageSettings `json:"storage"`
	Search  SearchSettings  `json:"search"`
	Log     LogConfig       `json:"log"`
}

type ServerSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// CatalogSettings configures the upstream catalog provider. BaseURL is
// overridable for tests and proxies; APIKey has no default.
type CatalogSettings struct {
	APIKey  string `json:"apiKey"`
	BaseURL string `json:"baseUrl"`
}

// AuthSettings holds the optional fixed login. When Email is empty any
// non-empty credential pair signs in, matching the demo flow.
type AuthSettings struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type StorageSettings struct {
	Directory string `json:"directory"`
}

// SearchSettings tunes how long typed input is allowed to settle before a
// search request is issued.
type SearchSettings struct {
	DebounceMS int `json:"debounceMs"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File       string `json:"file"`
	MaxSize    int    `json:"maxSize"`
	MaxAge     int    `json:"maxAge"`
	MaxBackups int    `json:"maxBackups"`
	Compress   bool   `json:"compress"`
}

func DefaultSettings() Settings {
	return Settings{
		Server:  ServerSettings{Host: "0.0.0.0", Port: 7878},
		Catalog: CatalogSettings{APIKey: "", BaseURL: ""},
		Auth:    AuthSettings{},
		Storage: StorageSettings{Directory: "data"},
		Search:  SearchSettings{DebounceMS: 500},
		Log: LogConfig{
			File:       "data/logs/backend.log",
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
	}
}

// Manager loads and persists settings to a JSON file.
type Manager struct {
	path string
}

func NewManager(configPath string) *Manager {
	return &Manager{path: configPath}
}

func (m *Manager) EnsureDir() error {
	dir := filepath.Dir(m.path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Load reads settings.json from disk or creates defaults if missing.
func (m *Manager) Load() (Settings, error) {
	if m.path == "" {
		return Settings{}, errors.New("config path not set")
	}
	if _, err := os.Stat(m.path); errors.Is(err, fs.ErrNotExist) {
		defaults := DefaultSettings()
		if err := m.Save(defaults); err != nil {
			return Settings{}, err
		}
		return defaults, nil
	}
	f, err := os.Open(m.path)
	if err != nil {
		return Settings{}, err
	}
	defer f.Close()

	var s Settings
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return Settings{}, err
	}

	// Fill gaps left by hand-edited files so the rest of the code never
	// sees zero values it cannot work with.
	defaults := DefaultSettings()
	if strings.TrimSpace(s.Server.Host) == "" {
		s.Server.Host = defaults.Server.Host
	}
	if s.Server.Port == 0 {
		s.Server.Port = defaults.Server.Port
	}
	if strings.TrimSpace(s.Storage.Directory) == "" {
		s.Storage.Directory = defaults.Storage.Directory
	}
	if s.Search.DebounceMS <= 0 {
		s.Search.DebounceMS = defaults.Search.DebounceMS
	}
	if strings.TrimSpace(s.Log.File) == "" {
		s.Log = defaults.Log
	}

	return s, nil
}

// Save writes the provided settings to disk atomically.
func (m *Manager) Save(s Settings) error {
	if m.path == "" {
		return errors.New("config path not set")
	}
	if err := m.EnsureDir(); err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, m.path)
}
