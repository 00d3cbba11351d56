package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// PlaceholderHost is the host that ships in a freshly generated settings file.
// An endpoint still pointing at it means the remote store was never configured.
const PlaceholderHost = "your-cloud-server.com"

// SettingsFileName is the sidecar settings document kept next to the vault DB.
const SettingsFileName = "cloud_config.json"

// Mode selects between the two operating variants of the vault.
type Mode int

const (
	// ModeLocal: no remote store is consulted; all ids and sync status are vault-local.
	ModeLocal Mode = iota
	// ModeRemote: create/fetch/delete delegate to the remote sync client.
	ModeRemote
)

func (m Mode) String() string {
	if m == ModeRemote {
		return "remote"
	}
	return "local"
}

// Settings is the sidecar settings document (cloud_config.json).
// It is an immutable snapshot: updates write a whole new document, they never
// mutate a shared value in place.
type Settings struct {
	RemoteEndpoint string `json:"remoteEndpoint"`
	APIKey         string `json:"apiKey"`
	UploadPath     string `json:"uploadPath"`
	DownloadPath   string `json:"downloadPath"`
	ListPath       string `json:"listPath"`
	DeletePath     string `json:"deletePath"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// DefaultSettings returns the documented defaults written into a fresh sidecar file.
func DefaultSettings() Settings {
	return Settings{
		RemoteEndpoint: "https://" + PlaceholderHost + "/api",
		APIKey:         "your-api-key-here",
		UploadPath:     "/upload",
		DownloadPath:   "/download",
		ListPath:       "/list",
		DeletePath:     "/delete",
		TimeoutSeconds: 30,
	}
}

// LoadSettings reads the sidecar document at path. A missing file is created
// with defaults. A present file is loaded and any absent keys are filled from
// defaults — the file itself is left as the user wrote it.
func LoadSettings(path string) (Settings, error) {
	def := DefaultSettings()
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
		}
		if err := def.Save(path); err != nil {
			return Settings{}, err
		}
		return def, nil
	}
	var s Settings
	if err := json.Unmarshal(b, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	s.fillDefaults(def)
	return s, nil
}

// Save writes the settings snapshot to path, creating parent directories.
func (s Settings) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o600); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}

// Timeout returns the remote call timeout as a duration.
func (s Settings) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

func (s *Settings) fillDefaults(def Settings) {
	if s.RemoteEndpoint == "" {
		s.RemoteEndpoint = def.RemoteEndpoint
	}
	if s.APIKey == "" {
		s.APIKey = def.APIKey
	}
	if s.UploadPath == "" {
		s.UploadPath = def.UploadPath
	}
	if s.DownloadPath == "" {
		s.DownloadPath = def.DownloadPath
	}
	if s.ListPath == "" {
		s.ListPath = def.ListPath
	}
	if s.DeletePath == "" {
		s.DeletePath = def.DeletePath
	}
	if s.TimeoutSeconds == 0 {
		s.TimeoutSeconds = def.TimeoutSeconds
	}
}

type Config struct {
	// Server-side settings
	DatabaseDSN string `env:"DATABASE_URI"`
	RunAddress  string `env:"RUN_ADDRESS"`
	APIKey      string `env:"API_KEY"`

	// Client-side settings
	VaultDBPath  string `env:"VAULT_DB_PATH"`
	SettingsFile string `env:"VAULT_CONFIG"`
	DownloadDir  string `env:"VAULT_DOWNLOAD_DIR"`
	SyncEnabled  bool   `env:"VAULT_SYNC"`
	Version      bool   `env:"-"` // show client version and exit (flag only)

	// Snapshot of the sidecar document and the resolved operating mode.
	Settings Settings `env:"-"`
	Mode     Mode     `env:"-"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags apply only when the corresponding env variables are unset
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN (sqlite path or postgres URI)")
	flag.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "address for the sync server to listen on")
	flag.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "bearer API key expected by the sync server")
	// Client flags
	flag.StringVar(&cfg.VaultDBPath, "vault-db", cfg.VaultDBPath, "path to the vault SQLite DB")
	flag.StringVar(&cfg.SettingsFile, "settings", cfg.SettingsFile, "path to the sidecar settings file")
	flag.StringVar(&cfg.DownloadDir, "download-dir", cfg.DownloadDir, "default directory for fetched files")
	flag.BoolVar(&cfg.SyncEnabled, "sync", cfg.SyncEnabled, "enable remote sync (requires a configured endpoint)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	// Defaults
	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8081"
	}
	home, _ := os.UserHomeDir()
	if cfg.VaultDBPath == "" {
		cfg.VaultDBPath = filepath.Join(home, ".cloudvault", "cloud_files.sqlite3")
	}
	if cfg.SettingsFile == "" {
		cfg.SettingsFile = filepath.Join(filepath.Dir(cfg.VaultDBPath), SettingsFileName)
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = filepath.Join(home, "Downloads")
	}

	s, err := LoadSettings(cfg.SettingsFile)
	if err != nil {
		// An unreadable sidecar must not brick the client: run on defaults.
		s = DefaultSettings()
	}
	cfg.Settings = s
	if cfg.APIKey == "" {
		cfg.APIKey = s.APIKey
	}
	cfg.Mode = ResolveMode(cfg.SyncEnabled, s.RemoteEndpoint)

	return cfg
}

// ResolveMode decides the operating variant once, at configuration time.
// Remote mode requires sync to be enabled and an endpoint that is not the
// unconfigured placeholder.
func ResolveMode(syncEnabled bool, endpoint string) Mode {
	if !syncEnabled {
		return ModeLocal
	}
	if endpoint == "" || strings.Contains(endpoint, PlaceholderHost) {
		return ModeLocal
	}
	return ModeRemote
}
