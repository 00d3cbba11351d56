package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"CloudVault/internal/config"
)

type settingsCmd struct{}

func (settingsCmd) Name() string { return "settings" }
func (settingsCmd) Description() string {
	return "Показать или изменить настройки синхронизации"
}
func (settingsCmd) Usage() string { return "settings [set <key> <value>]" }

func (settingsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	switch {
	case len(args) == 0:
		printSettings(cfg)
		return nil
	case len(args) == 3 && args[0] == "set":
		return setSetting(cfg, args[1], args[2])
	default:
		return ErrUsage
	}
}

func printSettings(cfg *config.Config) {
	s := cfg.Settings
	fmt.Fprintf(Out, "file:           %s\n", cfg.SettingsFile)
	fmt.Fprintf(Out, "endpoint:       %s\n", s.RemoteEndpoint)
	fmt.Fprintf(Out, "api-key:        %s\n", maskKey(s.APIKey))
	fmt.Fprintf(Out, "upload-path:    %s\n", s.UploadPath)
	fmt.Fprintf(Out, "download-path:  %s\n", s.DownloadPath)
	fmt.Fprintf(Out, "list-path:      %s\n", s.ListPath)
	fmt.Fprintf(Out, "delete-path:    %s\n", s.DeletePath)
	fmt.Fprintf(Out, "timeout:        %ds\n", s.TimeoutSeconds)
	fmt.Fprintf(Out, "mode:           %s\n", cfg.Mode)
}

func setSetting(cfg *config.Config, key, value string) error {
	s := cfg.Settings
	switch key {
	case "endpoint":
		s.RemoteEndpoint = value
	case "api-key":
		s.APIKey = value
	case "upload-path":
		s.UploadPath = value
	case "download-path":
		s.DownloadPath = value
	case "list-path":
		s.ListPath = value
	case "delete-path":
		s.DeletePath = value
	case "timeout":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("timeout must be a positive number of seconds")
		}
		s.TimeoutSeconds = n
	default:
		return fmt.Errorf("unknown settings key %q (endpoint, api-key, upload-path, download-path, list-path, delete-path, timeout)", key)
	}

	if err := s.Save(cfg.SettingsFile); err != nil {
		return err
	}
	cfg.Settings = s
	cfg.Mode = config.ResolveMode(cfg.SyncEnabled, s.RemoteEndpoint)
	fmt.Fprintf(Out, "Saved %s\n", key)
	return nil
}

// maskKey прячет значение ключа, оставляя хвост для сверки.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
