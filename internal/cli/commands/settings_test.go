package commands

import (
	"context"
	"os"
	"strings"
	"testing"

	"CloudVault/internal/config"
)

func TestSettings_ShowMasksAPIKey(t *testing.T) {
	cfg := withTempConfig(t)
	cfg.Settings.APIKey = "super-secret-9876"

	out := withStdoutCapture(t, func() {
		if err := (settingsCmd{}).Run(context.Background(), cfg, nil); err != nil {
			t.Fatalf("settings: %v", err)
		}
	})
	if strings.Contains(out, "super-secret") {
		t.Fatalf("api key leaked: %s", out)
	}
	if !strings.Contains(out, "9876") {
		t.Fatalf("key tail expected: %s", out)
	}
	if !strings.Contains(out, "endpoint:") || !strings.Contains(out, "timeout:") {
		t.Fatalf("settings output: %s", out)
	}
}

func TestSettings_SetPersistsAndResolvesMode(t *testing.T) {
	cfg := withTempConfig(t)
	cfg.SyncEnabled = true
	ctx := context.Background()

	if err := (settingsCmd{}).Run(ctx, cfg, []string{"set", "endpoint", "https://vault.internal/api"}); err != nil {
		t.Fatalf("set endpoint: %v", err)
	}
	if cfg.Settings.RemoteEndpoint != "https://vault.internal/api" {
		t.Fatalf("endpoint not applied: %s", cfg.Settings.RemoteEndpoint)
	}
	if cfg.Mode != config.ModeRemote {
		t.Fatalf("mode after real endpoint: %v", cfg.Mode)
	}

	// значение дошло до sidecar-файла
	raw, err := os.ReadFile(cfg.SettingsFile)
	if err != nil {
		t.Fatalf("read sidecar: %v", err)
	}
	if !strings.Contains(string(raw), "vault.internal") {
		t.Fatalf("sidecar content: %s", raw)
	}

	// возврат плейсхолдера снова переводит в локальный режим
	if err := (settingsCmd{}).Run(ctx, cfg, []string{"set", "endpoint", "https://your-cloud-server.com/api"}); err != nil {
		t.Fatalf("set placeholder: %v", err)
	}
	if cfg.Mode != config.ModeLocal {
		t.Fatalf("mode after placeholder: %v", cfg.Mode)
	}
}

func TestSettings_SetValidation(t *testing.T) {
	cfg := withTempConfig(t)
	ctx := context.Background()

	if err := (settingsCmd{}).Run(ctx, cfg, []string{"set", "timeout", "0"}); err == nil {
		t.Fatalf("zero timeout must be rejected")
	}
	if err := (settingsCmd{}).Run(ctx, cfg, []string{"set", "timeout", "abc"}); err == nil {
		t.Fatalf("non-numeric timeout must be rejected")
	}
	if err := (settingsCmd{}).Run(ctx, cfg, []string{"set", "no-such-key", "v"}); err == nil {
		t.Fatalf("unknown key must be rejected")
	}
	if err := (settingsCmd{}).Run(ctx, cfg, []string{"set", "timeout", "45"}); err != nil {
		t.Fatalf("set timeout: %v", err)
	}
	if cfg.Settings.TimeoutSeconds != 45 {
		t.Fatalf("timeout not applied: %d", cfg.Settings.TimeoutSeconds)
	}
}
