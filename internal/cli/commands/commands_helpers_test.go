package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"CloudVault/internal/config"
)

// withTempConfig собирает конфиг, у которого все артефакты (база, sidecar,
// каталог загрузок) живут в temp каталоге теста.
func withTempConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	dl := filepath.Join(dir, "downloads")
	_ = os.MkdirAll(dl, 0o700)
	return &config.Config{
		VaultDBPath:  filepath.Join(dir, "cloud_files.sqlite3"),
		SettingsFile: filepath.Join(dir, "cloud_config.json"),
		DownloadDir:  dl,
		Settings:     config.DefaultSettings(),
		Mode:         config.ModeLocal,
	}
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// writeSourceFile кладёт файл с содержимым в temp и возвращает путь
func writeSourceFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return p
}
