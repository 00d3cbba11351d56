package bootstrap

import (
	"fmt"

	"go.uber.org/zap"

	"CloudVault/internal/cli/api"
	reposqlite "CloudVault/internal/cli/repo/sqlite"
	"CloudVault/internal/cli/service"
	"CloudVault/internal/config"
)

// OpenVault открывает локальное хранилище по настройкам, выполняет миграции
// и собирает сервис вместе с sync-клиентом, если настроен удалённый режим.
// cleanup необходимо вызвать после окончания работы, чтобы закрыть соединение с БД.
func OpenVault(cfg *config.Config, log *zap.SugaredLogger) (*service.Vault, func() error, error) {
	r, err := reposqlite.Open(cfg.VaultDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open vault db: %w", err)
	}
	if err := r.Migrate(); err != nil {
		_ = r.Close()
		return nil, nil, fmt.Errorf("migrate vault db: %w", err)
	}

	var sync service.SyncClient
	if cfg.Mode == config.ModeRemote {
		sync = api.NewSyncClient(cfg.Settings)
	}

	v := service.NewVault(r, sync, cfg.Mode, log)
	cleanup := func() error { return r.Close() }
	return v, cleanup, nil
}
