package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"CloudVault/internal/cli/bootstrap"
	"CloudVault/internal/config"
)

type getCmd struct{}

func (getCmd) Name() string { return "get" }
func (getCmd) Description() string {
	return "Достать файл из хранилища на диск"
}
func (getCmd) Usage() string { return "get <name-or-id> [dest-path]" }

func (getCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}

	vault, done, err := bootstrap.OpenVault(cfg, nil)
	if err != nil {
		return err
	}
	defer done()

	rec, err := resolveRecord(vault, args[0])
	if err != nil {
		return err
	}

	dest := ""
	if len(args) == 2 {
		dest = args[1]
	} else {
		dest = filepath.Join(cfg.DownloadDir, rec.DisplayName)
	}
	// не перезаписываем существующий файл, это решение пользователя
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("destination %s already exists", dest)
	}

	if err := vault.Fetch(ctx, rec.RemoteID, dest); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Saved: %s (%s)\n", dest, formatSize(rec.SizeBytes))
	return nil
}

func init() { RegisterCmd(getCmd{}) }
