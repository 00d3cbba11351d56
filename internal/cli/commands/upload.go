package commands

import (
	"context"
	"errors"
	"fmt"

	"CloudVault/internal/cli/bootstrap"
	"CloudVault/internal/cli/service"
	"CloudVault/internal/config"
)

type uploadCmd struct{}

func (uploadCmd) Name() string { return "upload" }
func (uploadCmd) Description() string {
	return "Положить файл в хранилище (опционально под другим именем)"
}
func (uploadCmd) Usage() string { return "upload <path> [display-name]" }

func (uploadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	path := args[0]
	displayName := ""
	if len(args) == 2 {
		if args[1] == "" {
			return ErrUsage
		}
		displayName = args[1]
	}

	vault, done, err := bootstrap.OpenVault(cfg, nil)
	if err != nil {
		return err
	}
	defer done()

	res, err := vault.Create(ctx, path, displayName)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateContent) {
			fmt.Fprintf(Out, "× %v\n", err)
			return nil
		}
		return err
	}

	fmt.Fprintln(Out, "Stored:")
	fmt.Fprintf(Out, "  id:   %s\n", res.RemoteID)
	fmt.Fprintf(Out, "  name: %s\n", res.RemoteName)
	if vault.Mode() == config.ModeRemote {
		if res.Synced {
			fmt.Fprintln(Out, "✓ Отправлено на сервер")
		} else {
			fmt.Fprintln(Out, "× Сервер недоступен, файл сохранён локально")
		}
	}
	return nil
}

func init() { RegisterCmd(uploadCmd{}) }
