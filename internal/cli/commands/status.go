package commands

import (
	"context"
	"fmt"

	"CloudVault/internal/cli/bootstrap"
	"CloudVault/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string { return "status" }
func (statusCmd) Description() string {
	return "Режим работы, число файлов и доступность сервера"
}
func (statusCmd) Usage() string { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}

	vault, done, err := bootstrap.OpenVault(cfg, nil)
	if err != nil {
		return err
	}
	defer done()

	list, err := vault.List()
	if err != nil {
		return err
	}
	synced := 0
	for _, rec := range list {
		if rec.Synced {
			synced++
		}
	}

	fmt.Fprintf(Out, "mode:      %s\n", vault.Mode())
	fmt.Fprintf(Out, "database:  %s\n", cfg.VaultDBPath)
	fmt.Fprintf(Out, "files:     %d (%d synced)\n", len(list), synced)
	if vault.Mode() == config.ModeRemote {
		fmt.Fprintf(Out, "endpoint:  %s\n", cfg.Settings.RemoteEndpoint)
		if vault.TestConnection(ctx) {
			fmt.Fprintln(Out, "server:    reachable")
		} else {
			fmt.Fprintln(Out, "server:    unreachable")
		}
	} else {
		fmt.Fprintln(Out, "server:    not configured")
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
