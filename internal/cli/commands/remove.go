package commands

import (
	"context"
	"fmt"

	"CloudVault/internal/cli/bootstrap"
	"CloudVault/internal/config"
)

type removeCmd struct{}

func (removeCmd) Name() string { return "remove" }
func (removeCmd) Description() string {
	return "Удалить файл из хранилища (и с сервера в удалённом режиме)"
}
func (removeCmd) Usage() string { return "remove <name-or-id>" }

func (removeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
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
	if err := vault.Delete(ctx, rec.ID); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Removed: %s\n", rec.DisplayName)
	return nil
}

func init() { RegisterCmd(removeCmd{}) }
