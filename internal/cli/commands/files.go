package commands

import (
	"context"
	"fmt"
	"strings"

	"CloudVault/internal/cli/bootstrap"
	"CloudVault/internal/config"
)

type filesCmd struct{}

func (filesCmd) Name() string { return "files" }
func (filesCmd) Description() string {
	return "Показать все файлы хранилища (опционально по подстроке имени)"
}
func (filesCmd) Usage() string { return "files [filter]" }

func (filesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	filter := ""
	if len(args) == 1 {
		filter = strings.ToLower(args[0])
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

	shown := 0
	for _, rec := range list {
		if filter != "" && !strings.Contains(strings.ToLower(rec.DisplayName), filter) {
			continue
		}
		fmt.Fprintf(Out, "- %s  %s  %s  %s  %s\n",
			rec.RemoteID, rec.DisplayName, formatSize(rec.SizeBytes),
			formatDate(rec.CreatedAt), syncLabel(rec.Synced))
		shown++
	}
	if shown == 0 {
		if filter != "" {
			fmt.Fprintf(Out, "Нет файлов по фильтру %q\n", args[0])
		} else {
			fmt.Fprintln(Out, "Хранилище пусто")
		}
		return nil
	}
	fmt.Fprintf(Out, "Всего: %d\n", shown)
	return nil
}

func init() { RegisterCmd(filesCmd{}) }
