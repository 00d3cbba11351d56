package commands

import (
	"fmt"
	"strings"
	"time"

	"CloudVault/internal/cli/model"
	"CloudVault/internal/cli/service"
)

// resolveRecord находит запись по remote id или по отображаемому имени
// (без учёта регистра). Точное совпадение id имеет приоритет.
func resolveRecord(v *service.Vault, key string) (*model.FileRecord, error) {
	list, err := v.List()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].RemoteID == key {
			return &list[i], nil
		}
	}
	var found *model.FileRecord
	for i := range list {
		if strings.EqualFold(list[i].DisplayName, key) {
			if found != nil {
				return nil, fmt.Errorf("name %q matches more than one file, use its id", key)
			}
			found = &list[i]
		}
	}
	if found == nil {
		return nil, fmt.Errorf("no file named %q in the vault", key)
	}
	return found, nil
}

// formatSize renders a byte count the way file managers do: B, KB, MB, GB.
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMG"[exp])
}

func formatDate(unix int64) string {
	if unix == 0 {
		return "-"
	}
	return time.Unix(unix, 0).Format("2006-01-02 15:04")
}

func syncLabel(synced bool) string {
	if synced {
		return "Synced"
	}
	return "Local Only"
}
