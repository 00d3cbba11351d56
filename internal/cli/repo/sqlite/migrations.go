package sqlite

import (
	_ "embed"
)

// Встроенные SQL-миграции клиента (SQLite).
//
//go:embed migrations/001_init.sql
var initDDL string

func initialDDL() string { return initDDL }

// additiveDDL lists column additions applied to stores created before the
// column existed. Each statement must be safe to re-run: a duplicate-column
// error means the store is already current. Never anything destructive here.
var additiveDDL = []string{
	`ALTER TABLE files ADD COLUMN content_hash TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE files ADD COLUMN source_path TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE files ADD COLUMN blob BLOB`,
}
