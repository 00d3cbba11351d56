package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"CloudVault/internal/cli/model"
	"CloudVault/internal/cli/repo"

	_ "modernc.org/sqlite"
)

// FileRepositorySQLite — репозиторий записей файлов поверх локальной БД SQLite.
type FileRepositorySQLite struct {
	db *sql.DB
}

var _ repo.FileRepository = (*FileRepositorySQLite)(nil)

// Open opens (and creates if needed) the vault DB file at path.
func Open(path string) (*FileRepositorySQLite, error) {
	if path == "" {
		return nil, errors.New("empty vault db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create vault dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open vault db: %w", err)
	}
	return &FileRepositorySQLite{db: db}, nil
}

// Close закрывает соединение с БД.
func (r *FileRepositorySQLite) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Migrate brings the schema up to date. Migrations are additive only: the base
// DDL is idempotent and later columns are bolted on with guarded ALTERs, so a
// store created by an older build upgrades without data loss.
func (r *FileRepositorySQLite) Migrate() error {
	if _, err := r.db.Exec(initialDDL()); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	for _, stmt := range additiveDDL {
		if _, err := r.db.Exec(stmt); err != nil {
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("additive migration %q: %w", stmt, err)
		}
	}
	// Hash uniqueness is enforced only for rows that carry a hash; legacy rows
	// backfilled with '' must not collide with each other.
	_, err := r.db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_files_content_hash ON files(content_hash) WHERE content_hash <> ''`)
	return err
}

func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}

// Insert persists metadata and blob in a single INSERT, which SQLite applies
// atomically. The assigned serial id is returned.
func (r *FileRepositorySQLite) Insert(rec *model.FileRecord) (int64, error) {
	if rec.DisplayName == "" {
		return 0, errors.New("display name is required")
	}
	res, err := r.db.Exec(`INSERT INTO files(
        display_name, remote_id, remote_name, size_bytes, mime_type,
        content_hash, created_at, last_synced_at, source_path, is_synced, blob
    ) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.DisplayName, rec.RemoteID, rec.RemoteName, rec.SizeBytes, rec.MimeType,
		rec.ContentHash, rec.CreatedAt, rec.LastSyncedAt, rec.SourcePath,
		boolToInt(rec.Synced), rec.Blob,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	rec.ID = id
	return id, nil
}

const recordColumns = `id, display_name, remote_id, remote_name, size_bytes, mime_type,
    content_hash, created_at, last_synced_at, source_path, is_synced`

// List returns all records ordered by created_at DESC (newest first). Blobs
// stay in the DB; only their presence is reported via State.
func (r *FileRepositorySQLite) List() ([]model.FileRecord, error) {
	rows, err := r.db.Query(`SELECT ` + recordColumns + `, blob IS NOT NULL
        FROM files ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []model.FileRecord
	for rows.Next() {
		var rec model.FileRecord
		var syncedInt, hasBlobInt int
		if err := rows.Scan(&rec.ID, &rec.DisplayName, &rec.RemoteID, &rec.RemoteName,
			&rec.SizeBytes, &rec.MimeType, &rec.ContentHash, &rec.CreatedAt,
			&rec.LastSyncedAt, &rec.SourcePath, &syncedInt, &hasBlobInt); err != nil {
			return nil, err
		}
		rec.Synced = syncedInt != 0
		rec.State = stateFromPresence(hasBlobInt != 0)
		res = append(res, rec)
	}
	return res, rows.Err()
}

// GetByID returns the record with its blob by vault-local serial id.
func (r *FileRepositorySQLite) GetByID(id int64) (*model.FileRecord, error) {
	row := r.db.QueryRow(`SELECT `+recordColumns+`, blob, blob IS NOT NULL FROM files WHERE id = ?`, id)
	return scanRecord(row, fmt.Sprintf("id %d", id))
}

// GetByRemoteID returns the record with its blob by remote id.
func (r *FileRepositorySQLite) GetByRemoteID(remoteID string) (*model.FileRecord, error) {
	row := r.db.QueryRow(`SELECT `+recordColumns+`, blob, blob IS NOT NULL FROM files WHERE remote_id = ?`, remoteID)
	return scanRecord(row, fmt.Sprintf("remote id %s", remoteID))
}

// FindByHash returns the record carrying the given content hash (without blob).
func (r *FileRepositorySQLite) FindByHash(hash string) (*model.FileRecord, error) {
	if hash == "" {
		return nil, errors.New("empty content hash")
	}
	var rec model.FileRecord
	var syncedInt, hasBlobInt int
	err := r.db.QueryRow(`SELECT `+recordColumns+`, blob IS NOT NULL FROM files WHERE content_hash = ?`, hash).
		Scan(&rec.ID, &rec.DisplayName, &rec.RemoteID, &rec.RemoteName,
			&rec.SizeBytes, &rec.MimeType, &rec.ContentHash, &rec.CreatedAt,
			&rec.LastSyncedAt, &rec.SourcePath, &syncedInt, &hasBlobInt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("hash %s: %w", hash, repo.ErrNotFound)
		}
		return nil, err
	}
	rec.Synced = syncedInt != 0
	rec.State = stateFromPresence(hasBlobInt != 0)
	return &rec, nil
}

// UpdateBlob backfills the blob of an existing record and refreshes its
// last-synced timestamp.
func (r *FileRepositorySQLite) UpdateBlob(id int64, blob []byte, syncedAt int64) error {
	res, err := r.db.Exec(`UPDATE files SET blob = ?, last_synced_at = ? WHERE id = ?`, blob, syncedAt, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("id %d: %w", id, repo.ErrNotFound)
	}
	return nil
}

// Delete removes a record (metadata and blob together).
func (r *FileRepositorySQLite) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM files WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("id %d: %w", id, repo.ErrNotFound)
	}
	return nil
}

func scanRecord(row *sql.Row, what string) (*model.FileRecord, error) {
	var rec model.FileRecord
	var syncedInt, hasBlobInt int
	err := row.Scan(&rec.ID, &rec.DisplayName, &rec.RemoteID, &rec.RemoteName,
		&rec.SizeBytes, &rec.MimeType, &rec.ContentHash, &rec.CreatedAt,
		&rec.LastSyncedAt, &rec.SourcePath, &syncedInt, &rec.Blob, &hasBlobInt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", what, repo.ErrNotFound)
		}
		return nil, err
	}
	rec.Synced = syncedInt != 0
	// blob presence comes from SQL, not slice nilness: a zero-byte blob is
	// still resident content.
	rec.State = stateFromPresence(hasBlobInt != 0)
	return &rec, nil
}

func stateFromPresence(hasBlob bool) model.ContentState {
	if hasBlob {
		return model.ContentResident
	}
	return model.MetadataOnly
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
