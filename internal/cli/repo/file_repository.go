package repo

import (
	"errors"

	"CloudVault/internal/cli/model"
)

// ErrNotFound is returned when no record matches the requested id or hash.
var ErrNotFound = errors.New("file record not found")

// FileRepository — контракт доступа к записям файлов локального хранилища.
type FileRepository interface {
	// Insert persists metadata and blob as one atomic write and returns the
	// assigned serial id.
	Insert(rec *model.FileRecord) (int64, error)

	// List returns all records, most recently created first. Blobs are not
	// loaded; State reflects blob presence.
	List() ([]model.FileRecord, error)

	// GetByID returns the record (with blob) by its vault-local serial id.
	GetByID(id int64) (*model.FileRecord, error)

	// GetByRemoteID returns the record (with blob) by its remote id.
	GetByRemoteID(remoteID string) (*model.FileRecord, error)

	// FindByHash returns the record holding the given content hash, or
	// ErrNotFound. The blob is not loaded.
	FindByHash(hash string) (*model.FileRecord, error)

	// UpdateBlob backfills the blob for an existing record and refreshes its
	// last-synced timestamp.
	UpdateBlob(id int64, blob []byte, syncedAt int64) error

	// Delete removes the record. Returns ErrNotFound if no such id exists.
	Delete(id int64) error
}
