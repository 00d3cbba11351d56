package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"CloudVault/internal/cli/model"
	"CloudVault/internal/cli/repo"
	"CloudVault/internal/config"
)

// SyncClient is the remote capability the vault may delegate to. Implemented
// by api.SyncClient; faked in tests.
type SyncClient interface {
	Upload(ctx context.Context, name, hash string, size int64, r io.Reader) (string, error)
	Download(ctx context.Context, remoteID string) ([]byte, error)
	Delete(ctx context.Context, remoteID string) error
	TestConnection(ctx context.Context) bool
}

// UploadResult is the public acknowledgment of a successful Create.
type UploadResult struct {
	RemoteID   string
	RemoteName string
	Synced     bool
}

// Vault owns the metadata store and the blob store as one transactional unit:
// deduplicated, content-addressed storage of arbitrary files.
type Vault struct {
	repo repo.FileRepository
	sync SyncClient
	mode config.Mode
	log  *zap.SugaredLogger
}

// NewVault wires the vault over a repository. sync may be nil in local mode.
func NewVault(r repo.FileRepository, sync SyncClient, mode config.Mode, log *zap.SugaredLogger) *Vault {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if sync == nil {
		mode = config.ModeLocal
	}
	return &Vault{repo: r, sync: sync, mode: mode, log: log}
}

// Create stores the file at sourcePath in the vault: one hash pass, one dedup
// check, one atomic metadata+blob insert. displayName defaults to the base
// name of sourcePath.
func (v *Vault) Create(ctx context.Context, sourcePath, displayName string) (*UploadResult, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("source file %s: %w", sourcePath, repo.ErrNotFound)
		}
		return nil, fmt.Errorf("stat source file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("source %s is a directory", sourcePath)
	}
	if displayName == "" {
		displayName = filepath.Base(sourcePath)
	}

	hash, err := hashFile(sourcePath)
	if err != nil {
		return nil, err
	}
	existing, err := v.repo.FindByHash(hash)
	if err == nil {
		return nil, fmt.Errorf("content already stored as %q (hash %s): %w",
			existing.DisplayName, hash, ErrDuplicateContent)
	}
	if !errorsIsNotFound(err) {
		return nil, err
	}

	remoteID, synced := v.remoteUpload(ctx, sourcePath, displayName, hash, info.Size())

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}
	absPath, err := filepath.Abs(sourcePath)
	if err != nil {
		absPath = sourcePath
	}

	now := time.Now().Unix()
	rec := &model.FileRecord{
		DisplayName:  displayName,
		RemoteID:     remoteID,
		RemoteName:   displayName,
		SizeBytes:    info.Size(),
		MimeType:     detectMime(sourcePath),
		ContentHash:  hash,
		CreatedAt:    now,
		LastSyncedAt: now,
		SourcePath:   absPath,
		Synced:       synced,
		Blob:         data,
	}
	if _, err := v.repo.Insert(rec); err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}
	return &UploadResult{RemoteID: remoteID, RemoteName: displayName, Synced: synced}, nil
}

// remoteUpload returns the remote id for a new record. In local mode, or when
// the remote upload fails, it falls back to a locally generated id and an
// unsynced record; the failure is advisory only.
func (v *Vault) remoteUpload(ctx context.Context, sourcePath, name, hash string, size int64) (string, bool) {
	if v.mode != config.ModeRemote {
		return uuid.NewString(), false
	}
	f, err := os.Open(sourcePath)
	if err != nil {
		v.log.Warnw("cannot reopen source for upload, storing locally", "file", name, "error", err)
		return uuid.NewString(), false
	}
	defer f.Close()
	remoteID, err := v.sync.Upload(ctx, name, hash, size, f)
	if err != nil {
		v.log.Warnw("remote upload failed, storing locally", "file", name, "error", err)
		return uuid.NewString(), false
	}
	return remoteID, true
}

// List returns every record, most recently created first. Results always
// reflect all prior creates and deletes; nothing is cached.
func (v *Vault) List() ([]model.FileRecord, error) {
	return v.repo.List()
}

// Fetch reconstructs the bytes of the record identified by remoteID and writes
// them to destPath. The write is all-or-nothing: either the full byte stream
// lands or no partial file is left behind.
func (v *Vault) Fetch(ctx context.Context, remoteID, destPath string) error {
	rec, err := v.repo.GetByRemoteID(remoteID)
	if err != nil {
		return err
	}

	if v.mode == config.ModeRemote {
		data, err := v.sync.Download(ctx, remoteID)
		if err != nil {
			return err
		}
		return writeFileAtomic(destPath, data)
	}

	if rec.State == model.ContentResident {
		return writeFileAtomic(destPath, rec.Blob)
	}

	// Backfill: the blob was never captured, but the original source path may
	// still resolve. Persist the recovered bytes so the next fetch no longer
	// depends on that path.
	if rec.SourcePath != "" {
		data, err := os.ReadFile(rec.SourcePath)
		if err == nil {
			if err := writeFileAtomic(destPath, data); err != nil {
				return err
			}
			if err := v.repo.UpdateBlob(rec.ID, data, time.Now().Unix()); err != nil {
				return fmt.Errorf("persist backfilled blob: %w", err)
			}
			v.log.Infow("backfilled blob from original path", "remote_id", remoteID, "path", rec.SourcePath)
			return nil
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("read original path %s: %w", rec.SourcePath, err)
		}
	}

	return fmt.Errorf("record %s (%s): %w; re-upload the file to store it in the vault",
		remoteID, rec.DisplayName, ErrUnrecoverableContent)
}

// Delete removes the record by its vault-local id. A configured remote copy is
// deleted best-effort first; remote failure never blocks local removal.
func (v *Vault) Delete(ctx context.Context, id int64) error {
	rec, err := v.repo.GetByID(id)
	if err != nil {
		return err
	}
	if v.mode == config.ModeRemote && rec.RemoteID != "" {
		if err := v.sync.Delete(ctx, rec.RemoteID); err != nil {
			v.log.Warnw("remote delete failed, removing locally anyway",
				"remote_id", rec.RemoteID, "error", err)
		}
	}
	return v.repo.Delete(rec.ID)
}

// TestConnection reports remote reachability; always false in local mode.
func (v *Vault) TestConnection(ctx context.Context) bool {
	if v.mode != config.ModeRemote {
		return false
	}
	return v.sync.TestConnection(ctx)
}

// Mode returns the operating variant the vault was constructed with.
func (v *Vault) Mode() config.Mode { return v.mode }

func errorsIsNotFound(err error) bool {
	return errors.Is(err, repo.ErrNotFound)
}

// hashFile streams the file through SHA-256 in fixed-size chunks so hashing a
// large file does not hold its bytes in memory.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for hashing: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, 64*1024)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// writeFileAtomic writes data to path via a temp file in the same directory
// and a rename, creating parent directories as needed. A failure mid-write
// never leaves a truncated file at path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create destination dir: %w", err)
		}
	}
	tmp, err := os.CreateTemp(dir, ".vault-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write destination: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("finalize destination: %w", err)
	}
	return nil
}

func detectMime(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "application/octet-stream"
}
