package model

// ContentState is the explicit recovery-state tag of a FileRecord.
type ContentState string

const (
	// ContentResident: the vault holds the file bytes; fetch never touches the
	// original source path.
	ContentResident ContentState = "content-resident"
	// MetadataOnly: the blob was never captured; fetch must backfill from the
	// original source path or fail.
	MetadataOnly ContentState = "metadata-only"
)

// FileRecord — one entry per vault-held file.
type FileRecord struct {
	ID          int64  // vault-local serial, immutable
	DisplayName string // human-facing filename
	RemoteID    string // opaque id; generated locally unless a remote upload succeeded
	RemoteName  string // remote-facing filename (may differ from DisplayName)
	SizeBytes   int64
	MimeType    string
	ContentHash string // hex SHA-256 over the full byte stream; unique across records

	CreatedAt    int64 // unix seconds
	LastSyncedAt int64 // unix seconds; refreshed when the blob is (re)materialized

	// SourcePath is the path the file was uploaded from. Kept only as a
	// backfill source, never a guarantee.
	SourcePath string

	Synced bool // true only if a remote upload succeeded

	// Blob holds the raw file bytes. Nil only for records created before the
	// vault stored bytes itself; list results omit it regardless of state.
	Blob []byte

	State ContentState
}
