package service

import "errors"

// ErrDuplicateContent is returned by Create when the vault already holds a
// record with the same content hash. Duplicates are rejected, never merged.
var ErrDuplicateContent = errors.New("file already exists with same content")

// ErrUnrecoverableContent is returned by Fetch when a record has neither a
// stored blob nor a readable original source path. The only remediation is to
// re-create the record from an original copy of the file.
var ErrUnrecoverableContent = errors.New("no stored file data and the original path no longer exists")
