// file: internals/helpers/storage/storage.go
package storage

import (
	"context"
	"fmt"
	"io"
)

// UploadResult is the reference tuple persisted for every stored object.
// Only this tuple is kept locally; the bytes live with the provider.
type UploadResult struct {
	PublicID     string
	URL          string
	ResourceType string
	Format       string
	Bytes        int64
}

// ObjectStorage is the narrow contract against the remote media host.
// Controllers and services depend on this, never on the SDK directly.
type ObjectStorage interface {
	Upload(ctx context.Context, file io.Reader, filename string) (*UploadResult, error)
	Delete(ctx context.Context, publicID, resourceType string) error
}

// StorageError marks collaborator failures. Callers log these as failed
// upload_log rows and reply with a generic message, never the raw error.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
