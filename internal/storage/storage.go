package storage

import "context"

// ArchiveStorage defines the interface for the report archive. Reports are
// written once at generation time; delivery failures never depend on it.
type ArchiveStorage interface {
	// Put stores one object under key, overwriting any previous version.
	Put(ctx context.Context, objectKey string, contentType string, body []byte) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for viewing an archived report.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string) (string, error)
}
