package storage

import "context"

// ObjectInfo represents metadata for a stored object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the minimal operations the upload flow needs for
// archiving raw uploads off-box.
type ObjectStorage interface {
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	UploadObject(ctx context.Context, key string, data []byte) error
	DownloadObject(ctx context.Context, key string, destPath string) error
}
