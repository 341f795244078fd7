// Package storage contains the blob storage abstraction used for file
// attachments. Two backends exist: the local filesystem and an S3-compatible
// object store. Keys are relative, forward-slash separated paths.
package storage

import (
	"context"
	"io"
	"time"
)

// PutOptions define optional parameters for storing objects.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage is the blob storage backend interface. Implementations must be
// safe for concurrent use. Delete of a missing key returns an error that
// satisfies errors.Is(err, fs.ErrNotExist) so callers can treat it as a
// no-op.
type Storage interface {
	// Put stores an object under the given key. Size is the exact content
	// length; pass -1 if unknown.
	Put(ctx context.Context, key string, r io.Reader, size int64, opt PutOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
}
