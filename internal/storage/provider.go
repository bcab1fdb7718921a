package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrObjectNotFound = errors.New("object not found")

// StorageProvider defines the behavior for any object storage backend.
type StorageProvider interface {
	Get(ctx context.Context, bucket, key string) (*FileObject, error)
	Put(ctx context.Context, bucket, key string, body io.ReadSeeker, contentType, cacheControl string) error
	Delete(ctx context.Context, bucket, key string) error
	// Ping checks that bucket is reachable.
	Ping(ctx context.Context, bucket string) error
}

// FileObject is the provider-agnostic representation of a file.
type FileObject struct {
	Body          io.ReadCloser
	ContentLength int64
	ContentType   string
	LastModified  time.Time
}
