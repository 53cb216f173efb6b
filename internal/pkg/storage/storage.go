// Package storage abstracts where uploaded photos live: local disk in
// development, S3 (or any S3-compatible endpoint) in production.
package storage

import (
	"context"
	"io"
)

// Storage is the backend interface for photo files.
type Storage interface {
	// Put stores a file under key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get opens the file stored under key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the file under key; deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for a stored key.
	URL(key string) string
}

// Config holds backend settings for both implementations.
type Config struct {
	// Local
	LocalPath string
	BaseURL   string

	// S3 / MinIO
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}
