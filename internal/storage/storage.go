package storage

import (
	"context"
	"io"
	"time"
)

// Package storage wraps the S3-compatible object store that hosts uploaded
// images and publication files. Uploads are streamed; nothing touches local disk.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, or -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
// URL is the public address browsers use to fetch it.
type ObjectInfo struct {
	Key         string
	URL         string
	Size        int64
	ETag        string
	ContentType string
}

// Storage is the object store used by admin uploads.
type Storage interface {
	// Put uploads an object under key and returns its public URL.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PublicURL returns the browser-facing URL of key.
	PublicURL(key string) string
	// KeyFromURL returns the key of a URL produced by PublicURL, or false for foreign URLs.
	KeyFromURL(url string) (string, bool)
	// PresignGet returns a time-limited download URL.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
