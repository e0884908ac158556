package storage

import (
	"context"
	"io"
)

// Storage abstracts object storage for contact photos and avatars.
// The local filesystem implementation can be swapped for S3 / Cloudflare R2.
type Storage interface {
	// Save stores the object under key and returns its public URL.
	// key is a unique path within the store, e.g. "avatars/<user>/<ts>.jpg".
	Save(ctx context.Context, key string, data io.Reader, contentType string) (url string, err error)

	// Delete removes the object at key. Missing objects are not an error.
	Delete(ctx context.Context, key string) error

	// PublicURL returns the URL an object at key would be served from,
	// without touching the store.
	PublicURL(key string) string
}
