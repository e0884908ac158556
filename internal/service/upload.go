package service

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxUploadSize caps photo and avatar payloads at 5 MiB; larger uploads are
// rejected before the storage backend is contacted.
const maxUploadSize = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// validateImageUpload enforces the pre-network upload checks shared by
// contact photos and avatars. Returns the file extension for the key.
func validateImageUpload(contentType string, size int64) (string, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported content type %q", ErrUploadRejected, contentType)
	}
	if size > maxUploadSize {
		return "", fmt.Errorf("%w: file exceeds 5 MiB", ErrUploadRejected)
	}
	return ext, nil
}

// objectKey builds a collision-resistant storage key under
// <prefix>/<ownerID>/: millisecond timestamp plus a UUID.
func objectKey(prefix, ownerID, ext string) string {
	return path.Join(prefix, ownerID, fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext))
}

// storageKeyFromURL recovers the storage key from a public URL previously
// returned by Storage.Save. Returns "" when the URL is not ours.
func storageKeyFromURL(url, urlPrefix string) string {
	key := strings.TrimPrefix(url, urlPrefix+"/")
	if key == url {
		return ""
	}
	return key
}
