package bucketgate

import "time"

// Default validity windows for issued URLs.
const (
	DefaultUploadTTL   = 60 * time.Second
	DefaultDownloadTTL = 300 * time.Second
)

// Identity is the result of a successful token verification. It lives
// for the duration of one request and is never persisted.
type Identity struct {
	// UID is the stable subject identifier asserted by the identity
	// provider. It becomes the leading segment of the storage namespace.
	UID string
	// Email is optional and informational only.
	Email string
}

// FileEntry pairs an object key with a freshly signed download URL.
type FileEntry struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
