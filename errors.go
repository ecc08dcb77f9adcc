package bucketgate

import "errors"

var (
	// ErrInvalidToken is returned when token verification fails for any
	// reason (malformed, expired, bad signature, revoked). Callers never
	// learn which.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrMalformedIdentity is returned when a verified identity carries
	// no subject id
	ErrMalformedIdentity = errors.New("identity has no subject id")
	// ErrStorageUnavailable is returned when the storage backend cannot
	// sign a URL or list keys
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrInvalidFileName is returned in strict-names mode when a file
	// name contains path separators or dot-dot segments
	ErrInvalidFileName = errors.New("invalid file name")
)
