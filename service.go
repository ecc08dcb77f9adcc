package bucketgate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TokenVerifier checks an opaque bearer token against an external
// identity provider and returns the verified identity.
//
// Implementations must collapse every verification failure into
// ErrInvalidToken; the distinction between expired, malformed and
// revoked tokens never reaches the caller.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// ObjectStore is a storage backend capable of producing presigned URLs
// and listing keys by prefix. The s3store package provides the AWS S3
// implementation; tests substitute doubles.
type ObjectStore interface {
	// SignUpload returns a URL allowing exactly one PUT of the given
	// key and content type within ttl. An empty contentType leaves the
	// content type unconstrained.
	SignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)

	// SignDownload returns a URL allowing GETs of the given key within ttl.
	SignDownload(ctx context.Context, key string, ttl time.Duration) (string, error)

	// ListKeys returns every key under prefix, recursively, in the
	// backend's listing order.
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}

// NamespaceFor maps a verified identity to its private storage prefix.
// The subject id is used verbatim as the leading path segment, so
// distinct subjects can never produce overlapping namespaces.
func NamespaceFor(ident Identity) (string, error) {
	if ident.UID == "" {
		return "", ErrMalformedIdentity
	}
	return ident.UID + "/", nil
}

// Service issues namespace-scoped, time-limited storage URLs. It holds
// no per-request state and is safe for concurrent use.
type Service struct {
	store       ObjectStore
	uploadTTL   time.Duration
	downloadTTL time.Duration
	strictNames bool
	now         func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithUploadTTL overrides the validity window of upload URLs.
func WithUploadTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.uploadTTL = ttl
		}
	}
}

// WithDownloadTTL overrides the validity window of download URLs.
func WithDownloadTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.downloadTTL = ttl
		}
	}
}

// WithStrictNames rejects file names containing path separators or
// dot-dot segments. Off by default: callers historically supplied
// names verbatim, and the namespace prefix alone guarantees isolation.
func WithStrictNames(strict bool) Option {
	return func(s *Service) {
		s.strictNames = strict
	}
}

// WithClock overrides the time source used for key generation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a Service on top of the given store.
func NewService(store ObjectStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("new service: object store is required")
	}

	s := &Service{
		store:       store,
		uploadTTL:   DefaultUploadTTL,
		downloadTTL: DefaultDownloadTTL,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// IssueUploadURL produces a write URL for a new object inside the
// identity's namespace. The object key is
//
//	{uid}/{unix-millis}_{fileName}
//
// fileName and contentType are caller-supplied and pass through
// verbatim unless strict-names mode is on; collisions between
// concurrent uploads of the same name in the same millisecond are
// accepted, not prevented.
func (s *Service) IssueUploadURL(ctx context.Context, ident Identity, fileName, contentType string) (string, error) {
	ns, err := NamespaceFor(ident)
	if err != nil {
		return "", err
	}

	if s.strictNames && !validFileName(fileName) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, fileName)
	}

	key := fmt.Sprintf("%s%d_%s", ns, s.now().UnixMilli(), fileName)

	url, err := s.store.SignUpload(ctx, key, contentType, s.uploadTTL)
	if err != nil {
		return "", fmt.Errorf("%w: sign upload %s: %v", ErrStorageUnavailable, key, err)
	}

	return url, nil
}

// ListFiles enumerates every object under the identity's namespace and
// returns a fresh download URL per key, preserving the store's listing
// order. An empty namespace yields an empty, non-nil slice. A failure
// signing any single key aborts the whole listing.
func (s *Service) ListFiles(ctx context.Context, ident Identity) ([]FileEntry, error) {
	ns, err := NamespaceFor(ident)
	if err != nil {
		return nil, err
	}

	keys, err := s.store.ListKeys(ctx, ns)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", ErrStorageUnavailable, ns, err)
	}

	entries := make([]FileEntry, 0, len(keys))
	for _, key := range keys {
		url, err := s.store.SignDownload(ctx, key, s.downloadTTL)
		if err != nil {
			return nil, fmt.Errorf("%w: sign download %s: %v", ErrStorageUnavailable, key, err)
		}
		entries = append(entries, FileEntry{Key: key, URL: url})
	}

	return entries, nil
}

func validFileName(name string) bool {
	return !strings.ContainsAny(name, `/\`) && name != ".."
}
