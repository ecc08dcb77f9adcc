// Package bucketgate issues short-lived, namespace-scoped S3 URLs to
// callers that present a valid third-party identity token.
//
// The package holds the security-sensitive core: mapping a verified
// identity to its private storage namespace and producing presigned
// upload and download URLs that cannot reach outside that namespace.
// Everything around it is a collaborator behind an interface:
//
//   - TokenVerifier: validates an opaque bearer token against an
//     external identity provider (see the identity package for OIDC
//     and HMAC implementations)
//   - ObjectStore: produces presigned URLs and lists keys by prefix
//     (see the s3store package for the AWS S3 implementation)
//
// # Example Usage
//
//	store, err := s3store.New(ctx, s3store.Config{Region: "us-east-1", Bucket: "uploads"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	svc, err := bucketgate.NewService(store)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Issue a write URL inside the caller's namespace
//	url, err := svc.IssueUploadURL(ctx, ident, "photo.jpg", "image/jpeg")
//
//	// Enumerate the caller's objects with fresh read URLs
//	files, err := svc.ListFiles(ctx, ident)
//
// See the http package for the REST gateway and the config package for
// process configuration.
package bucketgate
