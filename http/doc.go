// Package http provides the REST gateway in front of the credential
// issuer.
//
// # Endpoints
//
//	POST /get-presigned-url   body {"fileName": "...", "fileType": "..."}
//	                          -> 200 {"url": "..."}
//	GET  /list-files          -> 200 [{"key": "...", "url": "..."}, ...]
//
// Both require an Authorization: Bearer header. A missing token yields
// 401, a token the verifier rejects yields 403, and a storage failure
// yields 500 with a generic message; backend detail is logged, never
// returned.
//
// Every request is verified independently; there is no session or
// token cache.
package http
