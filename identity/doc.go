// Package identity provides TokenVerifier implementations.
//
// OIDCVerifier delegates to an external OpenID Connect provider
// (issuer discovery or a direct JWKS endpoint) and is the production
// oracle; ID tokens minted by Firebase, Keycloak, Auth0 and similar
// providers verify through it. HMACVerifier checks locally signed
// HS256 tokens and is meant for development and tests.
package identity
