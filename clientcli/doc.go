// Package clientcli implements the bucketgate-cli client: requesting
// upload URLs, pushing file content through them, and listing a
// caller's files with fresh download URLs. Profiles (server endpoint +
// bearer token) live in a YAML config file.
package clientcli
