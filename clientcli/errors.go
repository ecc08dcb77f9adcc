package clientcli

import "errors"

// Errors for profile operations.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoProfiles      = errors.New("no profiles configured")
	ErrProfileExists   = errors.New("profile already exists")
)

// Errors for configuration and input validation.
var (
	ErrTokenRequired  = errors.New("token is required")
	ErrConfigRequired = errors.New("config is required")
	ErrEmptyPath      = errors.New("path is required")
)
