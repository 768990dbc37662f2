package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrAccountInactive    = errors.New("user account is inactive")

	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrExpiredRefreshToken = errors.New("refresh token has expired")
	ErrRevokedRefreshToken = errors.New("refresh token has been revoked")

	// ErrMissingDefaultRole means the store was never provisioned. Fatal
	// configuration problem, not a client error.
	ErrMissingDefaultRole = errors.New("default role not found")
)
