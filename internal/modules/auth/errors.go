package auth

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountDisabled    = errors.New("account is disabled")

	// ErrUnauthenticated means no usable credentials were presented.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrInvalidCredentials means a credential was presented but failed
	// verification (bad signature, expired, unknown subject, wrong password).
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrBothTokensRevoked means the refresh token, and the access token if
	// one was presented, are on the blacklist.
	ErrBothTokensRevoked = errors.New("both access and refresh tokens are blacklisted")
)
