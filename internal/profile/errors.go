package profile

import "errors"

var (
	// ErrNotFound is returned when no profile exists for the lookup.
	ErrNotFound = errors.New("profile not found")

	// ErrEmailTaken is returned when registering with an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login. It deliberately
	// does not distinguish unknown email from wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
