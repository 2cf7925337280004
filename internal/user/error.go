package user

import "errors"

var (
	// -- Authentication & Authorization --
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("admin access required")

	// -- Validation & Input --
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	// -- Resource State --
	ErrEmailExists  = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")

	// -- Database & Operation Failures --
	ErrFailedCreateUser = errors.New("failed to create user")
	ErrFailedListUsers  = errors.New("failed to list users")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
