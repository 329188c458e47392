package service

import "errors"

var (
	// ErrNotFound indicates the referenced entity is not in the store.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail indicates the email is already registered. Email
	// uniqueness is a store-wide invariant, enforced on register, add,
	// and update alike.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
