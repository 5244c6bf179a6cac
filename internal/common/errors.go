package common

import "errors"

var (
	// ErrInvalidEmail is returned when an email address does not look like one.
	ErrInvalidEmail = errors.New("please enter a valid email address")

	// ErrInvalidCode is returned when a one-time code is not six digits.
	ErrInvalidCode = errors.New("please enter the complete 6-digit code")

	// ErrInvalidID is returned when a resource id is not a UUID.
	ErrInvalidID = errors.New("invalid resource id")

	// ErrNotAuthenticated is returned by actions that need a session.
	ErrNotAuthenticated = errors.New("not authenticated")
)
