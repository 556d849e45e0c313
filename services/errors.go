package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business-rule errors.
	ErrValidationFailed   = errors.New("validation failed")
	ErrClubIDRequired     = errors.New("club id is required")
	ErrTournamentRequired = errors.New("tournament is required")
	ErrTeamIDRequired     = errors.New("both team ids are required")
	ErrSetsRequired       = errors.New("at least one set score is required")
	ErrMatchNotDecided    = errors.New("a completed match must have a winner")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailConflict      = errors.New("email address is already in use")

	// Authentication and authorization.
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Entity-specific lookups.
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrAuditNotFound      = errors.New("championship apply record not found")
)
