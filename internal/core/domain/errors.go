package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserBlocked       = errors.New("user is blocked")
	ErrEmailNotAllowed   = errors.New("email not on the hostel allowlist")
	ErrNoHostelAssigned  = errors.New("no hostel assigned to profile")
)

// Rebate errors
var (
	ErrRebateNotFound     = errors.New("rebate not found")
	ErrInvalidDateRange   = errors.New("to_date must not be before from_date")
	ErrInvalidRebateState = errors.New("invalid rebate status")
)

// Poll errors
var (
	ErrPollNotFound = errors.New("poll not found")
	ErrPollClosed   = errors.New("poll is closed")
	ErrAlreadyVoted = errors.New("already voted on this poll")
)
