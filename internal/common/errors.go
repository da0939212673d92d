// Package common defines shared constants and sentinel errors used across
// the server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrDuplicateEmail = errors.New("duplicate email")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Credential errors. Unknown email and wrong password stay distinct.
	ErrEmptyCredentials       = errors.New("empty credentials")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidPassword        = errors.New("invalid password")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")

	// Auth errors (missing, invalid or malformed token).
	ErrNoTokenProvided = errors.New("no token provided")
	ErrInvalidToken    = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
