// Package common defines shared constants and sentinel errors used across
// client and server layers of gophfeed. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrStorageUnavailable is returned by a cache that was never opened.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Validation errors for published text.
	ErrEmptyTweet   = errors.New("tweet is empty")
	ErrTweetTooLong = errors.New("tweet is too long")

	// ErrInvalidCursor is returned for a pagination cursor that is not a
	// positive tweet id.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrProtocolViolation marks a remote page that breaks ordering rules.
	ErrProtocolViolation = errors.New("protocol violation")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
