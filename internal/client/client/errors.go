package client

import "errors"

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrRateLimited       = errors.New("rate limited")
	ErrMalformedResponse = errors.New("malformed response")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrRejected          = errors.New("request rejected")
)
