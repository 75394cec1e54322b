// Package common contains shared constants and sentinel errors used across
// gophfeed components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// RequestIDHeaderName is the gRPC metadata key echoing the server-side request id.
const RequestIDHeaderName = "x-request-id"

// MaxTweetLength is the longest body, in runes, the feed service accepts.
const MaxTweetLength = 280
