// Package client is the RemoteFeed side of the timeline engine.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface): FetchHome,
//     FetchOlderThan, Publish, Ping and Close.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, injects the access token via an interceptor, bounds every
//     call with a timeout and maps gRPC status codes to sentinel errors.
//
// # Error Handling
//
// Failures are exposed as sentinel errors that callers match with errors.Is:
// ErrUnavailable, ErrRateLimited, ErrMalformedResponse, ErrUnauthorized,
// ErrRejected. A codes.Internal status from the server is a transient
// failure (ErrUnavailable); ErrMalformedResponse is reserved for payloads the
// client itself cannot decode or validate.
//
// # Concurrency & Contexts
//
// GRPCClient is safe for concurrent use. All operations accept a
// context.Context and honor its cancellation.
package client
