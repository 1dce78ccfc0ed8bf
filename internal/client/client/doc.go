// Package client is the admin side of the factkeeper gRPC API.
//
// Client owns the connection, logs in with the shared admin password and
// injects the session token into every call through an interceptor. When the
// server rejects an expired session the client logs in again once and
// retries. Status codes are mapped to sentinel errors: ErrUnauthorized,
// ErrUnavailable, ErrNotFound and ErrInvalidInput.
package client
