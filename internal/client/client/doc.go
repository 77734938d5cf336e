// Package client is the single request pipeline the CLI uses to talk to
// the clinic REST API.
//
// # Transport chain
//
// Every request made through APIClient passes, outermost first, through:
//
//  1. unauthorizedTransport: on HTTP 401 clears the session and pushes the
//     login route, then returns the response unchanged so the caller still
//     sees the failure.
//  2. authTransport: reads the bearer token from durable storage (not from
//     the in-memory session, so two clients sharing a storage file stay in
//     step) and sets Authorization, Content-Type and X-Request-ID.
//  3. otelhttp: client spans for each call.
//
// Callers never special-case 401 themselves.
//
// # Error Handling
//
// Non-2xx responses become *APIError. Use errors.Is with ErrUnauthorized,
// ErrForbidden or ErrNotFound to classify them; transport failures match
// ErrUnavailable.
package client
