// Package client is the single choke point for outbound requests to the
// Insider backend.
//
// # Overview
//
//  1. A transport-agnostic contract (see the Client interface): Get, Post,
//     Put, Delete with JSON bodies, plus SetAuthToken/AuthToken for the
//     process-wide bearer token.
//  2. A net/http implementation (see HTTPClient) that resolves the versioned
//     endpoint, attaches "Authorization: Bearer <token>", tags requests with
//     X-Request-ID and optionally paces them with a token bucket.
//  3. A single error shape (see APIError) for transport failures, non-2xx
//     statuses and undecodable bodies. Server "detail" payloads are decoded
//     into the Detail union (StringDetail, FieldError, FieldErrorList).
//
// # Sessions
//
// The bearer token is looked up per call: a token attached to the context
// with WithAccessToken wins over the one installed with SetAuthToken. The
// latter is shared by every caller of the client (last writer wins) and is
// meant for a single signed-in user.
//
// # Error Handling
//
// Callers match with errors.Is against ErrUnavailable, ErrUnauthorized,
// ErrNotFound and ErrValidation, or use ExtractErrorMessage to get text fit
// for display. No retries are made at this layer.
package client
