package client

import (
	"context"
	"net/url"
)

// Client is the transport-agnostic contract of the backend API. Paths are
// relative to the versioned API root, e.g. "auth/login" or EventPath(id).
// out receives the decoded JSON response; pass nil to discard the body.
type Client interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error

	// SetAuthToken installs the bearer token used by subsequent calls.
	// An empty token removes the Authorization header.
	SetAuthToken(token string)
	AuthToken() string
}
