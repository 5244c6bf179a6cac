package client

import "context"

type accessTokenKey struct{}

// WithAccessToken returns a context whose requests authenticate with token,
// regardless of the token installed on the client. An empty token makes the
// request anonymous.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// accessTokenFrom returns the token carried by ctx, if any.
func accessTokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey{}).(string)
	return token, ok
}
