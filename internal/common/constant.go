// Package common contains shared constants and helpers used across the
// Insider client components.
package common

const (
	// AuthorizationHeaderName carries the bearer access token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme prefixes the access token in the Authorization header.
	BearerScheme = "Bearer"

	// RequestIDHeaderName tags every outbound request with a unique id.
	RequestIDHeaderName = "X-Request-ID"

	// APIPrefix is the versioned path prefix of the backend REST surface.
	APIPrefix = "/api/v1/"
)

// Keys of the persisted session entries.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
	UserKey         = "user"
	StorageSaltKey  = "storage_salt"
)
