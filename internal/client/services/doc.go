// Package services wraps the backend REST endpoints in typed Go calls.
//
// Each service is a thin adapter over client.Client: it builds the request
// (path, query, body), decodes the response into models types and returns
// client errors unchanged, so callers can inspect them with errors.Is/As
// and client.ExtractErrorMessage.
package services
