package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
)

// ErrorKind tells where a request failed.
type ErrorKind int

const (
	// KindTransport: the request never produced a response (dial, timeout, cancel).
	KindTransport ErrorKind = iota + 1
	// KindStatus: the server answered with a non-2xx status.
	KindStatus
	// KindDecode: the response body was not the expected JSON.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// APIError is the one error shape returned by Client implementations.
type APIError struct {
	Kind   ErrorKind
	Method string
	Path   string
	// Status is 0 for transport failures.
	Status int
	// Detail is the decoded server "detail" payload, nil when absent.
	Detail Detail
	Err    error
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: ", e.Method, e.Path)
	switch e.Kind {
	case KindStatus:
		fmt.Fprintf(&b, "%d %s", e.Status, http.StatusText(e.Status))
		if e.Detail != nil {
			b.WriteString(": ")
			b.WriteString(e.Detail.Message())
		}
	case KindDecode:
		fmt.Fprintf(&b, "malformed response: %v", e.Err)
	default:
		fmt.Fprintf(&b, "request failed: %v", e.Err)
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is maps the error onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Kind == KindTransport ||
			e.Status == http.StatusBadGateway ||
			e.Status == http.StatusServiceUnavailable ||
			e.Status == http.StatusGatewayTimeout
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrValidation:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	}
	return false
}

// ExtractErrorMessage turns err into text for display. Server details are
// preferred; otherwise a generic message per failure kind is used, and
// fallback covers everything else. The result is never empty.
func ExtractErrorMessage(err error, fallback string) string {
	msg := extract(err, fallback)
	if strings.TrimSpace(msg) == "" {
		msg = fallback
	}
	if strings.TrimSpace(msg) == "" {
		msg = "Something went wrong"
	}
	return msg
}

func extract(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	if apiErr.Detail != nil {
		if msg := apiErr.Detail.Message(); msg != "" {
			return msg
		}
	}

	switch apiErr.Kind {
	case KindTransport:
		return "Unable to reach the server. Check your connection and try again."
	case KindDecode:
		return "Unexpected response from the server."
	}
	return fallback
}
