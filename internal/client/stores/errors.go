package stores

import (
	"errors"

	"github.com/dmitrijs2005/insider/internal/client/client"
)

// ErrStale is returned when a response arrived after a newer request for the
// same slice was issued and was therefore not applied.
var ErrStale = errors.New("superseded by a newer request")

// DisplayError is a failure carrying text fit to show the user.
type DisplayError struct {
	Message string
	Err     error
}

func (e *DisplayError) Error() string { return e.Message }
func (e *DisplayError) Unwrap() error { return e.Err }

func displayError(err error, fallback string) *DisplayError {
	return &DisplayError{Message: client.ExtractErrorMessage(err, fallback), Err: err}
}

// tracker numbers the requests of one state slice. The zero value is ready.
// Callers hold the owning store's lock.
type tracker struct {
	last uint64
}

func (t *tracker) issue() uint64 {
	t.last++
	return t.last
}

func (t *tracker) latest(n uint64) bool {
	return n == t.last
}
