package customerr

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnauthenticated = errors.New("user is not authenticated")
	ErrForbidden       = errors.New("record is owned by another user")
	ErrCreationFailed  = errors.New("store returned no created row")
	ErrNotFound        = errors.New("record not found")
)

// RequestError is a failed remote call: connection error wrapped by the
// transport, or a non-success HTTP status from the store.
type RequestError struct {
	Status int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("remote store request failed with status %d", e.Status)
}

// HasStatus reports whether err carries the given HTTP status.
func HasStatus(err error, status int) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status == status
	}
	return false
}

// ParseError is a response body that could not be decoded into the
// expected shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "cannot parse store response: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
