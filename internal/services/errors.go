package services

import (
	"fmt"

	"github.com/desertthunder/tidalfest/internal/shared"
)

// ExcerptLimit bounds how many characters of a response body are kept in errors.
const ExcerptLimit = 100

// Excerpt returns at most [ExcerptLimit] runes of body.
func Excerpt(body []byte) string {
	r := []rune(string(body))
	if len(r) > ExcerptLimit {
		r = r[:ExcerptLimit]
	}
	return string(r)
}

// NetworkError reports that the backend could not be reached.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() []error {
	return []error{shared.ErrServiceUnavailable, e.Err}
}

// HTTPError reports a non-success status from the backend.
type HTTPError struct {
	Status     int
	StatusText string
	Excerpt    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Error %d: %s - %s", e.Status, e.StatusText, e.Excerpt)
}

func (e *HTTPError) Unwrap() error {
	return shared.ErrAPIRequest
}

// DecodeError reports a success response whose body is not valid JSON.
type DecodeError struct {
	Excerpt string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid JSON response: %s", e.Excerpt)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{shared.ErrDecode}
	}
	return []error{shared.ErrDecode, e.Err}
}
