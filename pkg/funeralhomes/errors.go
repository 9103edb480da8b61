package funeralhomes

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrBaseURLNotSet is returned by every call on a client built without a base
// URL. No request is attempted.
var ErrBaseURLNotSet = errors.New("API base URL is not set")

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// newAPIError uses the body verbatim when it is non-empty, the standard status
// phrase otherwise.
func newAPIError(status int, body string) *APIError {
	msg := body
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg}
}

// DecodeError is a 2xx response whose body could not be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s response: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
