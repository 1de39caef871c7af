package taskapi

import "errors"

// ErrMalformedResponse marks a 2xx body that could not be decoded or failed
// validation.
var ErrMalformedResponse = errors.New("malformed task API response")

// RequestError is a non-2xx answer from the task API.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

// NetworkError means no HTTP response was received at all.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsRequestError reports whether err is a non-2xx answer with the given status.
func IsRequestError(err error, statusCode int) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == statusCode
}
