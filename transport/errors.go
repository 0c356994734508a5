package transport

import "fmt"

// TransportError reports a network-level failure: the request could not be sent, or the
// response could not be read. HTTP error statuses are not TransportErrors.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
