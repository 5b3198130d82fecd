package delivery

import "fmt"

// RemoteError is a non-2xx answer from the delivery endpoint. The body
// is kept because the remote API explains rejections there (e.g. an
// invalid token).
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote endpoint rejected upload: status %d", e.StatusCode)
	}
	return fmt.Sprintf("remote endpoint rejected upload: status %d: %s", e.StatusCode, e.Body)
}

// TransportError is a network-level delivery failure: DNS, TLS,
// connection reset or timeout.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("delivery transport failure: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
