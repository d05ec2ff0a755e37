package apiclient

import "fmt"

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: transport: %v", e.Op, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is any non-2xx response. The body is not inspected.
type StatusError struct {
	Op         string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %s", e.Op, e.Status)
}

// ParseError is a 2xx response whose body is malformed or mis-shaped.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("%s: invalid response: %v", e.Op, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }
