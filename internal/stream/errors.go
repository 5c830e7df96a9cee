package stream

import "fmt"

// statusError records a non-2xx HTTP response from a stream origin.
type statusError struct {
	url    string
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.url, e.status)
}
