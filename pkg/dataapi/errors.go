package dataapi

import "fmt"

// StatusError reports a Data API response outside the 2xx range. The
// response body is not inspected on this path; only the status code is
// carried.
type StatusError struct {
	Action     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("data api %s failed with status %d", e.Action, e.StatusCode)
}
