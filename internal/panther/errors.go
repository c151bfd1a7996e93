package panther

import (
	"errors"
	"fmt"
)

// ErrSessionClosed is returned when a REST verb is invoked on a session that
// was never opened or has already been closed. This is a programming error at
// the call site, not a transport failure.
var ErrSessionClosed = errors.New("rest session is closed")

// ErrNoQueryID is returned when the data lake accepts a query submission but
// the response carries no query identifier.
var ErrNoQueryID = errors.New("no query ID returned from execution")

// CredentialsError indicates the API rejected the configured token. Callers
// should surface the message verbatim and must not retry the request.
type CredentialsError struct {
	Body string
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf("Invalid API Key Detected. Please notify user that their API Key is invalid. STOP and wait for user to fix the issue. error: %s", e.Body)
}

// RequestError indicates an HTTP response outside the expected status set.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("Request failed (HTTP %d): %s", e.StatusCode, e.Body)
}

// QueryNotFoundError indicates the data lake has no record of the given
// query ID.
type QueryNotFoundError struct {
	QueryID string
}

func (e *QueryNotFoundError) Error() string {
	return fmt.Sprintf("No query found with ID: %s", e.QueryID)
}
