package llm

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated indicates no usable API credential is configured.
// Provider constructors return it at startup; it is never produced per
// request.
var ErrUnauthenticated = errors.New("no API key configured")

// ErrTimeout indicates the upstream call exceeded its deadline.
var ErrTimeout = errors.New("LLM request timed out")

// ErrUpstream indicates the provider returned a non-success transport
// response. StatusCode and Body carry the provider's own diagnostics.
type ErrUpstream struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("upstream LLM error (status %d): %s", e.StatusCode, e.Body)
}

func (e *ErrUpstream) Unwrap() error { return e.Err }
