package ai

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ThrottledError reports a 429 from the backend, optionally carrying the
// server's Retry-After hint.
type ThrottledError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ThrottledError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("model backend throttled us (retry after %s): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("model backend throttled us: %v", e.Err)
}

func (e *ThrottledError) Unwrap() error { return e.Err }

// BadDraftError means the model produced output the lesson pipeline
// cannot use: malformed JSON, a schema violation, or an empty reply.
type BadDraftError struct {
	Raw   json.RawMessage
	Cause error
}

func (e *BadDraftError) Error() string {
	return fmt.Sprintf("unusable model output: %v", e.Cause)
}

func (e *BadDraftError) Unwrap() error { return e.Cause }

// BackendDownError covers 5xx responses and transport failures.
type BackendDownError struct {
	Err error
}

func (e *BackendDownError) Error() string {
	if e.Err == nil {
		return "model backend unavailable"
	}
	return fmt.Sprintf("model backend unavailable: %v", e.Err)
}

func (e *BackendDownError) Unwrap() error { return e.Err }

// TruncatedError means generation stopped at the MaxTokens ceiling, so
// the draft is cut off mid-JSON. Raising the limit is the fix; retrying
// the same request is not.
type TruncatedError struct {
	Raw json.RawMessage
}

func (e *TruncatedError) Error() string {
	return "model output truncated at the token limit"
}

// wireError maps an HTTP status from any backend SDK onto the package
// error types. Everything that is not throttling counts as an outage.
func wireError(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ThrottledError{Err: err}
	}
	return &BackendDownError{Err: err}
}
