package adapt

import (
	"errors"
	"fmt"
)

// errEmptyCompletion marks a backend response that carried no text at all.
var errEmptyCompletion = errors.New("backend returned no content")

// ErrEmptyInput is returned when a transformation is requested with no
// source text. The generation backend is never contacted in that case.
var ErrEmptyInput = errors.New("source text is empty")

// UpstreamError wraps a failure of the generation backend: a transport
// error, a service error, or a response with no usable content. Callers
// surface it as a generic retry-able condition and never expose the
// underlying detail to the user.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation backend failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstream reports whether err is (or wraps) an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
