package classifier

import "fmt"

// modelNotFoundError reports a missing model artifact.
type modelNotFoundError struct{ path string }

func (e modelNotFoundError) Error() string { return "model file not found: " + e.path }

// ErrModelNotFound returns an error for a model path that does not exist.
func ErrModelNotFound(path string) error { return modelNotFoundError{path: path} }

// IsModelNotFound reports whether err indicates a missing model artifact.
func IsModelNotFound(err error) bool {
	_, ok := err.(modelNotFoundError)
	return ok
}

// runtimeUnavailableError signals the inference runtime could not be
// initialized (shared library missing, cgo disabled).
type runtimeUnavailableError struct{ msg string }

func (e runtimeUnavailableError) Error() string { return e.msg }

// ErrRuntimeUnavailable constructs a runtimeUnavailableError.
func ErrRuntimeUnavailable(msg string) error { return runtimeUnavailableError{msg: msg} }

// IsRuntimeUnavailable reports whether err indicates a missing inference runtime.
func IsRuntimeUnavailable(err error) bool {
	_, ok := err.(runtimeUnavailableError)
	return ok
}

// outputMismatchError reports a model whose output does not match the label set.
type outputMismatchError struct{ got, want int }

func (e outputMismatchError) Error() string {
	return fmt.Sprintf("model output has %d scores, expected %d", e.got, e.want)
}
