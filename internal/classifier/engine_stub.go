//go:build !cgo

package classifier

// NewONNXEngine refuses to load without cgo; ONNX Runtime is reached
// through a cgo binding. Load falls back to demo mode.
func NewONNXEngine(opts ONNXOptions) (Engine, error) {
	return nil, ErrRuntimeUnavailable("onnxruntime support not built (cgo disabled)")
}
