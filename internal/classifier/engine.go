package classifier

import "fruitd/internal/imageproc"

// Engine runs a model forward pass. Run returns the raw output scores for a
// single image, one per class.
type Engine interface {
	Run(input imageproc.Tensor) ([]float32, error)
	Close() error
}

// ONNXOptions configures the ONNX Runtime engine.
type ONNXOptions struct {
	ModelPath string
	// SharedLibrary is the path to libonnxruntime; empty uses the runtime default.
	SharedLibrary string
	InputName     string
	OutputName    string
	ImageSize     int
	NumClasses    int
}

func (o ONNXOptions) withDefaults() ONNXOptions {
	if o.InputName == "" {
		o.InputName = "input"
	}
	if o.OutputName == "" {
		o.OutputName = "output"
	}
	if o.ImageSize <= 0 {
		o.ImageSize = imageproc.DefaultSize
	}
	return o
}
