//go:build cgo

package classifier

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"fruitd/internal/imageproc"
)

// onnxEngine runs a model through ONNX Runtime. The session is bound to
// preallocated tensors, so Run is serialized.
type onnxEngine struct {
	mu      sync.Mutex
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

// NewONNXEngine initializes the ONNX Runtime environment and opens a
// session for opts.ModelPath with an NHWC float32 input of
// (1, ImageSize, ImageSize, 3) and an output of (1, NumClasses).
func NewONNXEngine(opts ONNXOptions) (Engine, error) {
	opts = opts.withDefaults()
	if opts.NumClasses <= 0 {
		return nil, fmt.Errorf("invalid class count: %d", opts.NumClasses)
	}
	if opts.SharedLibrary != "" {
		ort.SetSharedLibraryPath(opts.SharedLibrary)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, ErrRuntimeUnavailable(fmt.Sprintf("onnxruntime unavailable: %v", err))
		}
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(imageproc.Shape(opts.ImageSize)...))
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(opts.NumClasses)))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("create output tensor: %w", err)
	}
	session, err := ort.NewAdvancedSession(opts.ModelPath,
		[]string{opts.InputName}, []string{opts.OutputName},
		[]ort.ArbitraryTensor{input}, []ort.ArbitraryTensor{output},
		nil)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("create onnx session: %w", err)
	}
	return &onnxEngine{session: session, input: input, output: output}, nil
}

func (e *onnxEngine) Run(t imageproc.Tensor) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	dst := e.input.GetData()
	if len(t.Data) != len(dst) {
		return nil, fmt.Errorf("input has %d values, model expects %d", len(t.Data), len(dst))
	}
	copy(dst, t.Data)
	if err := e.session.Run(); err != nil {
		return nil, fmt.Errorf("onnx run: %w", err)
	}
	out := e.output.GetData()
	scores := make([]float32, len(out))
	copy(scores, out)
	return scores, nil
}

func (e *onnxEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		e.session.Destroy()
		e.session = nil
	}
	if e.input != nil {
		e.input.Destroy()
		e.input = nil
	}
	if e.output != nil {
		e.output.Destroy()
		e.output = nil
	}
	return ort.DestroyEnvironment()
}
