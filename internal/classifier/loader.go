package classifier

import (
	"errors"
	"os"

	"github.com/rs/zerolog"

	"fruitd/internal/common/fsutil"
	"fruitd/internal/imageproc"
	"fruitd/internal/labels"
)

// Options configures Load.
type Options struct {
	ONNX         ONNXOptions
	Preprocess   imageproc.Options
	Softmax      bool
	ModelVersion string
	Demo         SimulatedOptions
}

// engineFactory builds the runtime engine; replaced in tests.
type engineFactory func(ONNXOptions) (Engine, error)

// Load picks the strategy for the lifetime of the process. Any failure to
// open the model is logged as a warning and yields a Simulated classifier.
func Load(opts Options, log zerolog.Logger) Classifier {
	return load(opts, log, NewONNXEngine)
}

func load(opts Options, log zerolog.Logger, newEngine engineFactory) Classifier {
	demo := func(err error) Classifier {
		log.Warn().Err(err).Str("model_path", opts.ONNX.ModelPath).Msg("running in demo mode without AI model")
		d := opts.Demo
		d.Reason = err.Error()
		return NewSimulated(d)
	}

	path, err := fsutil.ResolveFile(opts.ONNX.ModelPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return demo(ErrModelNotFound(opts.ONNX.ModelPath))
		}
		return demo(err)
	}

	onnx := opts.ONNX
	onnx.ModelPath = path
	onnx.NumClasses = labels.Count
	if opts.Preprocess.Size > 0 {
		onnx.ImageSize = opts.Preprocess.Size
	}
	log.Info().Str("model_path", path).Msg("loading AI model")
	engine, err := newEngine(onnx)
	if err != nil {
		return demo(err)
	}

	version := opts.ModelVersion
	if version == "" {
		version = fsutil.Stem(path)
	}
	log.Info().Str("model_version", version).Msg("AI model loaded")
	return NewInference(engine, InferenceOptions{
		Preprocess:   opts.Preprocess,
		Softmax:      opts.Softmax,
		ModelVersion: version,
		ModelPath:    path,
	})
}
