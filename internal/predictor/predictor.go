// Package predictor turns an uploaded image into a wire response using the
// classifier chosen at startup.
package predictor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"fruitd/internal/classifier"
	"fruitd/internal/imageproc"
	"fruitd/internal/labels"
	"fruitd/pkg/types"
)

// Messages returned to clients.
const (
	RootMessage         = "Pic a Fruit API is running!"
	StatusHealthy       = "healthy"
	LowConfidenceLabel  = "Confidence terlalu rendah"
	LowConfidenceDetail = "Gambar tidak dapat dikenali dengan yakin. Coba ambil foto yang lebih jelas."
	DemoMessageFormat   = "Running in demo mode - place your AI model file (%s) in the model folder for real AI predictions"
)

// DefaultThreshold is the minimum confidence for a real prediction.
const DefaultThreshold = 0.6

// Options configures a Service.
type Options struct {
	// Threshold is the minimum arg-max probability reported as a label.
	Threshold float64
	// Decode bounds decoding of uploaded bytes.
	Decode imageproc.Options
	// APIVersion is reported by Root.
	APIVersion string
	// ExpectedModel names the artifact in the demo-mode hint.
	ExpectedModel string
	Logger        zerolog.Logger
}

// Service answers prediction and health queries. It is safe for
// concurrent use; its classifier never changes after construction.
type Service struct {
	clf  classifier.Classifier
	opts Options
	log  zerolog.Logger
}

// New builds a Service around an already loaded classifier.
func New(clf classifier.Classifier, opts Options) *Service {
	if opts.Threshold < 0 || opts.Threshold > 1 {
		opts.Threshold = DefaultThreshold
	}
	if opts.APIVersion == "" {
		opts.APIVersion = "1.0.0"
	}
	if opts.ExpectedModel == "" {
		opts.ExpectedModel = "cnnVGG16rv2.onnx"
	}
	return &Service{clf: clf, opts: opts, log: opts.Logger}
}

// ModelLoaded reports whether a real model serves predictions.
func (s *Service) ModelLoaded() bool { return s.clf.Info().Loaded() }

// Root builds the GET / payload.
func (s *Service) Root() types.RootResponse {
	return types.RootResponse{
		Message:     RootMessage,
		Status:      StatusHealthy,
		ModelLoaded: s.ModelLoaded(),
		Version:     s.opts.APIVersion,
	}
}

// Health builds the GET /health payload.
func (s *Service) Health() types.HealthResponse {
	loaded := s.ModelLoaded()
	status := "not_loaded"
	if loaded {
		status = "loaded"
	}
	return types.HealthResponse{
		Status:           StatusHealthy,
		ModelStatus:      status,
		DemoMode:         !loaded,
		SupportedClasses: labels.All(),
	}
}

// Classes builds the GET /classes payload.
func (s *Service) Classes() types.ClassesResponse {
	return types.ClassesResponse{Classes: labels.Describe()}
}

// Predict decodes data and classifies it. Undecodable input yields an
// *InputError; anything else that fails is an internal error.
func (s *Service) Predict(ctx context.Context, data []byte) (types.PredictResponse, error) {
	img, format, err := imageproc.Decode(data, s.opts.Decode)
	if err != nil {
		if imageproc.IsDecodeError(err) {
			return types.PredictResponse{}, BadInput("Gagal membaca gambar: " + err.Error())
		}
		return types.PredictResponse{}, err
	}
	s.log.Debug().Str("format", format).Int("width", img.Bounds().Dx()).Int("height", img.Bounds().Dy()).Msg("image decoded")

	info := s.clf.Info()
	start := time.Now()
	res, err := s.clf.Classify(ctx, img)
	observeInference(info.Mode, time.Since(start))
	if err != nil {
		return types.PredictResponse{}, fmt.Errorf("classify: %w", err)
	}

	if res.Demo {
		s.log.Info().Str("label", res.Label).Float64("confidence", res.Confidence).Msg("demo prediction")
		countPrediction(info.Mode, res.Label)
		return s.success(res, "", fmt.Sprintf(DemoMessageFormat, s.opts.ExpectedModel)), nil
	}

	if res.Confidence < s.opts.Threshold {
		s.log.Info().Str("label", res.Label).Float64("confidence", res.Confidence).Msg("confidence below threshold")
		countLowConfidence()
		return types.PredictResponse{
			Status:     types.StatusError,
			Label:      LowConfidenceLabel,
			Confidence: res.Confidence,
			Message:    LowConfidenceDetail,
		}, nil
	}
	s.log.Info().Str("label", res.Label).Float64("confidence", res.Confidence).Msg("prediction")
	countPrediction(info.Mode, res.Label)
	return s.success(res, info.ModelVersion, ""), nil
}

func (s *Service) success(res classifier.Result, version, msg string) types.PredictResponse {
	fruit, cond := labels.Parse(res.Label)
	return types.PredictResponse{
		Status:       types.StatusSuccess,
		Label:        res.Label,
		Confidence:   res.Confidence,
		ModelVersion: version,
		DemoMode:     res.Demo,
		Message:      msg,
		Fruit:        string(fruit),
		Condition:    string(cond),
	}
}
